package model

import (
	"fmt"
	"strings"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/pkg/conv"
	"github.com/rushteam/logitkit/term"
)

func validationErr(format string, args ...any) error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, fmt.Sprintf(format, args...))
}

// castInput 把原始输入行解析为两部分：数值字段的类型化取值，
// 以及文本/条目/类别字段的原始字符串。
//
// 键可以是字段 ID 或字段名；null 值与无法识别的键被静默丢弃。
// missing_numerics 关闭时，缺失的数值输入字段是校验错误。
func (m *LogisticRegression) castInput(input map[string]any) (map[string]float64, map[string]string, error) {
	numeric := make(map[string]float64)
	terms := make(map[string]string)

	for key, value := range input {
		if value == nil {
			continue
		}
		f, ok := m.resolver.Field(key)
		if !ok || f.ID == m.objectiveField {
			continue
		}
		switch f.OpType {
		case core.OpTypeNumeric:
			v, ok := conv.ToFloat64(value)
			if !ok {
				return nil, nil, validationErr("predict: field %s (%s): %v is not numeric", f.ID, f.Name, value)
			}
			numeric[f.ID] = v
		default:
			terms[f.ID] = conv.FormatValue(value)
		}
	}

	if !m.missingNumerics {
		for _, id := range m.inputFields {
			if m.fields[id].OpType != core.OpTypeNumeric {
				continue
			}
			if _, ok := numeric[id]; !ok {
				return nil, nil, validationErr("predict: required numeric field %s (%s) is missing", id, m.fields[id].Name)
			}
		}
	}
	return numeric, terms, nil
}

// collectUniqueTerms 把文本/条目/类别字段的原始值归并为 字段 → (词 → 次数)。
//
//   - 文本字段：按 token_mode 分词后对 tag cloud 做归并；all 模式额外追加完整串，
//     除非完整串恰好等于唯一 token（与训练端一致，只和 terms[0] 比较）
//   - items 字段：按分隔符切分后对 item 词表归并，次数一律记 1
//   - 类别字段：整个原始值作为单个词，次数 1（不做词表过滤——词表外的取值
//     贡献为零，但字段仍算“出现”，与“缺失”是两种不同语义）
//
// 归并后为空的字段不进入结果，按缺失处理。
func (m *LogisticRegression) collectUniqueTerms(rawTerms map[string]string) map[string]map[string]int {
	unique := make(map[string]map[string]int, len(rawTerms))
	for id, value := range rawTerms {
		f := m.fields[id]
		switch f.OpType {
		case core.OpTypeText:
			tokens := m.textTerms(f, value)
			counts := term.Aggregate(tokens, f.TermForms, f.Vocabulary)
			if len(counts) > 0 {
				unique[id] = counts
			}
		case core.OpTypeItems:
			items := term.SplitItems(value, f.ItemAnalysis.Separator)
			counts := term.Aggregate(items, nil, f.Vocabulary)
			for it := range counts {
				counts[it] = 1
			}
			if len(counts) > 0 {
				unique[id] = counts
			}
		case core.OpTypeCategorical:
			unique[id] = map[string]int{value: 1}
		}
	}
	return unique
}

// textTerms 按字段的 token_mode 产出待归并的词序列。
func (m *LogisticRegression) textTerms(f *core.Field, value string) []string {
	fullTerm := value
	if !f.TermAnalysis.CaseSensitive {
		fullTerm = strings.ToLower(value)
	}

	switch f.TermAnalysis.TokenMode {
	case core.TokenModeFullTerms:
		return []string{fullTerm}
	case core.TokenModeAll:
		terms := term.ParseTerms(value, f.TermAnalysis.CaseSensitive)
		// 只与首 token 比较是既有训练管线的行为，保持逐位一致
		if len(terms) == 1 && terms[0] == fullTerm {
			return terms
		}
		return append(terms, fullTerm)
	default: // tokens_only
		return term.ParseTerms(value, f.TermAnalysis.CaseSensitive)
	}
}
