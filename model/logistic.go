package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/pkg/conv"
)

// 资源状态码：5 表示训练完成（finished）。
const statusFinished = 5

// LogisticRegression 是训练完成的多项逻辑回归资源的内部表示。
//
// 构建一次、永不修改：所有遗留格式归一化（扁平系数重组、数组形 field_codings
// 转映射）都在构建期完成，之后并发预测共享同一实例是安全的。
type LogisticRegression struct {
	resourceID string

	fields   map[string]*core.Field
	resolver *core.FieldResolver

	// inputFields 是规范的输入字段顺序，决定每个字段的系数组落在扁平向量中的位置
	inputFields []string
	// groupIndex 是 inputFields 的反向索引：字段 ID → 系数组下标
	groupIndex map[string]int

	objectiveField string
	// objectiveRank 是目标字段词表中各类别的位置，用于并列概率的确定性排序
	objectiveRank map[string]int

	// categories 保持 coefficients 列表中的类别顺序
	categories []string
	// coefficients: 类别 → 有序系数组序列（启用 bias 时最后一组为偏置）
	coefficients map[string][][]float64

	// vocabIndex: 字段 ID → (词 → 词表位置)
	vocabIndex map[string]map[string]int

	// codings: 类别字段 ID → 自定义编码（dummy 编码等价于 one-hot，matrix 为 nil）
	codings map[string]*fieldCoding

	bias            bool
	missingNumerics bool
	normalize       bool
	c               float64
	eps             float64
	regularization  string
}

// fieldCoding 是单个类别字段的自定义贡献编码。
// coding == "dummy" 时退化为 one-hot，matrix 为 nil。
type fieldCoding struct {
	coding     string
	matrix     [][]float64 // 每行对应一个系数组下标，每列对应一个类别值，末列为 missing
	dummyClass string
}

func (c *fieldCoding) isDummy() bool {
	return c == nil || c.coding == "dummy" || c.matrix == nil
}

type statusJSON struct {
	Code int `json:"code"`
}

type termAnalysisJSON struct {
	CaseSensitive bool   `json:"case_sensitive"`
	TokenMode     string `json:"token_mode"`
}

type itemAnalysisJSON struct {
	Separator string `json:"separator"`
}

type summaryJSON struct {
	Categories [][]json.RawMessage `json:"categories"`
	TagCloud   [][]json.RawMessage `json:"tag_cloud"`
	Items      [][]json.RawMessage `json:"items"`
	TermForms  map[string][]string `json:"term_forms"`
}

type fieldJSON struct {
	Name         string            `json:"name"`
	Optype       string            `json:"optype"`
	ColumnNumber int               `json:"column_number"`
	Summary      *summaryJSON      `json:"summary"`
	TermAnalysis *termAnalysisJSON `json:"term_analysis"`
	ItemAnalysis *itemAnalysisJSON `json:"item_analysis"`
}

// fieldsJSON 在解码字段映射的同时记录键的出现顺序。
// 列号相同的字段按源 JSON 中的先后次序排序，map 解码会丢失这个信息。
type fieldsJSON struct {
	byID  map[string]*fieldJSON
	order []string
}

func (f *fieldsJSON) UnmarshalJSON(data []byte) error {
	f.byID = make(map[string]*fieldJSON)
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var fj fieldJSON
		if err := dec.Decode(&fj); err != nil {
			return fmt.Errorf("fields[%s]: %w", key, err)
		}
		f.byID[key] = &fj
		f.order = append(f.order, key)
	}
	_, err = dec.Token() // '}'
	return err
}

type logisticJSON struct {
	Fields          *fieldsJSON         `json:"fields"`
	Coefficients    [][]json.RawMessage `json:"coefficients"`
	Bias            *json.RawMessage    `json:"bias"`
	C               float64             `json:"c"`
	EPS             float64             `json:"eps"`
	Normalize       bool                `json:"normalize"`
	Regularization  string              `json:"regularization"`
	FieldCodings    json.RawMessage     `json:"field_codings"`
	MissingNumerics bool                `json:"missing_numerics"`
}

type resourceJSON struct {
	Resource           string           `json:"resource"`
	Object             json.RawMessage  `json:"object"`
	Status             *statusJSON      `json:"status"`
	InputFields        []string         `json:"input_fields"`
	ObjectiveFields    []string         `json:"objective_fields"`
	ObjectiveField     string           `json:"objective_field"`
	LogisticRegression *logisticJSON    `json:"logistic_regression"`
}

func schemaErr(format string, args ...any) error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeSchema, fmt.Sprintf(format, args...))
}

// NewLogisticRegression 从资源 JSON 构建内部模型。
//
// 失败是致命的：返回 SCHEMA 错误时不暴露任何部分构建状态，
// 半成品模型永远不会被标记为就绪。
func NewLogisticRegression(data []byte) (*LogisticRegression, error) {
	var raw resourceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, schemaErr("logistic regression: invalid resource json: %v", err)
	}

	// API 返回体可能把资源包在 object 键下
	if raw.LogisticRegression == nil && len(raw.Object) > 0 {
		resourceID := raw.Resource
		status := raw.Status
		if err := json.Unmarshal(raw.Object, &raw); err != nil {
			return nil, schemaErr("logistic regression: invalid resource object: %v", err)
		}
		if raw.Resource == "" {
			raw.Resource = resourceID
		}
		if raw.Status == nil {
			raw.Status = status
		}
	}

	if raw.Status != nil && raw.Status.Code != statusFinished {
		return nil, schemaErr("logistic regression: resource %s is not finished (status %d)", raw.Resource, raw.Status.Code)
	}
	info := raw.LogisticRegression
	if info == nil {
		return nil, schemaErr("logistic regression: missing logistic_regression key")
	}
	if info.Fields == nil || len(info.Fields.byID) == 0 {
		return nil, schemaErr("logistic regression: missing field metadata")
	}
	if len(info.Coefficients) == 0 {
		return nil, schemaErr("logistic regression: missing coefficients")
	}

	m := &LogisticRegression{
		resourceID:      raw.Resource,
		fields:          make(map[string]*core.Field, len(info.Fields.byID)),
		coefficients:    make(map[string][][]float64, len(info.Coefficients)),
		vocabIndex:      make(map[string]map[string]int),
		missingNumerics: info.MissingNumerics,
		normalize:       info.Normalize,
		c:               info.C,
		eps:             info.EPS,
		regularization:  info.Regularization,
		bias:            decodeBias(info.Bias),
	}

	for _, id := range info.Fields.order {
		f, err := buildField(id, info.Fields.byID[id])
		if err != nil {
			return nil, err
		}
		m.fields[id] = f
		idx := make(map[string]int, len(f.Vocabulary))
		for i, v := range f.Vocabulary {
			idx[v] = i
		}
		m.vocabIndex[id] = idx
	}
	m.resolver = core.NewFieldResolver(m.fields)

	if err := m.resolveObjective(&raw); err != nil {
		return nil, err
	}
	if err := m.resolveInputFields(raw.InputFields, info.Fields.order); err != nil {
		return nil, err
	}

	codings, err := normalizeFieldCodings(info.FieldCodings, m.resolver, m.fields)
	if err != nil {
		return nil, err
	}
	m.codings = codings

	if err := m.buildCoefficients(info.Coefficients); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeBias(raw *json.RawMessage) bool {
	if raw == nil {
		return true
	}
	var b bool
	if err := json.Unmarshal(*raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(*raw, &n); err == nil {
		return n != 0
	}
	return true
}

func buildField(id string, fj *fieldJSON) (*core.Field, error) {
	if fj == nil {
		return nil, schemaErr("logistic regression: field %s: missing metadata", id)
	}
	f := &core.Field{
		ID:           id,
		Name:         fj.Name,
		OpType:       core.OpType(fj.Optype),
		ColumnNumber: fj.ColumnNumber,
	}

	switch f.OpType {
	case core.OpTypeNumeric:
		return f, nil
	case core.OpTypeCategorical, core.OpTypeText, core.OpTypeItems:
	default:
		return nil, schemaErr("logistic regression: field %s: unknown optype %q", id, fj.Optype)
	}

	if fj.Summary == nil {
		return nil, schemaErr("logistic regression: field %s: missing summary", id)
	}
	switch f.OpType {
	case core.OpTypeCategorical:
		f.Vocabulary = vocabularyOf(fj.Summary.Categories)
	case core.OpTypeText:
		f.Vocabulary = vocabularyOf(fj.Summary.TagCloud)
		f.TermForms = fj.Summary.TermForms
		f.TermAnalysis = core.TermAnalysis{TokenMode: core.TokenModeTokens}
		if fj.TermAnalysis != nil {
			f.TermAnalysis.CaseSensitive = fj.TermAnalysis.CaseSensitive
			if fj.TermAnalysis.TokenMode != "" {
				f.TermAnalysis.TokenMode = fj.TermAnalysis.TokenMode
			}
		}
	case core.OpTypeItems:
		f.Vocabulary = vocabularyOf(fj.Summary.Items)
		if fj.ItemAnalysis != nil {
			f.ItemAnalysis.Separator = fj.ItemAnalysis.Separator
		}
	}
	return f, nil
}

// vocabularyOf 从 summary 的 [term, count] 对序列中抽出词表，保持源顺序。
func vocabularyOf(pairs [][]json.RawMessage) []string {
	vocab := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(pair[0], &s); err == nil {
			vocab = append(vocab, s)
			continue
		}
		var v any
		if err := json.Unmarshal(pair[0], &v); err == nil {
			vocab = append(vocab, conv.FormatValue(v))
		}
	}
	return vocab
}

func (m *LogisticRegression) resolveObjective(raw *resourceJSON) error {
	objective := raw.ObjectiveField
	if objective == "" && len(raw.ObjectiveFields) > 0 {
		objective = raw.ObjectiveFields[0]
	}
	if objective == "" {
		return schemaErr("logistic regression: missing objective field")
	}
	id, ok := m.resolver.Resolve(objective)
	if !ok {
		return schemaErr("logistic regression: objective field %q not in field set", objective)
	}
	m.objectiveField = id

	m.objectiveRank = make(map[string]int)
	for i, category := range m.fields[id].Vocabulary {
		m.objectiveRank[category] = i
	}
	return nil
}

// resolveInputFields 确定规范的输入字段顺序：优先使用模型声明的 input_fields，
// 否则按列号升序排列所有非目标字段（列号相同时保持源 JSON 中的出现顺序）。
func (m *LogisticRegression) resolveInputFields(declared, encounterOrder []string) error {
	if len(declared) > 0 {
		ids := make([]string, 0, len(declared))
		for _, key := range declared {
			id, ok := m.resolver.Resolve(key)
			if !ok {
				return schemaErr("logistic regression: input field %q not in field set", key)
			}
			if id == m.objectiveField {
				continue
			}
			ids = append(ids, id)
		}
		m.inputFields = ids
	} else {
		ids := make([]string, 0, len(encounterOrder))
		for _, id := range encounterOrder {
			if id != m.objectiveField {
				ids = append(ids, id)
			}
		}
		sort.SliceStable(ids, func(i, j int) bool {
			return m.fields[ids[i]].ColumnNumber < m.fields[ids[j]].ColumnNumber
		})
		m.inputFields = ids
	}

	m.groupIndex = make(map[string]int, len(m.inputFields))
	for i, id := range m.inputFields {
		m.groupIndex[id] = i
	}
	return nil
}

// buildCoefficients 解码 [category, vector] 对。vector 可能是遗留的扁平向量
// （首元素不是序列），此时按字段布局重组为分组形式。
func (m *LogisticRegression) buildCoefficients(entries [][]json.RawMessage) error {
	spans, total, err := mapCoefficients(m.inputFields, m.fields, m.codings, m.missingNumerics)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if len(entry) != 2 {
			return schemaErr("logistic regression: malformed coefficients entry")
		}
		var category string
		if err := json.Unmarshal(entry[0], &category); err != nil {
			var v any
			if err := json.Unmarshal(entry[0], &v); err != nil {
				return schemaErr("logistic regression: malformed coefficients category")
			}
			category = conv.FormatValue(v)
		}

		groups, err := decodeCoefficientVector(entry[1], spans, total, m.bias)
		if err != nil {
			return schemaErr("logistic regression: category %q: %v", category, err)
		}
		if _, dup := m.coefficients[category]; !dup {
			m.categories = append(m.categories, category)
		}
		m.coefficients[category] = groups
	}
	return nil
}

func decodeCoefficientVector(raw json.RawMessage, spans []coefficientSpan, total int, bias bool) ([][]float64, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("coefficient vector is not a sequence: %v", err)
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("empty coefficient vector")
	}

	// 遗留扁平格式：首元素不是序列
	if !isSequence(elems[0]) {
		var flat []float64
		if err := json.Unmarshal(raw, &flat); err != nil {
			return nil, fmt.Errorf("invalid flat coefficient vector: %v", err)
		}
		return groupCoefficients(flat, spans, total, bias)
	}

	var groups [][]float64
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("invalid grouped coefficient vector: %v", err)
	}
	return groups, validateGroups(groups, spans, bias)
}

func isSequence(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
