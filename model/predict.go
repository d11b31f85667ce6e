package model

import (
	"math"
	"sort"

	"github.com/rushteam/logitkit/core"
)

func (m *LogisticRegression) Name() string { return "logistic_regression" }

// ResourceID 返回来源资源标识（用于日志/监控）。
func (m *LogisticRegression) ResourceID() string { return m.resourceID }

// Resolver 返回字段解析器（ID/名字双向查找）。
func (m *LogisticRegression) Resolver() *core.FieldResolver { return m.resolver }

// InputFields 返回规范顺序的输入字段 ID。调用方不得修改返回的切片。
func (m *LogisticRegression) InputFields() []string { return m.inputFields }

// ObjectiveField 返回目标字段 ID。
func (m *LogisticRegression) ObjectiveField() string { return m.objectiveField }

// MissingNumerics 返回模型是否为数值字段保留缺失系数位。
func (m *LogisticRegression) MissingNumerics() bool { return m.missingNumerics }

// Predict 对一行原始输入计算类别概率分布。
//
// 输入是 字段ID或字段名 → 原始标量 的映射；null 值与无法识别的键被静默丢弃。
// 返回最优类别、其概率、以及按概率降序（并列时按目标词表顺序升序）的完整分布。
//
// 纯函数：不修改模型状态，相同输入必得相同输出，可并发调用。
func (m *LogisticRegression) Predict(input map[string]any) (*core.Prediction, error) {
	numeric, rawTerms, err := m.castInput(input)
	if err != nil {
		return nil, err
	}
	uniqueTerms := m.collectUniqueTerms(rawTerms)

	type ranked struct {
		category    string
		probability float64
		order       int
	}
	rankedCategories := make([]ranked, 0, len(m.categories))

	total := 0.0
	for i, category := range m.categories {
		p := m.categoryProbability(numeric, uniqueTerms, category)
		order, ok := m.objectiveRank[category]
		if !ok {
			// 不在目标词表中的类别排在词表类别之后，仍保持确定性
			order = len(m.objectiveRank) + i
		}
		rankedCategories = append(rankedCategories, ranked{category: category, probability: p, order: order})
		total += p
	}
	if total == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNumeric,
			"predict: degenerate model, category probabilities sum to zero")
	}

	for i := range rankedCategories {
		rankedCategories[i].probability /= total
	}
	sort.SliceStable(rankedCategories, func(i, j int) bool {
		if rankedCategories[i].probability != rankedCategories[j].probability {
			return rankedCategories[i].probability > rankedCategories[j].probability
		}
		return rankedCategories[i].order < rankedCategories[j].order
	})

	distribution := make([]core.CategoryProbability, len(rankedCategories))
	for i, rc := range rankedCategories {
		distribution[i] = core.CategoryProbability{Category: rc.category, Probability: rc.probability}
	}
	return &core.Prediction{
		Prediction:   distribution[0].Category,
		Probability:  distribution[0].Probability,
		Distribution: distribution,
	}, nil
}

// categoryProbability 累加一个类别的加权和并取 sigmoid，得到未归一化概率。
//
// 贡献来源：
//   - 出现的数值字段：coefficient[0] * value
//   - 出现的文本/条目/类别字段：one-hot 为 coefficient[词表位置] * count；
//     非 dummy 自定义编码为 Σr coefficient[r] * matrix[r][词表位置] * count
//   - 缺失的文本/条目字段：coefficient[len(词表)]（missing 位）
//   - 缺失的类别字段（目标字段除外）：missing 位或自定义编码的 missing 列
//   - 缺失的数值字段（启用 missing_numerics 时）：coefficient[1]
//   - 偏置（启用时）
func (m *LogisticRegression) categoryProbability(
	numeric map[string]float64,
	uniqueTerms map[string]map[string]int,
	category string,
) float64 {
	groups := m.coefficients[category]
	score := 0.0
	norm2 := 0.0

	for id, value := range numeric {
		idx, ok := m.groupIndex[id]
		if !ok {
			continue
		}
		score += groups[idx][0] * value
		norm2 += value * value
	}

	for id, counts := range uniqueTerms {
		idx, ok := m.groupIndex[id]
		if !ok {
			continue
		}
		group := groups[idx]
		f := m.fields[id]
		coding := m.codings[id]
		useCoding := f.OpType == core.OpTypeCategorical && !coding.isDummy()

		for t, count := range counts {
			vi, inVocabulary := m.vocabIndex[id][t]
			if !inVocabulary {
				// 词表外的取值贡献为零，但字段算“出现”，missing 位不生效
				continue
			}
			if useCoding {
				for r, row := range coding.matrix {
					score += group[r] * row[vi] * float64(count)
				}
			} else {
				score += group[vi] * float64(count)
			}
			norm2 += float64(count * count)
		}
	}

	for _, id := range m.inputFields {
		f := m.fields[id]
		switch f.OpType {
		case core.OpTypeText, core.OpTypeItems:
			if _, ok := uniqueTerms[id]; ok {
				continue
			}
			score += groups[m.groupIndex[id]][len(f.Vocabulary)]
			norm2++
		case core.OpTypeCategorical:
			if id == m.objectiveField {
				continue
			}
			if _, ok := uniqueTerms[id]; ok {
				continue
			}
			group := groups[m.groupIndex[id]]
			if coding := m.codings[id]; !coding.isDummy() {
				missing := len(f.Vocabulary)
				for r, row := range coding.matrix {
					score += group[r] * row[missing]
				}
			} else {
				score += group[len(f.Vocabulary)]
			}
			norm2++
		case core.OpTypeNumeric:
			if !m.missingNumerics {
				continue
			}
			if _, ok := numeric[id]; ok {
				continue
			}
			score += groups[m.groupIndex[id]][1]
			norm2++
		}
	}

	if m.bias {
		biasGroup := groups[len(groups)-1]
		score += biasGroup[0]
		norm2++
	}
	if m.normalize && norm2 > 0 {
		score /= math.Sqrt(norm2)
	}
	return 1 / (1 + math.Exp(-score))
}
