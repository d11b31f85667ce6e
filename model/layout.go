package model

import "github.com/rushteam/logitkit/core"

// coefficientSpan 是单个输入字段在扁平系数向量中占据的连续子区间。
type coefficientSpan struct {
	fieldID string
	offset  int
	length  int
}

// mapCoefficients 按输入字段顺序计算每个字段的系数子区间。
//
// 组长度规则（与训练端布局完全一致）：
//   - categorical/text/items 且使用普通 one-hot（dummy）编码：len(词表) + 1，末位为 missing
//   - categorical 且使用非 dummy 自定义编码：贡献矩阵的行数（与词表大小无关）
//   - numeric：启用 missing_numerics 时为 2，否则为 1
//
// 返回各字段区间与区间总长（不含偏置位）。
func mapCoefficients(
	inputFields []string,
	fields map[string]*core.Field,
	codings map[string]*fieldCoding,
	missingNumerics bool,
) ([]coefficientSpan, int, error) {
	spans := make([]coefficientSpan, 0, len(inputFields))
	shift := 0
	for _, id := range inputFields {
		f, ok := fields[id]
		if !ok {
			return nil, 0, schemaErr("logistic regression: coefficient group references unknown field %q", id)
		}

		var length int
		switch f.OpType {
		case core.OpTypeNumeric:
			length = 1
			if missingNumerics {
				length = 2
			}
		case core.OpTypeCategorical:
			if coding := codings[id]; !coding.isDummy() {
				length = len(coding.matrix)
			} else {
				length = len(f.Vocabulary) + 1
			}
		case core.OpTypeText, core.OpTypeItems:
			length = len(f.Vocabulary) + 1
		default:
			return nil, 0, schemaErr("logistic regression: field %s: unknown optype %q", id, f.OpType)
		}

		spans = append(spans, coefficientSpan{fieldID: id, offset: shift, length: length})
		shift += length
	}
	return spans, shift, nil
}

// groupCoefficients 把遗留的扁平系数向量按字段区间重切为分组形式，
// 启用 bias 时追加末尾的偏置组。
// 计算出的总长与实际向量长度不符说明模型损坏，返回 SCHEMA 错误而不是静默截断。
func groupCoefficients(flat []float64, spans []coefficientSpan, total int, bias bool) ([][]float64, error) {
	expected := total
	if bias {
		expected++
	}
	if len(flat) != expected {
		return nil, schemaErr(
			"logistic regression: flat coefficient vector has %d elements, layout expects %d", len(flat), expected)
	}

	groups := make([][]float64, 0, len(spans)+1)
	for _, span := range spans {
		group := make([]float64, span.length)
		copy(group, flat[span.offset:span.offset+span.length])
		groups = append(groups, group)
	}
	if bias {
		groups = append(groups, []float64{flat[total]})
	}
	return groups, nil
}

// validateGroups 校验预分组向量与布局一致：组数、各组长度、偏置组。
func validateGroups(groups [][]float64, spans []coefficientSpan, bias bool) error {
	expected := len(spans)
	if bias {
		expected++
	}
	if len(groups) != expected {
		return schemaErr("logistic regression: coefficient vector has %d groups, layout expects %d", len(groups), expected)
	}
	for i, span := range spans {
		if len(groups[i]) != span.length {
			return schemaErr(
				"logistic regression: field %s: coefficient group has %d elements, layout expects %d",
				span.fieldID, len(groups[i]), span.length)
		}
	}
	if bias && len(groups[len(groups)-1]) == 0 {
		return schemaErr("logistic regression: empty bias group")
	}
	return nil
}
