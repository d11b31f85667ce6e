package model

import (
	"encoding/json"

	"github.com/rushteam/logitkit/core"
)

// fieldCodingRecordJSON 是遗留数组格式中的一条 field_codings 记录。
type fieldCodingRecordJSON struct {
	Field        string          `json:"field"`
	Coding       string          `json:"coding"`
	DummyClass   json.RawMessage `json:"dummy_class"`
	Coefficients [][]float64     `json:"coefficients"`
}

// normalizeFieldCodings 把两种 field_codings 来源格式归一化为统一的内部表示：
// 按字段 ID 索引的自定义编码。
//
//   - 遗留数组格式：[{field, coding, coefficients | dummy_class}, ...]，
//     field 可能是字段名，归一化后统一成字段 ID，不残留按名字索引的条目
//   - 当前映射格式：{fieldId: {coding: matrix | dummyClass}}
//
// 贡献矩阵中短于 len(词表)+1 的行补零到位（末列是 missing 列）。
func normalizeFieldCodings(
	raw json.RawMessage,
	resolver *core.FieldResolver,
	fields map[string]*core.Field,
) (map[string]*fieldCoding, error) {
	codings := make(map[string]*fieldCoding)
	if len(raw) == 0 || string(raw) == "null" {
		return codings, nil
	}

	var records []fieldCodingRecordJSON
	if err := json.Unmarshal(raw, &records); err == nil {
		for _, rec := range records {
			id, ok := resolver.Resolve(rec.Field)
			if !ok {
				return nil, schemaErr("logistic regression: field coding references unknown field %q", rec.Field)
			}
			coding := &fieldCoding{coding: rec.Coding}
			if rec.Coding == "dummy" {
				var dummyClass string
				if len(rec.DummyClass) > 0 {
					_ = json.Unmarshal(rec.DummyClass, &dummyClass)
				}
				coding.dummyClass = dummyClass
			} else {
				coding.matrix = padCodingMatrix(rec.Coefficients, fields[id])
			}
			codings[id] = coding
		}
		return codings, nil
	}

	var byField map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err != nil {
		return nil, schemaErr("logistic regression: malformed field_codings: %v", err)
	}
	for key, byCoding := range byField {
		id, ok := resolver.Resolve(key)
		if !ok {
			return nil, schemaErr("logistic regression: field coding references unknown field %q", key)
		}
		for name, value := range byCoding {
			coding := &fieldCoding{coding: name}
			if name == "dummy" {
				var dummyClass string
				_ = json.Unmarshal(value, &dummyClass)
				coding.dummyClass = dummyClass
			} else {
				var matrix [][]float64
				if err := json.Unmarshal(value, &matrix); err != nil {
					return nil, schemaErr("logistic regression: field %s: malformed %s coding matrix: %v", id, name, err)
				}
				coding.matrix = padCodingMatrix(matrix, fields[id])
			}
			codings[id] = coding
			break // 每个字段只有一种编码生效
		}
	}
	return codings, nil
}

// padCodingMatrix 把短于 len(词表)+1 的贡献行补零（末列为 missing 列）。
func padCodingMatrix(matrix [][]float64, f *core.Field) [][]float64 {
	if f == nil {
		return matrix
	}
	width := len(f.Vocabulary) + 1
	padded := make([][]float64, len(matrix))
	for i, row := range matrix {
		if len(row) >= width {
			padded[i] = row
			continue
		}
		full := make([]float64, width)
		copy(full, row)
		padded[i] = full
	}
	return padded
}
