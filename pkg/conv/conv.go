// Package conv 提供原始输入值与配置项的类型转换工具，用于简化各模块中的重复逻辑。
package conv

import (
	"fmt"
	"strconv"
)

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；数值字符串会被解析；bool 视为 1.0/0.0。
// 预测输入行中的数值字段经常以字符串形式到达（CSV、表单），因此字符串解析是一等能力。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ToInt 将 any 转为 int。
// 支持 int、int64、int32、float64、float32；JSON 解码出的数值统一为 float64，在此收口。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 字符串直接返回；数值格式化为最短十进制表示（类别值在 JSON 中可能是数字）；
// bool 格式化为 "true"/"false"。其余类型返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// ToStringSlice 将 []any 转为 []string，元素按 ToString 规则转换，失败的元素被跳过。
func ToStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := ToString(e); ok {
			out = append(out, s)
		}
	}
	return out
}

// ToFloat64Slice 将 []any 转为 []float64，失败的元素被跳过。
func ToFloat64Slice(v any) []float64 {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, e := range raw {
		if f, ok := ToFloat64(e); ok {
			out = append(out, f)
		}
	}
	return out
}

// ConfigGet 从 map[string]any（如 YAML/JSON 解析结果）按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetInt 从 config 取 int。YAML/JSON 常得到 int 或 float64，此处兼容并统一。
func ConfigGetInt(m map[string]any, key string, defaultVal int) int {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	if i, ok := ToInt(v); ok {
		return i
	}
	return defaultVal
}

// FormatValue 把任意标量格式化为词表比对用的字符串，等价于 ToString，
// 但对未知类型退化为 fmt.Sprintf("%v")，保证总能得到一个 key。
func FormatValue(v any) string {
	if s, ok := ToString(v); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
