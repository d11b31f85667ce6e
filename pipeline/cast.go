package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/pkg/conv"
)

// Cast 是一个 Cast Node：把原始输入行规整为按字段 ID 索引的类型化行。
//
//   - 键按字段 ID 或字段名解析，无法识别的键与 null 值静默丢弃
//   - 数值字段转 float64（数值字符串会被解析），转换失败是 INVALID_INPUT
//   - 其余 optype 转字符串
//
// 评估核心自身也会做同样的收口；在链上前置 Cast 可以让宿主尽早暴露脏输入。
type Cast struct {
	Resolver *core.FieldResolver
}

func (n *Cast) Name() string { return "cast" }
func (n *Cast) Kind() Kind   { return KindCast }

func (n *Cast) Process(ctx context.Context, row map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(row))
	for key, value := range row {
		if value == nil {
			continue
		}
		f, ok := n.Resolver.Field(key)
		if !ok {
			continue
		}
		if f.OpType == core.OpTypeNumeric {
			v, ok := conv.ToFloat64(value)
			if !ok {
				return nil, core.NewDomainError(core.ModulePipeline, core.ErrorCodeInvalidInput,
					fmt.Sprintf("cast: field %s (%s): %v is not numeric", f.ID, f.Name, value))
			}
			out[f.ID] = v
			continue
		}
		out[f.ID] = conv.FormatValue(value)
	}
	return out, nil
}
