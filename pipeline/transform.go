package pipeline

import (
	"context"

	"github.com/rushteam/logitkit/pkg/dsl"
)

// DerivedField 是一个 Transform Node：用 CEL 表达式在输入行上派生新字段。
// 例如用 `row.weight / (row.height * row.height)` 派生 bmi 字段。
// 输入行不被原地修改，结果写入副本。
type DerivedField struct {
	Field string
	Expr  *dsl.Expr
}

// NewDerivedField 编译表达式并创建节点，表达式错误在构建期暴露。
func NewDerivedField(field, expr string) (*DerivedField, error) {
	e, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &DerivedField{Field: field, Expr: e}, nil
}

func (n *DerivedField) Name() string { return "transform.derived" }
func (n *DerivedField) Kind() Kind   { return KindTransform }

func (n *DerivedField) Process(ctx context.Context, row map[string]any) (map[string]any, error) {
	value, err := n.Expr.Eval(row)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(row)+1)
	for k, v := range row {
		out[k] = v
	}
	out[n.Field] = value
	return out, nil
}
