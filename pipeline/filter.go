package pipeline

import (
	"context"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/pkg/dsl"
)

// Gate 是一个 Filter Node：CEL 表达式求值为 false 的输入行被拒绝。
// 拒绝是按请求的 INVALID_INPUT 错误，不影响模型状态与后续请求。
type Gate struct {
	Expr *dsl.Expr
}

// NewGate 编译过滤表达式并创建节点。
func NewGate(expr string) (*Gate, error) {
	e, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Gate{Expr: e}, nil
}

func (n *Gate) Name() string { return "filter.gate" }
func (n *Gate) Kind() Kind   { return KindFilter }

func (n *Gate) Process(ctx context.Context, row map[string]any) (map[string]any, error) {
	ok, err := n.Expr.EvalBool(row)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.NewDomainError(core.ModulePipeline, core.ErrorCodeInvalidInput,
			"filter: input row rejected by "+n.Expr.Source())
	}
	return row, nil
}
