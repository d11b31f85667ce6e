// Package builders 在 init 中注册内置 Node 的配置构建器。
// 使用配置驱动时 import _ "github.com/rushteam/logitkit/config/builders" 即可。
package builders

import (
	"fmt"

	"github.com/rushteam/logitkit/config"
	"github.com/rushteam/logitkit/pipeline"
	"github.com/rushteam/logitkit/pkg/conv"
)

func init() {
	config.Register("transform.derived", BuildDerivedFieldNode)
	config.Register("filter.gate", BuildGateNode)
	// cast 需要模型的 FieldResolver，不从配置构建；
	// 用 config.BuildPredictor 或手工把 pipeline.Cast 挂到链首。
}

func BuildDerivedFieldNode(cfg map[string]any) (pipeline.Node, error) {
	field := conv.ConfigGet(cfg, "field", "")
	if field == "" {
		return nil, fmt.Errorf("field not found")
	}
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	return pipeline.NewDerivedField(field, expr)
}

func BuildGateNode(cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	return pipeline.NewGate(expr)
}
