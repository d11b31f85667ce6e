// Package dsl 基于 CEL (Common Expression Language) 提供输入行上的表达式求值。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = cel.NewEnv(
			cel.Variable("row", cel.DynType),
		)
	})
	if celEnv == nil {
		return nil, fmt.Errorf("dsl: cel env init failed: %v", err)
	}
	return celEnv, nil
}

// Expr 是编译好的行表达式，构建一次、可并发求值。
//
// 表达式语法（CEL 标准语法）：
//   - 取字段：row.age / row["000001"]
//   - 数值：row.age * 12.0 / row.height - row.weight
//   - 逻辑：row.age > 18.0 && row.plan == "premium"
//   - 存在性：row.age != null
type Expr struct {
	source string
	prg    cel.Program
}

// Compile 编译表达式。编译错误在构建期暴露，而不是留到每次预测。
func Compile(expr string) (*Expr, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %v", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %v", expr, err)
	}
	return &Expr{source: expr, prg: prg}, nil
}

// Source 返回表达式原文（用于日志/错误信息）。
func (e *Expr) Source() string { return e.source }

// Eval 在一行输入上求值，返回任意标量结果。
func (e *Expr) Eval(row map[string]any) (any, error) {
	out, _, err := e.prg.Eval(map[string]any{"row": row})
	if err != nil {
		return nil, fmt.Errorf("dsl: eval %q: %v", e.source, err)
	}
	return out.Value(), nil
}

// EvalBool 在一行输入上求值并要求布尔结果，用于过滤表达式。
func (e *Expr) EvalBool(row map[string]any) (bool, error) {
	v, err := e.Eval(row)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q must return boolean, got %T", e.source, v)
	}
	return b, nil
}
