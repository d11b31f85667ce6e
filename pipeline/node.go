package pipeline

import "context"

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindCast      Kind = "cast"      // 类型化阶段：原始标量 → 按字段 optype 的类型化取值
	KindTransform Kind = "transform" // 变换阶段：派生字段、默认值回填
	KindFilter    Kind = "filter"    // 过滤阶段：拒绝不满足约束的输入行
)

// Node 是输入处理链的最小可扩展单元。
// 统一采用“输入 row -> 输出 row”的形态，实现必须把 row 当作不可变输入，
// 修改时返回新的 map，不得原地改写。
type Node interface {
	Name() string
	Kind() Kind

	Process(ctx context.Context, row map[string]any) (map[string]any, error)
}
