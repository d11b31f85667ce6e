package pipeline

import "context"

// Pipeline 把预测前的输入处理拆成可组合的 Node 链（cast → transform → filter）。
// 评估核心只接受处理后的行；链上任何一个 Node 失败则整次请求失败。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(ctx context.Context, row map[string]any) (map[string]any, error) {
	cur := row
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
