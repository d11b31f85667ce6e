package resource

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/pipeline"
)

// Predictor 把输入处理链与模型句柄组合成一个可直接服务请求的单元：
// 原始行先过 Pipeline（cast/transform/filter），再交给 Handle 评估。
type Predictor struct {
	Handle   *Handle
	Pipeline *pipeline.Pipeline
}

// Predict 处理并评估一行输入。
func (p *Predictor) Predict(ctx context.Context, row map[string]any) (*core.Prediction, error) {
	if p.Pipeline != nil {
		processed, err := p.Pipeline.Run(ctx, row)
		if err != nil {
			return nil, err
		}
		row = processed
	}
	return p.Handle.Predict(ctx, row)
}

// PredictBatch 并发处理多行输入，返回与输入同序的结果。
// maxConcurrent <= 0 表示不限并发；任一行失败则整批失败。
func (p *Predictor) PredictBatch(ctx context.Context, rows []map[string]any, maxConcurrent int) ([]*core.Prediction, error) {
	results := make([]*core.Prediction, len(rows))

	eg, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		eg.SetLimit(maxConcurrent)
	}
	for i, row := range rows {
		i, row := i, row
		eg.Go(func() error {
			out, err := p.Predict(ctx, row)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
