package model

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/logitkit/core"
)

// PredictBatch 并发评估多行输入，返回与输入同序的结果。
//
// 模型构建后不可变，行间没有共享可变状态，可以安全并行。
// maxConcurrent <= 0 表示不限并发。任一行失败则整批失败（快速返回首个错误）。
func PredictBatch(ctx context.Context, c Classifier, rows []map[string]any, maxConcurrent int) ([]*core.Prediction, error) {
	results := make([]*core.Prediction, len(rows))

	eg, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		eg.SetLimit(maxConcurrent)
	}
	for i, row := range rows {
		i, row := i, row
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := c.Predict(row)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
