package model

import (
	"context"
	"testing"

	"github.com/rushteam/logitkit/core"
)

func TestPredictBatch(t *testing.T) {
	m := mustModel(t, numericResource)

	rows := make([]map[string]any, 50)
	for i := range rows {
		rows[i] = map[string]any{"age": i}
	}

	results, err := PredictBatch(context.Background(), m, rows, 4)
	if err != nil {
		t.Fatalf("batch predict: %v", err)
	}
	if len(results) != len(rows) {
		t.Fatalf("got %d results, want %d", len(results), len(rows))
	}
	// 结果顺序与输入一致
	for i, got := range results {
		want, err := m.Predict(rows[i])
		if err != nil {
			t.Fatalf("predict row %d: %v", i, err)
		}
		if got.Prediction != want.Prediction || got.Probability != want.Probability {
			t.Errorf("row %d: batch result %+v != single result %+v", i, got, want)
		}
	}
}

func TestPredictBatchFailsFast(t *testing.T) {
	m := mustModel(t, numericResource)

	rows := []map[string]any{
		{"age": 10},
		{"age": "not a number"},
		{"age": 20},
	}
	results, err := PredictBatch(context.Background(), m, rows, 0)
	if !core.IsValidationError(err) {
		t.Fatalf("expected INVALID_INPUT error, got %v", err)
	}
	if results != nil {
		t.Errorf("failed batch must not return partial results")
	}
}
