package model

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/rushteam/logitkit/core"
)

// 最小可用的数值字段模型：一个输入字段 age，两个类别 yes/no
const numericResource = `{
  "resource": "logisticregression/000000000000000000000001",
  "status": {"code": 5},
  "input_fields": ["000001"],
  "objective_fields": ["000002"],
  "logistic_regression": {
    "bias": true,
    "missing_numerics": false,
    "coefficients": [
      ["yes", [[0.02], [-1.0]]],
      ["no", [[-0.02], [1.0]]]
    ],
    "fields": {
      "000001": {"name": "age", "optype": "numeric", "column_number": 0},
      "000002": {"name": "class", "optype": "categorical", "column_number": 1,
                 "summary": {"categories": [["yes", 10], ["no", 8]]}}
    }
  }
}`

// 与 numericResource 等价，但系数是遗留的扁平格式
const numericResourceFlat = `{
  "resource": "logisticregression/000000000000000000000001",
  "status": {"code": 5},
  "input_fields": ["000001"],
  "objective_fields": ["000002"],
  "logistic_regression": {
    "bias": true,
    "missing_numerics": false,
    "coefficients": [
      ["yes", [0.02, -1.0]],
      ["no", [-0.02, 1.0]]
    ],
    "fields": {
      "000001": {"name": "age", "optype": "numeric", "column_number": 0},
      "000002": {"name": "class", "optype": "categorical", "column_number": 1,
                 "summary": {"categories": [["yes", 10], ["no", 8]]}}
    }
  }
}`

func TestNewLogisticRegression(t *testing.T) {
	m, err := NewLogisticRegression([]byte(numericResource))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := m.ObjectiveField(); got != "000002" {
		t.Errorf("objective field = %q, want 000002", got)
	}
	if got := m.InputFields(); !reflect.DeepEqual(got, []string{"000001"}) {
		t.Errorf("input fields = %v, want [000001]", got)
	}
	if m.MissingNumerics() {
		t.Errorf("missing numerics should be disabled")
	}
	if _, ok := m.Resolver().Field("age"); !ok {
		t.Errorf("field lookup by name failed")
	}
	if id, _ := m.Resolver().Resolve("age"); id != "000001" {
		t.Errorf("resolve(age) = %q, want 000001", id)
	}
}

func TestNewLogisticRegressionSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing logistic_regression key",
			data: `{"status": {"code": 5}, "objective_fields": ["000002"]}`,
		},
		{
			name: "resource not finished",
			data: `{"status": {"code": 1}, "logistic_regression": {"fields": {"000001": {"name": "age", "optype": "numeric"}}, "coefficients": [["yes", [[0.1], [0.0]]]]}}`,
		},
		{
			name: "missing fields",
			data: `{"status": {"code": 5}, "objective_fields": ["000002"], "logistic_regression": {"coefficients": [["yes", [0.1, 0.0]]]}}`,
		},
		{
			name: "missing coefficients",
			data: `{"status": {"code": 5}, "objective_fields": ["000002"], "logistic_regression": {"fields": {"000002": {"name": "class", "optype": "categorical", "summary": {"categories": [["yes", 1]]}}}}}`,
		},
		{
			name: "missing objective",
			data: `{"status": {"code": 5}, "logistic_regression": {"fields": {"000001": {"name": "age", "optype": "numeric"}}, "coefficients": [["yes", [0.1, 0.0]]]}}`,
		},
		{
			name: "flat vector length mismatch",
			data: `{"status": {"code": 5}, "objective_fields": ["000002"], "input_fields": ["000001"], "logistic_regression": {"bias": true, "coefficients": [["yes", [0.1]]], "fields": {"000001": {"name": "age", "optype": "numeric", "column_number": 0}, "000002": {"name": "class", "optype": "categorical", "column_number": 1, "summary": {"categories": [["yes", 1]]}}}}}`,
		},
		{
			name: "grouped vector group count mismatch",
			data: `{"status": {"code": 5}, "objective_fields": ["000002"], "input_fields": ["000001"], "logistic_regression": {"bias": true, "coefficients": [["yes", [[0.1], [0.2], [0.0]]]], "fields": {"000001": {"name": "age", "optype": "numeric", "column_number": 0}, "000002": {"name": "class", "optype": "categorical", "column_number": 1, "summary": {"categories": [["yes", 1]]}}}}}`,
		},
		{
			name: "input field not in field set",
			data: `{"status": {"code": 5}, "objective_fields": ["000002"], "input_fields": ["000009"], "logistic_regression": {"bias": true, "coefficients": [["yes", [0.1, 0.0]]], "fields": {"000001": {"name": "age", "optype": "numeric", "column_number": 0}, "000002": {"name": "class", "optype": "categorical", "column_number": 1, "summary": {"categories": [["yes", 1]]}}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLogisticRegression([]byte(tt.data))
			if err == nil {
				t.Fatalf("expected schema error, got model %+v", m)
			}
			if !core.IsSchemaError(err) {
				t.Errorf("expected SCHEMA error, got %v", err)
			}
			if m != nil {
				t.Errorf("failed build must not expose partial model state")
			}
		})
	}
}

// 扁平系数与预分组系数的同一个模型必须给出完全相同的预测
func TestFlatAndGroupedCoefficientsEquivalent(t *testing.T) {
	grouped, err := NewLogisticRegression([]byte(numericResource))
	if err != nil {
		t.Fatalf("build grouped: %v", err)
	}
	flat, err := NewLogisticRegression([]byte(numericResourceFlat))
	if err != nil {
		t.Fatalf("build flat: %v", err)
	}

	inputs := []map[string]any{
		{"age": 50},
		{"age": 0},
		{"age": 17.5},
		{"age": "33"},
	}
	for _, input := range inputs {
		a, err := grouped.Predict(input)
		if err != nil {
			t.Fatalf("grouped predict %v: %v", input, err)
		}
		b, err := flat.Predict(input)
		if err != nil {
			t.Fatalf("flat predict %v: %v", input, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("input %v: grouped %+v != flat %+v", input, a, b)
		}
	}
}

// 无 input_fields 声明时按列号升序推导输入顺序
func TestInputFieldOrderFallsBackToColumnNumber(t *testing.T) {
	data := `{
	  "status": {"code": 5},
	  "objective_fields": ["000003"],
	  "logistic_regression": {
	    "bias": true,
	    "missing_numerics": true,
	    "coefficients": [
	      ["y", [0.1, 0.2, 0.3, 0.4, 0.5]],
	      ["n", [-0.1, -0.2, -0.3, -0.4, -0.5]]
	    ],
	    "fields": {
	      "000002": {"name": "height", "optype": "numeric", "column_number": 1},
	      "000001": {"name": "age", "optype": "numeric", "column_number": 0},
	      "000003": {"name": "class", "optype": "categorical", "column_number": 2,
	                 "summary": {"categories": [["y", 3], ["n", 2]]}}
	    }
	  }
	}`
	m, err := NewLogisticRegression([]byte(data))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := m.InputFields(); !reflect.DeepEqual(got, []string{"000001", "000002"}) {
		t.Fatalf("input fields = %v, want [000001 000002]", got)
	}
	// missing_numerics 开启时每个数值字段占两位，扁平向量重组为 [0.1 0.2][0.3 0.4][0.5]
	want := [][]float64{{0.1, 0.2}, {0.3, 0.4}, {0.5}}
	if got := m.coefficients["y"]; !reflect.DeepEqual(got, want) {
		t.Errorf("regrouped coefficients = %v, want %v", got, want)
	}
}

func TestNormalizeFieldCodings(t *testing.T) {
	base := `{
	  "status": {"code": 5},
	  "objective_fields": ["000002"],
	  "input_fields": ["000001"],
	  "logistic_regression": {
	    "bias": true,
	    "coefficients": [
	      ["churn", [[0.8], [0.1]]],
	      ["stay", [[-0.8], [-0.1]]]
	    ],
	    "field_codings": %s,
	    "fields": {
	      "000001": {"name": "plan", "optype": "categorical", "column_number": 0,
	                 "summary": {"categories": [["basic", 5], ["pro", 5]]}},
	      "000002": {"name": "class", "optype": "categorical", "column_number": 1,
	                 "summary": {"categories": [["churn", 4], ["stay", 6]]}}
	    }
	  }
	}`

	tests := []struct {
		name    string
		codings string
		want    [][]float64
	}{
		{
			name:    "legacy array format keyed by field name, short rows padded",
			codings: `[{"field": "plan", "coding": "contrast", "coefficients": [[1.0, -1.0]]}]`,
			want:    [][]float64{{1.0, -1.0, 0.0}},
		},
		{
			name:    "map format keyed by field id",
			codings: `{"000001": {"contrast": [[1.0, -1.0, 0.25]]}}`,
			want:    [][]float64{{1.0, -1.0, 0.25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLogisticRegression([]byte(fmt.Sprintf(base, tt.codings)))
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			coding := m.codings["000001"]
			if coding == nil {
				t.Fatalf("coding not normalized under field id (codings: %v)", m.codings)
			}
			if coding.coding != "contrast" {
				t.Errorf("coding name = %q, want contrast", coding.coding)
			}
			if !reflect.DeepEqual(coding.matrix, tt.want) {
				t.Errorf("coding matrix = %v, want %v", coding.matrix, tt.want)
			}
			// 按名字的条目不得残留
			if _, ok := m.codings["plan"]; ok {
				t.Errorf("name-keyed coding entry must be replaced by field id")
			}
		})
	}
}

func TestDummyCodingKeepsOneHotLayout(t *testing.T) {
	data := `{
	  "status": {"code": 5},
	  "objective_fields": ["000002"],
	  "input_fields": ["000001"],
	  "logistic_regression": {
	    "bias": true,
	    "coefficients": [
	      ["churn", [[0.8, -0.8, 0.2], [0.1]]],
	      ["stay", [[-0.8, 0.8, -0.2], [-0.1]]]
	    ],
	    "field_codings": [{"field": "plan", "coding": "dummy", "dummy_class": "basic"}],
	    "fields": {
	      "000001": {"name": "plan", "optype": "categorical", "column_number": 0,
	                 "summary": {"categories": [["basic", 5], ["pro", 5]]}},
	      "000002": {"name": "class", "optype": "categorical", "column_number": 1,
	                 "summary": {"categories": [["churn", 4], ["stay", 6]]}}
	    }
	  }
	}`
	m, err := NewLogisticRegression([]byte(data))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	coding := m.codings["000001"]
	if coding == nil || !coding.isDummy() {
		t.Fatalf("dummy coding should normalize to one-hot, got %+v", coding)
	}
	if coding.dummyClass != "basic" {
		t.Errorf("dummy class = %q, want basic", coding.dummyClass)
	}
}
