package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const pipelineYAML = `
pipeline:
  name: churn
  nodes:
    - type: transform.derived
      config: {field: bmi, expr: "row.weight / (row.height * row.height)"}
    - type: filter.gate
      config: {expr: "row.bmi < 30.0"}
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func registeredFactory(t *testing.T) *NodeFactory {
	t.Helper()
	factory := NewNodeFactory()
	factory.Register("transform.derived", func(cfg map[string]any) (Node, error) {
		return NewDerivedField(cfg["field"].(string), cfg["expr"].(string))
	})
	factory.Register("filter.gate", func(cfg map[string]any) (Node, error) {
		return NewGate(cfg["expr"].(string))
	})
	return factory
}

func TestLoadFromYAML(t *testing.T) {
	cfg, err := LoadFromYAML(writeTempFile(t, "pipeline.yaml", pipelineYAML))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if cfg.Pipeline.Name != "churn" {
		t.Errorf("name = %q, want churn", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(cfg.Pipeline.Nodes))
	}
	if cfg.Pipeline.Nodes[0].Type != "transform.derived" {
		t.Errorf("node 0 type = %q, want transform.derived", cfg.Pipeline.Nodes[0].Type)
	}
}

func TestLoadFromJSON(t *testing.T) {
	content := `{"pipeline": {"name": "churn", "nodes": [{"type": "filter.gate", "config": {"expr": "row.age > 0.0"}}]}}`
	cfg, err := LoadFromJSON(writeTempFile(t, "pipeline.json", content))
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if len(cfg.Pipeline.Nodes) != 1 || cfg.Pipeline.Nodes[0].Type != "filter.gate" {
		t.Errorf("unexpected nodes: %+v", cfg.Pipeline.Nodes)
	}
}

func TestConfigBuildPipeline(t *testing.T) {
	cfg, err := LoadFromYAML(writeTempFile(t, "pipeline.yaml", pipelineYAML))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	p, err := cfg.BuildPipeline(registeredFactory(t))
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}
	if len(p.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(p.Nodes))
	}

	out, err := p.Run(context.Background(), map[string]any{"weight": 80.0, "height": 2.0})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out["bmi"] != 20.0 {
		t.Errorf("bmi = %v, want 20", out["bmi"])
	}

	cfg.Pipeline.Nodes[0].Type = "nope"
	if _, err := cfg.BuildPipeline(registeredFactory(t)); err == nil {
		t.Error("expected error for unregistered node type")
	}
}
