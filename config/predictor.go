package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/logitkit/pipeline"
	"github.com/rushteam/logitkit/resource"
	"github.com/rushteam/logitkit/store"
)

// PredictorConfig 描述一个完整的预测单元：模型资源来源 + 输入处理链。
//
// 示例：
//
//	model:
//	  source: redis
//	  addr: 127.0.0.1:6379
//	  key: models/churn-v3
//	pipeline:
//	  name: churn
//	  nodes:
//	    - type: transform.derived
//	      config: {field: bmi, expr: "row.weight / (row.height * row.height)"}
//	    - type: filter.gate
//	      config: {expr: "row.age >= 18.0"}
type PredictorConfig struct {
	Model struct {
		Source string `yaml:"source" json:"source"` // file / redis
		Path   string `yaml:"path" json:"path"`     // file 来源：资源 JSON 路径
		Addr   string `yaml:"addr" json:"addr"`     // redis 来源：地址
		DB     int    `yaml:"db" json:"db"`         // redis 来源：库号
		Key    string `yaml:"key" json:"key"`       // redis 来源：资源 key
	} `yaml:"model" json:"model"`

	Pipeline struct {
		Name  string                `yaml:"name" json:"name"`
		Nodes []pipeline.NodeConfig `yaml:"nodes" json:"nodes"`
	} `yaml:"pipeline" json:"pipeline"`
}

// LoadPredictorConfig 从 YAML 文件加载预测单元配置。
func LoadPredictorConfig(path string) (*PredictorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var cfg PredictorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// BuildPredictor 根据配置构建预测单元。
//
// 返回的 Handle 处于 Loading 状态，由调用方决定同步加载（handle.Load(ctx)）
// 还是后台加载（go handle.Load(ctx)，期间的预测请求排队等待）。
func (c *PredictorConfig) BuildPredictor() (*resource.Predictor, error) {
	source, err := c.buildSource()
	if err != nil {
		return nil, err
	}

	factory := DefaultFactory()
	nodes := make([]pipeline.Node, 0, len(c.Pipeline.Nodes))
	for _, nc := range c.Pipeline.Nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("build node %s: %w", nc.Type, err)
		}
		nodes = append(nodes, node)
	}

	return &resource.Predictor{
		Handle:   resource.NewHandle(source),
		Pipeline: &pipeline.Pipeline{Nodes: nodes},
	}, nil
}

func (c *PredictorConfig) buildSource() (resource.Source, error) {
	switch c.Model.Source {
	case "file":
		if c.Model.Path == "" {
			return nil, fmt.Errorf("model source %q: path not found", c.Model.Source)
		}
		return &resource.FileSource{Path: c.Model.Path}, nil
	case "redis":
		if c.Model.Key == "" {
			return nil, fmt.Errorf("model source %q: key not found", c.Model.Source)
		}
		s, err := store.NewRedisStore(c.Model.Addr, c.Model.DB)
		if err != nil {
			return nil, fmt.Errorf("model source %q: %w", c.Model.Source, err)
		}
		return &resource.StoreSource{Store: s, Key: c.Model.Key}, nil
	default:
		return nil, fmt.Errorf("unknown model source: %q", c.Model.Source)
	}
}
