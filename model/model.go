package model

import "github.com/rushteam/logitkit/core"

// Classifier 是分类模型的最小抽象：输入一行原始字段值，输出类别概率分布。
// 具体实现当前只有本地的 LogisticRegression；满足此接口即可接入上层的
// Handle 就绪管理与批量预测。
type Classifier interface {
	Name() string
	Predict(input map[string]any) (*core.Prediction, error)
}
