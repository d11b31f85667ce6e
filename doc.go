// Package logitkit 是一个多项逻辑回归模型的离线评估工具包（Logistic Regression Kit）。
//
// 设计要点：
// - Build-once: 模型从一份 JSON 资源构建一次，之后不可变，预测可安全并发
// - Offline-first: 评估核心是纯函数，单次预测不做任何 I/O；取资源与就绪通知收敛在 resource 包
// - Pipeline 可扩展: 预测前的输入处理（cast/transform/filter）通过 Node 串联，可配置驱动
package logitkit

import (
	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/model"
	"github.com/rushteam/logitkit/resource"
)

// 轻量 facade：便于用户直接 import "logitkit" 使用核心抽象。
type Prediction = core.Prediction
type CategoryProbability = core.CategoryProbability
type Classifier = model.Classifier
type LogisticRegression = model.LogisticRegression
type Handle = resource.Handle
type Predictor = resource.Predictor

// NewLogisticRegression 从资源 JSON 构建模型。
var NewLogisticRegression = model.NewLogisticRegression

// NewHandle 创建处于 Loading 状态的模型资源句柄。
var NewHandle = resource.NewHandle
