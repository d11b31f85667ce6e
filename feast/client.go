// Package feast 提供从 Feast Feature Store 拉取预测输入行的协作方实现。
//
// 评估核心只接受一行原始字段值；当这些值存放在在线特征库时，
// RowProvider 负责按实体 ID 取回它们并组装成 Predict 的输入。
package feast

import "context"

// Client 是 Feast 在线特征读取的领域接口。
//
// 设计原则（DDD）：
//   - 领域层：Client 接口，按预测的需要收敛为在线读取
//   - 基础设施层：GrpcClient（官方 SDK）实现此接口
//   - 高内聚低耦合：通过接口抽象，可以替换实现
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时预测）
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["patient_stats:age", "patient_stats:plan"]
	Features []string

	// EntityRows 实体行，例如 [{"patient_id": "p-1001"}]
	EntityRows []map[string]any

	// Project 项目名称（可选，默认取客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// Rows 特征值行，与请求的 EntityRows 一一对应；key 为特征名称
	Rows []map[string]any
}
