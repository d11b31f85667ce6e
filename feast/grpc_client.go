package feast

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// GrpcClient 是基于官方 Feast Go SDK 的 gRPC 客户端实现。
//
// 使用官方 SDK (github.com/feast-dev/feast/sdk/go) 提供的 gRPC 客户端。
// 实时特征获取走二进制协议、连接复用，适合在线预测链路。
type GrpcClient struct {
	client *feastsdk.GrpcClient

	// Project 项目名称
	Project string
}

// NewGrpcClient 创建一个基于官方 SDK 的 Feast gRPC 客户端。
// port 为 0 时使用默认 gRPC 端口 6565。
func NewGrpcClient(host string, port int, project string) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: new grpc client: %w", err)
	}
	return &GrpcClient{client: client, Project: project}, nil
}

// GetOnlineFeatures 获取在线特征（实现 Client 接口）
func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("feast: features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("feast: entity rows are required")
	}
	project := req.Project
	if project == "" {
		project = c.Project
	}
	if project == "" {
		return nil, fmt.Errorf("feast: project is required")
	}

	entityRows := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		entityRow := make(feastsdk.Row, len(row))
		for k, v := range row {
			entityRow[k] = toSDKValue(v)
		}
		entityRows[i] = entityRow
	}

	sdkResp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entityRows,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	sdkRows := sdkResp.Rows()
	if len(sdkRows) != len(req.EntityRows) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d", len(req.EntityRows), len(sdkRows))
	}

	rows := make([]map[string]any, len(sdkRows))
	for i, sdkRow := range sdkRows {
		values := make(map[string]any, len(req.Features))
		for _, name := range req.Features {
			if val, ok := sdkRow[name]; ok {
				if converted := fromSDKValue(val); converted != nil {
					values[name] = converted
				}
			}
		}
		rows[i] = values
	}
	return &GetOnlineFeaturesResponse{Rows: rows}, nil
}

// Close 关闭客户端连接（实现 Client 接口）
func (c *GrpcClient) Close() error {
	// 官方 SDK 的连接由 gRPC 库管理，没有显式的 Close
	c.client = nil
	return nil
}

// toSDKValue 把任意标量转换为 SDK 的 *types.Value
func toSDKValue(v any) *feasttypes.Value {
	switch val := v.(type) {
	case string:
		return feastsdk.StrVal(val)
	case int:
		return feastsdk.Int64Val(int64(val))
	case int64:
		return feastsdk.Int64Val(val)
	case int32:
		return feastsdk.Int32Val(val)
	case float64:
		return feastsdk.DoubleVal(val)
	case float32:
		return feastsdk.FloatVal(val)
	case bool:
		return feastsdk.BoolVal(val)
	case []byte:
		return feastsdk.BytesVal(val)
	default:
		return feastsdk.StrVal(fmt.Sprintf("%v", val))
	}
}

// fromSDKValue 把 SDK 的 *types.Value 还原为预测输入可用的标量
func fromSDKValue(val *feasttypes.Value) any {
	if val == nil {
		return nil
	}
	switch v := val.GetVal().(type) {
	case *feasttypes.Value_StringVal:
		return v.StringVal
	case *feasttypes.Value_Int32Val:
		return float64(v.Int32Val)
	case *feasttypes.Value_Int64Val:
		return float64(v.Int64Val)
	case *feasttypes.Value_FloatVal:
		return float64(v.FloatVal)
	case *feasttypes.Value_DoubleVal:
		return v.DoubleVal
	case *feasttypes.Value_BoolVal:
		return v.BoolVal
	case *feasttypes.Value_BytesVal:
		return string(v.BytesVal)
	default:
		return nil
	}
}
