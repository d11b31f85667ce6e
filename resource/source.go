// Package resource 负责模型资源的获取与就绪管理。
//
// 评估核心（model 包）是离线纯函数；取资源、解析、就绪通知这类协作方关注点
// 全部收敛在这里，预测调用永远不会在核心里阻塞 I/O。
package resource

import (
	"context"
	"fmt"
	"os"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/model"
)

// Source 是模型资源的来源：一次 Fetch 返回完整的资源 JSON 负载。
type Source interface {
	// Name 返回来源名称（用于日志/监控）
	Name() string

	// Fetch 获取资源负载
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource 从本地文件读取资源 JSON。
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", s.Path, err)
	}
	return data, nil
}

// StoreSource 从 KV 存储（内存/Redis）按 key 读取资源 JSON。
type StoreSource struct {
	Store core.Store
	Key   string
}

func (s *StoreSource) Name() string { return "store:" + s.Store.Name() }

func (s *StoreSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		return nil, fmt.Errorf("resource: %s get %s: %w", s.Store.Name(), s.Key, err)
	}
	return data, nil
}

// StaticSource 直接持有内存中的资源负载（同步供给的资源）。
type StaticSource struct {
	Payload []byte
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Fetch(ctx context.Context) ([]byte, error) {
	if len(s.Payload) == 0 {
		return nil, core.NewDomainError(core.ModuleResource, core.ErrorCodeNotFound, "resource: empty static payload")
	}
	return s.Payload, nil
}

// Open 同步获取并构建模型：取负载、解码、构建内部表示。
// 构建失败（SCHEMA）是致命错误，不返回任何部分状态。
func Open(ctx context.Context, src Source) (*model.LogisticRegression, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewLogisticRegression(data)
}
