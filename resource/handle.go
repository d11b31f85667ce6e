package resource

import (
	"context"
	"sync"

	"github.com/rushteam/logitkit/core"
	"github.com/rushteam/logitkit/model"
)

// State 是资源句柄的就绪状态。
type State string

const (
	StateLoading State = "loading" // 正在获取/解析资源
	StateReady   State = "ready"   // 模型已构建，可预测
	StateFailed  State = "failed"  // 加载或构建失败，不可恢复
)

// Handle 是模型资源的就绪状态机：Loading → Ready | Failed，转移只发生一次。
//
// Loading 期间发起的预测按请求顺序入队，转移到 Ready 后按原顺序恰好重放一次；
// 转移到 Failed 后逐个立即拒绝，之后不再重放。不依赖任何事件总线。
type Handle struct {
	source Source

	mu    sync.Mutex
	state State
	model model.Classifier
	err   error
	queue []*pending
}

type pending struct {
	input      map[string]any
	done       chan struct{}
	prediction *core.Prediction
	err        error
}

// NewHandle 创建处于 Loading 状态的句柄。调用 Load（通常在独立 goroutine 中）
// 触发获取与构建。
func NewHandle(source Source) *Handle {
	return &Handle{source: source, state: StateLoading}
}

// Load 获取并构建模型，然后完成一次性状态转移。
// 重复调用是无害的：第一次转移之后的结果会被丢弃。
func (h *Handle) Load(ctx context.Context) error {
	m, err := Open(ctx, h.source)
	h.transition(m, err)

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// transition 执行 Loading → Ready|Failed 的一次性转移，并处理排队的预测。
// 队列在锁外按顺序重放，保证请求顺序且不阻塞新请求。
func (h *Handle) transition(m model.Classifier, err error) {
	h.mu.Lock()
	if h.state != StateLoading {
		h.mu.Unlock()
		return
	}
	if err != nil {
		h.state = StateFailed
		h.err = err
	} else {
		h.state = StateReady
		h.model = m
	}
	queue := h.queue
	h.queue = nil
	h.mu.Unlock()

	for _, p := range queue {
		if err != nil {
			p.err = h.unavailable(err)
		} else {
			p.prediction, p.err = m.Predict(p.input)
		}
		close(p.done)
	}
}

func (h *Handle) unavailable(cause error) error {
	return core.NewDomainError(core.ModuleResource, core.ErrorCodeUnavailable,
		"resource: model load failed: "+cause.Error())
}

// State 返回当前状态。
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Model 返回已就绪的模型；未就绪或失败时返回错误。
func (h *Handle) Model() (model.Classifier, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch h.state {
	case StateReady:
		return h.model, nil
	case StateFailed:
		return nil, h.unavailable(h.err)
	default:
		return nil, core.NewDomainError(core.ModuleResource, core.ErrorCodeUnavailable,
			"resource: model is still loading")
	}
}

// Predict 发起一次预测。
//
// Ready：直接评估。Failed：立即拒绝。Loading：入队等待转移；
// ctx 取消只放弃等待，不影响队列中其他请求的顺序。
func (h *Handle) Predict(ctx context.Context, input map[string]any) (*core.Prediction, error) {
	h.mu.Lock()
	switch h.state {
	case StateReady:
		m := h.model
		h.mu.Unlock()
		return m.Predict(input)
	case StateFailed:
		err := h.err
		h.mu.Unlock()
		return nil, h.unavailable(err)
	}
	p := &pending{input: input, done: make(chan struct{})}
	h.queue = append(h.queue, p)
	h.mu.Unlock()

	select {
	case <-p.done:
		return p.prediction, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
