package observability

import (
	"sort"
	"sync"

	"github.com/BaSui01/hyperclovax/llm"
)

// ModelUsage 单模型累计用量。
type ModelUsage struct {
	Model            string
	Requests         int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// UsageSummary 会话级用量汇总。
type UsageSummary struct {
	Requests         int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	AvgTokensPerReq  float64
}

// UsageTracker 会话级 Token 用量追踪器。
// CLOVA Studio 按 Token 计费，调用方可拿汇总结果自行换算费用。
type UsageTracker struct {
	mu       sync.Mutex
	perModel map[string]*ModelUsage
	summary  UsageSummary
}

// NewUsageTracker 创建用量追踪器。
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{
		perModel: make(map[string]*ModelUsage),
	}
}

// Track 记录一次请求的用量。
func (t *UsageTracker) Track(model string, usage llm.ChatUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.perModel[model]
	if !ok {
		m = &ModelUsage{Model: model}
		t.perModel[model] = m
	}
	m.Requests++
	m.PromptTokens += usage.PromptTokens
	m.CompletionTokens += usage.CompletionTokens
	m.TotalTokens += usage.TotalTokens

	t.summary.Requests++
	t.summary.PromptTokens += usage.PromptTokens
	t.summary.CompletionTokens += usage.CompletionTokens
	t.summary.TotalTokens += usage.TotalTokens
	t.summary.AvgTokensPerReq = float64(t.summary.TotalTokens) / float64(t.summary.Requests)
}

// Summary 获取会话级汇总。
func (t *UsageTracker) Summary() UsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// ModelSummary 获取单个模型的累计用量。
func (t *UsageTracker) ModelSummary(model string) (ModelUsage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.perModel[model]
	if !ok {
		return ModelUsage{}, false
	}
	return *m, true
}

// PerModel 返回按模型名排序的用量快照。
func (t *UsageTracker) PerModel() []ModelUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]ModelUsage, 0, len(t.perModel))
	for _, m := range t.perModel {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// Reset 重置统计。
func (t *UsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.perModel = make(map[string]*ModelUsage)
	t.summary = UsageSummary{}
}
