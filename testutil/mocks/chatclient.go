// MockChatClient 是 OpenAI 兼容基础客户端的测试模拟实现。
//
// 支持固定响应、流式输出、凭据校验与错误注入场景，并记录适配层
// 转交的请求与补全后的凭据，便于断言补全行为。
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/BaSui01/hyperclovax/llm"
)

// --- MockChatClient 结构 ---

// MockChatClient 是 llm.ChatClient 的模拟实现
type MockChatClient struct {
	mu sync.RWMutex

	// 响应配置
	response     string
	streamChunks []string
	toolCalls    []llm.ToolCall
	err          error
	validateErr  error

	// Token 使用统计
	promptTokens     int
	completionTokens int

	// 调用记录
	calls          []MockClientCall
	completionFunc func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)
	streamFunc     func(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamChunk, error)
	validateFunc   func(ctx context.Context, model string, creds llm.Credentials) error

	callCount int
}

// 编译期断言：MockChatClient 满足 ChatClient 契约
var _ llm.ChatClient = (*MockChatClient)(nil)

// MockClientCall 记录单次调用。
// Request 仅对 completion/stream 调用存在；Credentials 为适配层
// 实际交给客户端的凭据（validate 路径取入参，另两条路径取请求内凭据）。
type MockClientCall struct {
	Op          string // completion / stream / validate
	Model       string
	Credentials llm.Credentials
	Request     *llm.ChatRequest
	Response    *llm.ChatResponse
	Error       error
}

// --- 构造函数和 Builder 方法 ---

// NewMockChatClient 创建新的 MockChatClient
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{
		response:         "Mock response",
		streamChunks:     []string{},
		toolCalls:        []llm.ToolCall{},
		calls:            []MockClientCall{},
		promptTokens:     10,
		completionTokens: 20,
	}
}

// WithResponse 设置固定响应内容
func (m *MockChatClient) WithResponse(response string) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	return m
}

// WithError 设置 Completion/Stream 返回错误
func (m *MockChatClient) WithError(err error) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithValidationError 设置 ValidateCredentials 返回错误
func (m *MockChatClient) WithValidationError(err error) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validateErr = err
	return m
}

// WithStreamChunks 设置流式响应块
func (m *MockChatClient) WithStreamChunks(chunks []string) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamChunks = chunks
	return m
}

// WithToolCalls 设置工具调用响应
func (m *MockChatClient) WithToolCalls(toolCalls []llm.ToolCall) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toolCalls = toolCalls
	return m
}

// WithTokenUsage 设置 Token 使用量
func (m *MockChatClient) WithTokenUsage(prompt, completion int) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promptTokens = prompt
	m.completionTokens = completion
	return m
}

// WithCompletionFunc 设置自定义 Completion 函数
func (m *MockChatClient) WithCompletionFunc(fn func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completionFunc = fn
	return m
}

// WithStreamFunc 设置自定义 Stream 函数
func (m *MockChatClient) WithStreamFunc(fn func(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamChunk, error)) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamFunc = fn
	return m
}

// WithValidateFunc 设置自定义 ValidateCredentials 函数
func (m *MockChatClient) WithValidateFunc(fn func(ctx context.Context, model string, creds llm.Credentials) error) *MockChatClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validateFunc = fn
	return m
}

// --- ChatClient 接口实现 ---

// Completion 生成响应
func (m *MockChatClient) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++

	if m.err != nil {
		m.calls = append(m.calls, MockClientCall{
			Op: "completion", Model: req.Model, Credentials: req.Credentials,
			Request: req, Error: m.err,
		})
		return nil, m.err
	}

	if m.completionFunc != nil {
		resp, err := m.completionFunc(ctx, req)
		m.calls = append(m.calls, MockClientCall{
			Op: "completion", Model: req.Model, Credentials: req.Credentials,
			Request: req, Response: resp, Error: err,
		})
		return resp, err
	}

	msg := llm.Message{
		Role:      llm.RoleAssistant,
		Content:   m.response,
		ToolCalls: m.toolCalls,
	}

	resp := &llm.ChatResponse{
		ID:       "mock-response-id",
		Provider: "mock",
		Model:    req.Model,
		Choices: []llm.ChatChoice{
			{
				Index:        0,
				FinishReason: "stop",
				Message:      msg,
			},
		},
		Usage: llm.ChatUsage{
			PromptTokens:     m.promptTokens,
			CompletionTokens: m.completionTokens,
			TotalTokens:      m.promptTokens + m.completionTokens,
		},
		CreatedAt: time.Now(),
	}

	if len(m.toolCalls) > 0 {
		resp.Choices[0].FinishReason = "tool_calls"
	}

	m.calls = append(m.calls, MockClientCall{
		Op: "completion", Model: req.Model, Credentials: req.Credentials,
		Request: req, Response: resp,
	})
	return resp, nil
}

// Stream 流式生成响应
func (m *MockChatClient) Stream(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++

	if m.err != nil {
		m.calls = append(m.calls, MockClientCall{
			Op: "stream", Model: req.Model, Credentials: req.Credentials,
			Request: req, Error: m.err,
		})
		return nil, m.err
	}

	m.calls = append(m.calls, MockClientCall{
		Op: "stream", Model: req.Model, Credentials: req.Credentials,
		Request: req,
	})

	if m.streamFunc != nil {
		return m.streamFunc(ctx, req)
	}

	ch := make(chan llm.StreamChunk, len(m.streamChunks)+1)

	// 配置过 token 用量时挂在末尾 chunk 上
	var finalUsage *llm.ChatUsage
	if m.promptTokens+m.completionTokens > 0 {
		finalUsage = &llm.ChatUsage{
			PromptTokens:     m.promptTokens,
			CompletionTokens: m.completionTokens,
			TotalTokens:      m.promptTokens + m.completionTokens,
		}
	}

	go func() {
		defer close(ch)

		// 未设置流式块时退化为单块完整响应
		if len(m.streamChunks) == 0 {
			ch <- llm.StreamChunk{
				ID:       "mock-chunk-id",
				Provider: "mock",
				Model:    req.Model,
				Delta: llm.Message{
					Role:    llm.RoleAssistant,
					Content: m.response,
				},
				FinishReason: "stop",
				Usage:        finalUsage,
			}
			return
		}

		for i, chunk := range m.streamChunks {
			finish := ""
			var usage *llm.ChatUsage
			if i == len(m.streamChunks)-1 {
				finish = "stop"
				usage = finalUsage
			}
			select {
			case <-ctx.Done():
				return
			case ch <- llm.StreamChunk{
				ID:       "mock-chunk-id",
				Provider: "mock",
				Model:    req.Model,
				Index:    i,
				Delta: llm.Message{
					Role:    llm.RoleAssistant,
					Content: chunk,
				},
				FinishReason: finish,
				Usage:        usage,
			}:
			}
		}
	}()

	return ch, nil
}

// ValidateCredentials 校验凭据
func (m *MockChatClient) ValidateCredentials(ctx context.Context, model string, creds llm.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++

	err := m.validateErr
	if m.validateFunc != nil {
		err = m.validateFunc(ctx, model, creds)
	}

	m.calls = append(m.calls, MockClientCall{
		Op: "validate", Model: model, Credentials: creds, Error: err,
	})
	return err
}

// --- 查询方法 ---

// GetCalls 获取所有调用记录
func (m *MockChatClient) GetCalls() []MockClientCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]MockClientCall{}, m.calls...)
}

// GetCallCount 获取调用次数
func (m *MockChatClient) GetCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.callCount
}

// GetLastCall 获取最后一次调用
func (m *MockChatClient) GetLastCall() *MockClientCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset 重置所有状态
func (m *MockChatClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = []MockClientCall{}
	m.callCount = 0
	m.err = nil
	m.validateErr = nil
}

// --- 预设 Client 工厂 ---

// NewSuccessClient 创建总是成功的客户端
func NewSuccessClient(response string) *MockChatClient {
	return NewMockChatClient().WithResponse(response)
}

// NewErrorClient 创建总是失败的客户端
func NewErrorClient(err error) *MockChatClient {
	return NewMockChatClient().WithError(err)
}

// NewStreamClient 创建流式响应的客户端
func NewStreamClient(chunks []string) *MockChatClient {
	return NewMockChatClient().WithStreamChunks(chunks)
}

// NewUnauthorizedClient 创建凭据校验必然失败的客户端，
// 错误为 Code=ErrUnauthorized 的 *llm.Error（凭据被服务端拒绝）。
func NewUnauthorizedClient() *MockChatClient {
	return NewMockChatClient().WithValidationError(&llm.Error{
		Code:       llm.ErrUnauthorized,
		Message:    "invalid api key",
		HTTPStatus: 401,
		Provider:   "mock",
	})
}
