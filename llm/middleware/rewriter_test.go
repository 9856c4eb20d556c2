package middleware

import (
	"context"
	"errors"
	"testing"

	llmpkg "github.com/BaSui01/hyperclovax/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRewriter 记录执行顺序，可注入错误或改写函数
type stubRewriter struct {
	name    string
	err     error
	rewrite func(*llmpkg.ChatRequest) *llmpkg.ChatRequest
	calls   *[]string
}

func (s *stubRewriter) Name() string { return s.name }

func (s *stubRewriter) Rewrite(_ context.Context, req *llmpkg.ChatRequest) (*llmpkg.ChatRequest, error) {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.rewrite != nil {
		return s.rewrite(req), nil
	}
	return req, nil
}

func TestRewriterChain_Execute(t *testing.T) {
	t.Run("空链原样返回请求", func(t *testing.T) {
		req := &llmpkg.ChatRequest{Model: "HCX-005"}

		got, err := NewRewriterChain().Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Same(t, req, got)
	})

	t.Run("nil 链原样返回请求", func(t *testing.T) {
		var chain *RewriterChain
		req := &llmpkg.ChatRequest{Model: "HCX-005"}

		got, err := chain.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Same(t, req, got)
	})

	t.Run("按注册顺序执行所有改写器", func(t *testing.T) {
		var calls []string
		chain := NewRewriterChain(
			&stubRewriter{name: "first", calls: &calls},
			&stubRewriter{name: "second", calls: &calls},
		)

		_, err := chain.Execute(context.Background(), &llmpkg.ChatRequest{})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("改写结果传递给下一个改写器", func(t *testing.T) {
		chain := NewRewriterChain(
			&stubRewriter{name: "set_model", rewrite: func(req *llmpkg.ChatRequest) *llmpkg.ChatRequest {
				out := *req
				out.Model = "HCX-007"
				return &out
			}},
		)

		got, err := chain.Execute(context.Background(), &llmpkg.ChatRequest{Model: "HCX-003"})

		require.NoError(t, err)
		assert.Equal(t, "HCX-007", got.Model)
	})

	t.Run("任一改写器失败则中断并包装错误", func(t *testing.T) {
		var calls []string
		boom := errors.New("boom")
		chain := NewRewriterChain(
			&stubRewriter{name: "first", calls: &calls},
			&stubRewriter{name: "broken", err: boom, calls: &calls},
			&stubRewriter{name: "never", calls: &calls},
		)

		got, err := chain.Execute(context.Background(), &llmpkg.ChatRequest{})

		assert.Nil(t, got)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "rewriter [broken] failed")
		assert.Equal(t, []string{"first", "broken"}, calls)
	})
}

func TestRewriterChain_AddRewriter(t *testing.T) {
	chain := NewRewriterChain()
	assert.Empty(t, chain.GetRewriters())

	chain.AddRewriter(&stubRewriter{name: "late"})

	require.Len(t, chain.GetRewriters(), 1)
	assert.Equal(t, "late", chain.GetRewriters()[0].Name())
}
