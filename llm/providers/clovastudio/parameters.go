package clovastudio

import (
	"context"

	"github.com/BaSui01/hyperclovax/llm"
)

const (
	paramReasoningEffort     = "reasoning_effort"
	paramMaxTokens           = "max_tokens"
	paramMaxCompletionTokens = "max_completion_tokens"

	// defaultReasoningEffort HCX-007 未指定时使用的推理档位。
	defaultReasoningEffort = "medium"
)

// MapModelParameters 应用模型相关的参数改写并返回结果。
// 只有推理模型（能力表中 Reasoning 为 true，即 HCX-007）需要改写：
//  1. 缺省补 reasoning_effort=medium，调用方已设置时绝不覆盖；
//  2. max_tokens 重命名为 max_completion_tokens，取值原样保留。
//
// 其余模型原样返回入参（恒等）。改写不修改入参映射。
// repetition_penalty、top_k 等 CLOVA Studio 额外参数一律透传。
func MapModelParameters(model string, params llm.Parameters) llm.Parameters {
	if !CapabilitiesFor(model).Reasoning {
		return params
	}

	out := params.Clone()
	if out == nil {
		out = make(llm.Parameters, 1)
	}

	if _, ok := out[paramReasoningEffort]; !ok {
		out[paramReasoningEffort] = defaultReasoningEffort
	}

	if v, ok := out[paramMaxTokens]; ok {
		delete(out, paramMaxTokens)
		out[paramMaxCompletionTokens] = v
	}

	return out
}

// reasoningParamsRewriter 把参数改写接入请求改写器链。
// 链在 Provider 构造时装配一次，同步与流式路径共用，保证
// 改写恰好发生一次，不会漏掉默认值也不会二次重命名。
type reasoningParamsRewriter struct{}

func (reasoningParamsRewriter) Name() string { return "clovastudio_reasoning_params" }

func (reasoningParamsRewriter) Rewrite(_ context.Context, req *llm.ChatRequest) (*llm.ChatRequest, error) {
	if req == nil {
		return req, nil
	}
	req.Parameters = MapModelParameters(req.Model, req.Parameters)
	return req, nil
}
