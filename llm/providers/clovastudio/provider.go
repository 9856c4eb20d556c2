package clovastudio

import (
	"context"
	"errors"
	"time"

	"github.com/BaSui01/hyperclovax/llm"
	"github.com/BaSui01/hyperclovax/llm/middleware"
	"github.com/BaSui01/hyperclovax/llm/providers"

	"go.uber.org/zap"
)

// ProviderName 对外暴露的服务商标识。
const ProviderName = "hyperclovax"

// fallbackModel 请求与配置都未指定模型时的兜底选择。
const fallbackModel = "HCX-005"

// Provider 是 HyperCLOVA X 的调用门面。
// 它不继承基础客户端，而是持有一个注入的 llm.ChatClient：调用前补全
// 凭据与参数，然后把请求原样转交，响应与错误不做二次处理。
type Provider struct {
	client    llm.ChatClient
	cfg       providers.ClovaStudioConfig
	logger    *zap.Logger
	rewriters *middleware.RewriterChain
}

// 编译期断言：Provider 自身满足 ChatClient 契约，可与装饰器叠加。
var _ llm.ChatClient = (*Provider)(nil)

// New 创建 HyperCLOVA X Provider。client 为必传的基础客户端。
func New(client llm.ChatClient, cfg providers.ClovaStudioConfig, logger *zap.Logger) (*Provider, error) {
	if client == nil {
		return nil, errors.New("clovastudio: base client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		client: client,
		cfg:    cfg,
		logger: logger.With(zap.String("component", "clovastudio_provider")),
		// 参数改写链只在这里装配一次
		rewriters: middleware.NewRewriterChain(reasoningParamsRewriter{}),
	}, nil
}

// Name 返回服务商标识。
func (p *Provider) Name() string { return ProviderName }

// SupportsNativeFunctionCalling 返回模型是否支持原生工具调用。
// model 为空时取配置的默认模型。
func (p *Provider) SupportsNativeFunctionCalling(model string) bool {
	if model == "" {
		model = providers.ChooseModel(nil, p.cfg.Model, fallbackModel)
	}
	return CapabilitiesFor(model).ToolCalling
}

// Completion 发起同步聊天请求。
// 消息、工具、停止词与 user 原样转发，失败直接来自基础客户端。
func (p *Provider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	prepared, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := p.client.Completion(ctx, prepared)
	observeRequest(prepared.Model, "completion", time.Since(start), err)
	return resp, err
}

// Stream 发起流式聊天请求。
// 返回通道的挂起与背压语义完全由基础客户端决定，适配层不消费通道。
func (p *Provider) Stream(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamChunk, error) {
	prepared, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ch, err := p.client.Stream(ctx, prepared)
	observeRequest(prepared.Model, "stream", time.Since(start), err)
	return ch, err
}

// ValidateCredentials 校验凭据。
// 与 Completion/Stream 走完全相同的凭据补全，保证校验与实际调用使用
// 同一端点与能力标记；凭据被拒时基础客户端返回 Code 为
// llm.ErrUnauthorized 的错误，此处原样透传。
func (p *Provider) ValidateCredentials(ctx context.Context, model string, creds llm.Credentials) error {
	if model == "" {
		model = providers.ChooseModel(nil, p.cfg.Model, fallbackModel)
	}

	augmented := p.augmented(ctx, model, creds)

	err := p.client.ValidateCredentials(ctx, model, augmented)
	observeValidation(model, err)
	if err != nil {
		p.logger.Debug("credential validation failed",
			zap.String("model", model),
			zap.Error(err),
		)
	}
	return err
}

// prepare 构造交给基础客户端的请求副本：解析模型与凭据、补全能力
// 标记、执行参数改写链。调用方的请求与映射不会被修改。
func (p *Provider) prepare(ctx context.Context, req *llm.ChatRequest) (*llm.ChatRequest, error) {
	if req == nil {
		return nil, &llm.Error{
			Code:     llm.ErrInvalidRequest,
			Message:  "chat request is nil",
			Provider: ProviderName,
		}
	}

	prepared := *req
	prepared.Model = providers.ChooseModel(req, p.cfg.Model, fallbackModel)
	prepared.Credentials = p.augmented(ctx, prepared.Model, req.Credentials)

	out, err := p.rewriters.Execute(ctx, &prepared)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("prepared clova studio request",
		zap.String("model", out.Model),
		zap.Any("credentials", out.Credentials.Redacted()),
	)
	return out, nil
}

// augmented 返回本次调用最终生效的凭据：先按能力表补全，配置了
// BaseURL（私有网关）时再覆盖 endpoint_url。两条调用路径共用。
func (p *Provider) augmented(ctx context.Context, model string, creds llm.Credentials) llm.Credentials {
	out := AugmentCredentials(model, p.resolveCredentials(ctx, creds))
	if p.cfg.BaseURL != "" {
		out[llm.CredKeyEndpointURL] = p.cfg.BaseURL
	}
	return out
}

// resolveCredentials 解析本次调用的凭据来源：请求级凭据优先，为空时
// 落到配置的 APIKey；context 中的 CredentialOverride 最后覆盖 api_key。
func (p *Provider) resolveCredentials(ctx context.Context, creds llm.Credentials) llm.Credentials {
	resolved := creds
	if len(resolved) == 0 && p.cfg.APIKey != "" {
		resolved = llm.Credentials{llm.CredKeyAPIKey: p.cfg.APIKey}
	}

	if override, ok := llm.CredentialOverrideFromContext(ctx); ok && override.APIKey != "" {
		resolved = resolved.Clone()
		if resolved == nil {
			resolved = make(llm.Credentials, 1)
		}
		resolved[llm.CredKeyAPIKey] = override.APIKey
	}

	return resolved
}
