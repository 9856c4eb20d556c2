// 包 observability 为聊天客户端提供 OpenTelemetry 追踪装饰器。
package observability

import (
	"context"
	"errors"
	"time"

	"github.com/BaSui01/hyperclovax/llm"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	spanCompletion = "llm.completion"
	spanStream     = "llm.stream"
	spanValidate   = "llm.validate_credentials"
)

// TracedClient 包装任意 llm.ChatClient，按调用生成 span。
// tracer 为 nil 时不建 span，只保留可选的用量记账与指标落点。
type TracedClient struct {
	base    llm.ChatClient
	name    string
	tracer  oteltrace.Tracer
	usage   *UsageTracker
	metrics *Metrics
	logger  *zap.Logger
}

var _ llm.ChatClient = (*TracedClient)(nil)

// NewTracedClient 创建追踪装饰器。providerName 写入 llm.provider 属性。
func NewTracedClient(base llm.ChatClient, providerName string, tracer oteltrace.Tracer, logger *zap.Logger) *TracedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TracedClient{
		base:   base,
		name:   providerName,
		tracer: tracer,
		logger: logger.With(zap.String("component", "traced_client")),
	}
}

// WithUsage 挂载用量追踪器，成功响应的 token 数会计入其中。
func (c *TracedClient) WithUsage(u *UsageTracker) *TracedClient {
	c.usage = u
	return c
}

// WithMetrics 挂载 OTel 指标集，每次调用计入计数、延迟与 token 分布。
func (c *TracedClient) WithMetrics(m *Metrics) *TracedClient {
	c.metrics = m
	return c
}

// Completion 在 span 内执行同步调用，成功时记录 token 用量。
func (c *TracedClient) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	start := time.Now()
	attrs := RequestAttrs{Provider: c.name, Model: requestModel(req)}
	if c.metrics != nil {
		c.metrics.StartRequest(ctx, attrs)
	}

	if c.tracer == nil {
		resp, err := c.base.Completion(ctx, req)
		c.observeCompletion(ctx, attrs, resp, err, start)
		return resp, err
	}

	ctx, span := c.tracer.Start(ctx, spanCompletion)
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", c.name),
		attribute.String("llm.model", attrs.Model),
	)

	resp, err := c.base.Completion(ctx, c.withTraceID(ctx, req))
	c.observeCompletion(ctx, attrs, resp, err, start)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		return resp, err
	}

	span.SetAttributes(
		attribute.Int("llm.tokens.prompt", resp.Usage.PromptTokens),
		attribute.Int("llm.tokens.completion", resp.Usage.CompletionTokens),
		attribute.Int("llm.tokens.total", resp.Usage.TotalTokens),
	)
	return resp, nil
}

// Stream 在 span 内执行流式调用。span 持续到流耗尽或上下文取消，
// 中途的 chunk 级错误记录在 error 属性上，末尾 chunk 的 usage 计入记账。
func (c *TracedClient) Stream(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamChunk, error) {
	start := time.Now()
	attrs := RequestAttrs{Provider: c.name, Model: requestModel(req)}
	if c.metrics != nil {
		c.metrics.StartRequest(ctx, attrs)
	}

	if c.tracer == nil {
		ch, err := c.base.Stream(ctx, req)
		if err != nil {
			c.endRequest(ctx, attrs, ResponseAttrs{Status: "error", ErrorCode: errorCode(err)}, start)
			return ch, err
		}
		if c.usage == nil && c.metrics == nil {
			return ch, nil
		}
		return c.pump(ctx, attrs, ch, nil, start), nil
	}

	ctx, span := c.tracer.Start(ctx, spanStream)
	span.SetAttributes(
		attribute.String("llm.provider", c.name),
		attribute.String("llm.model", attrs.Model),
	)

	ch, err := c.base.Stream(ctx, c.withTraceID(ctx, req))
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		span.End()
		c.endRequest(ctx, attrs, ResponseAttrs{Status: "error", ErrorCode: errorCode(err)}, start)
		return nil, err
	}
	return c.pump(ctx, attrs, ch, span, start), nil
}

// pump 把上游通道原样转发到新通道，顺带观察 chunk 级错误与 usage。
// span 可为 nil，此时只做用量记账与指标落点。
func (c *TracedClient) pump(ctx context.Context, attrs RequestAttrs, ch <-chan llm.StreamChunk, span oteltrace.Span, start time.Time) <-chan llm.StreamChunk {
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		if span != nil {
			defer span.End()
		}

		obs := ResponseAttrs{Status: "ok"}
		chunks := 0
		for chunk := range ch {
			if chunk.Err != nil {
				obs.Status = "error"
				obs.ErrorCode = string(chunk.Err.Code)
				if span != nil {
					span.SetAttributes(attribute.String("error", chunk.Err.Message))
				}
			}
			if chunk.Usage != nil {
				c.trackUsage(attrs.Model, *chunk.Usage)
				obs.TokensPrompt = chunk.Usage.PromptTokens
				obs.TokensCompletion = chunk.Usage.CompletionTokens
			}
			chunks++

			select {
			case out <- chunk:
			case <-ctx.Done():
				if span != nil {
					span.SetAttributes(attribute.String("error", ctx.Err().Error()))
				}
				obs.Status = "canceled"
				c.endRequest(ctx, attrs, obs, start)
				return
			}
		}
		if span != nil {
			span.SetAttributes(attribute.Int("llm.stream.chunks", chunks))
		}
		c.endRequest(ctx, attrs, obs, start)
	}()
	return out
}

// ValidateCredentials 在 span 内执行凭据校验。
func (c *TracedClient) ValidateCredentials(ctx context.Context, model string, creds llm.Credentials) error {
	if c.tracer == nil {
		return c.recordValidation(ctx, model, c.base.ValidateCredentials(ctx, model, creds))
	}

	ctx, span := c.tracer.Start(ctx, spanValidate)
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", c.name),
		attribute.String("llm.model", model),
	)

	err := c.base.ValidateCredentials(ctx, model, creds)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		c.logger.Debug("credential validation traced with error",
			zap.String("model", model),
			zap.Error(err),
		)
	}
	return c.recordValidation(ctx, model, err)
}

// recordValidation 失败时计一次校验失败指标，err 原样返回。
func (c *TracedClient) recordValidation(ctx context.Context, model string, err error) error {
	if err != nil && c.metrics != nil {
		c.metrics.RecordValidationFailure(ctx, c.name, model, errorCode(err))
	}
	return err
}

// observeCompletion 结算一次同步调用：成功时记用量，挂了指标集时落指标。
func (c *TracedClient) observeCompletion(ctx context.Context, attrs RequestAttrs, resp *llm.ChatResponse, err error, start time.Time) {
	if err == nil && resp != nil {
		c.trackUsage(attrs.Model, resp.Usage)
	}
	obs := ResponseAttrs{Status: "ok"}
	switch {
	case err != nil:
		obs.Status = "error"
		obs.ErrorCode = errorCode(err)
	case resp != nil:
		obs.TokensPrompt = resp.Usage.PromptTokens
		obs.TokensCompletion = resp.Usage.CompletionTokens
	}
	c.endRequest(ctx, attrs, obs, start)
}

// endRequest 补上 duration 后落一次请求指标，未挂指标集时是 no-op。
func (c *TracedClient) endRequest(ctx context.Context, attrs RequestAttrs, obs ResponseAttrs, start time.Time) {
	if c.metrics == nil {
		return
	}
	obs.Duration = time.Since(start)
	c.metrics.EndRequest(ctx, attrs, obs)
}

// withTraceID 把当前 span 的 trace id 填进请求副本，方便上游日志关联。
// 请求已带 TraceID 或没有活动 span 时原样返回。
func (c *TracedClient) withTraceID(ctx context.Context, req *llm.ChatRequest) *llm.ChatRequest {
	if req == nil || req.TraceID != "" {
		return req
	}
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return req
	}
	withID := *req
	withID.TraceID = spanCtx.TraceID().String()
	return &withID
}

func (c *TracedClient) trackUsage(model string, usage llm.ChatUsage) {
	if c.usage == nil {
		return
	}
	c.usage.Track(model, usage)
}

// errorCode 提取统一错误码作为指标标签，非结构化错误归入 unknown。
func errorCode(err error) string {
	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		return string(llmErr.Code)
	}
	return "unknown"
}

func requestModel(req *llm.ChatRequest) string {
	if req == nil {
		return ""
	}
	return req.Model
}
