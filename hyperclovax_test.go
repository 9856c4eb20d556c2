package hyperclovax

import (
	"context"
	"testing"

	"github.com/BaSui01/hyperclovax/llm"
	"github.com/BaSui01/hyperclovax/llm/observability"
	"github.com/BaSui01/hyperclovax/testutil/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNew_RequiresClient(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WithClient")
}

func TestNew_BuildsProvider(t *testing.T) {
	mock := mocks.NewSuccessClient("안녕하세요")

	p, err := New(
		WithClient(mock),
		WithModel("HCX-007"),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "hyperclovax", p.Name())
	// 空模型走配置默认值 HCX-007，该模型支持原生工具调用
	assert.True(t, p.SupportsNativeFunctionCalling(""))

	resp, err := p.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "테스트"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "안녕하세요", resp.Choices[0].Message.Content)
	assert.Equal(t, "HCX-007", mock.GetLastCall().Model)
}

func TestNew_APIKeyFromEnv(t *testing.T) {
	t.Setenv("CLOVASTUDIO_API_KEY", "nv-env-key")

	mock := mocks.NewSuccessClient("ok")
	p, err := New(WithClient(mock))
	require.NoError(t, err)

	_, err = p.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	creds := mock.GetLastCall().Credentials
	assert.Equal(t, "nv-env-key", creds["api_key"])
}

func TestNew_ExplicitAPIKeyWinsOverEnv(t *testing.T) {
	t.Setenv("CLOVASTUDIO_API_KEY", "nv-env-key")

	mock := mocks.NewSuccessClient("ok")
	p, err := New(WithClient(mock), WithAPIKey("nv-option-key"))
	require.NoError(t, err)

	_, err = p.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	creds := mock.GetLastCall().Credentials
	assert.Equal(t, "nv-option-key", creds["api_key"])
}

func TestNew_BaseURLOverride(t *testing.T) {
	mock := mocks.NewSuccessClient("ok")
	p, err := New(
		WithClient(mock),
		WithBaseURL("https://gw.internal.example.com/v1/openai"),
	)
	require.NoError(t, err)

	_, err = p.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	creds := mock.GetLastCall().Credentials
	assert.Equal(t, "https://gw.internal.example.com/v1/openai", creds["endpoint_url"])
}

func TestNewTraced_RequiresClient(t *testing.T) {
	_, err := NewTraced()
	require.Error(t, err)
}

func TestNewTraced_TracksUsage(t *testing.T) {
	mock := mocks.NewSuccessClient("ok").WithTokenUsage(30, 12)
	usage := observability.NewUsageTracker()

	client, err := NewTraced(
		WithClient(mock),
		WithModel("HCX-005"),
		WithUsageTracker(usage),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)

	_, err = client.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	summary := usage.Summary()
	assert.Equal(t, 1, summary.Requests)
	assert.Equal(t, 42, summary.TotalTokens)
}

func TestNewTraced_AcceptsMetrics(t *testing.T) {
	metrics, err := observability.NewMetrics()
	require.NoError(t, err)

	mock := mocks.NewSuccessClient("ok")
	client, err := NewTraced(
		WithClient(mock),
		WithModel("HCX-005"),
		WithMetrics(metrics),
	)
	require.NoError(t, err)

	// 全局 MeterProvider 未装 SDK 时仪表是 no-op，调用仍然照常通过
	_, err = client.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "HCX-005", mock.GetLastCall().Model)
}
