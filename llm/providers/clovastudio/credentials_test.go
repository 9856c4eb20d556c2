package clovastudio

import (
	"testing"

	"github.com/BaSui01/hyperclovax/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 五个路由/能力键在补全后必须全部就位
var augmentedKeys = []string{
	llm.CredKeyEndpointURL,
	llm.CredKeyMode,
	llm.CredKeyFunctionCalling,
	llm.CredKeyStreamFuncCalling,
	llm.CredKeyVisionSupport,
}

func TestAugmentCredentials_FeatureFlags(t *testing.T) {
	tests := []struct {
		model          string
		expectToolCall bool
		expectVision   bool
	}{
		{model: "HCX-007", expectToolCall: true, expectVision: false},
		{model: "HCX-005", expectToolCall: true, expectVision: true},
		{model: "HCX-DASH-002", expectToolCall: true, expectVision: false},
		{model: "HCX-003", expectToolCall: false, expectVision: false},
		{model: "HCX-DASH-001", expectToolCall: false, expectVision: false},
		{model: "totally-unknown-model", expectToolCall: false, expectVision: false},
		{model: "", expectToolCall: false, expectVision: false},
	}

	for _, tt := range tests {
		t.Run("model_"+tt.model, func(t *testing.T) {
			got := AugmentCredentials(tt.model, llm.Credentials{llm.CredKeyAPIKey: "nv-key"})

			for _, key := range augmentedKeys {
				_, ok := got[key]
				assert.True(t, ok, "key %s should be present after augmentation", key)
			}

			assert.Equal(t, EndpointURL, got[llm.CredKeyEndpointURL])
			assert.Equal(t, ModeChat, got[llm.CredKeyMode])

			if tt.expectToolCall {
				assert.Equal(t, FunctionCallingTypeToolCall, got[llm.CredKeyFunctionCalling])
				assert.Equal(t, FlagSupport, got[llm.CredKeyStreamFuncCalling])
			} else {
				assert.Nil(t, got[llm.CredKeyFunctionCalling])
				assert.Equal(t, FlagNoSupport, got[llm.CredKeyStreamFuncCalling])
			}

			if tt.expectVision {
				assert.Equal(t, FlagSupport, got[llm.CredKeyVisionSupport])
			} else {
				assert.Equal(t, FlagNoSupport, got[llm.CredKeyVisionSupport])
			}
		})
	}
}

func TestAugmentCredentials_PreservesCallerKeys(t *testing.T) {
	got := AugmentCredentials("HCX-005", llm.Credentials{
		llm.CredKeyAPIKey: "nv-key",
		"request_id":      "req-42",
	})

	assert.Equal(t, "nv-key", got[llm.CredKeyAPIKey])
	assert.Equal(t, "req-42", got["request_id"])
}

func TestAugmentCredentials_DoesNotMutateInput(t *testing.T) {
	orig := llm.Credentials{
		llm.CredKeyAPIKey: "nv-key",
		// 调用方预置的过期端点必须被新返回值取代，但原映射保持原样
		llm.CredKeyEndpointURL: "https://stale.example.com",
	}

	got := AugmentCredentials("HCX-007", orig)

	assert.Equal(t, EndpointURL, got[llm.CredKeyEndpointURL])
	assert.Equal(t, "https://stale.example.com", orig[llm.CredKeyEndpointURL])
	require.Len(t, orig, 2, "input credentials must not gain keys")
}

func TestAugmentCredentials_NilInput(t *testing.T) {
	got := AugmentCredentials("HCX-DASH-001", nil)

	require.NotNil(t, got)
	require.Len(t, got, len(augmentedKeys))
	assert.Equal(t, EndpointURL, got[llm.CredKeyEndpointURL])
	assert.Equal(t, ModeChat, got[llm.CredKeyMode])
	assert.Nil(t, got[llm.CredKeyFunctionCalling])
	assert.Equal(t, FlagNoSupport, got[llm.CredKeyStreamFuncCalling])
	assert.Equal(t, FlagNoSupport, got[llm.CredKeyVisionSupport])
}

// endpoint_url 与 mode 对任何模型都取同一组固定值
func TestAugmentCredentials_EndpointAndModeModelIndependent(t *testing.T) {
	models := append(KnownModels(), "unknown-model", "")

	for _, model := range models {
		got := AugmentCredentials(model, nil)
		assert.Equal(t, EndpointURL, got[llm.CredKeyEndpointURL], "model %q", model)
		assert.Equal(t, ModeChat, got[llm.CredKeyMode], "model %q", model)
	}
}
