// 配置加载器与默认配置测试。
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- 默认配置测试 ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// 验证 Provider 默认值
	assert.Empty(t, cfg.Provider.APIKey)
	assert.Empty(t, cfg.Provider.BaseURL)
	assert.Equal(t, "HCX-005", cfg.Provider.Model)

	// 验证 Log 默认值
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// 验证 Telemetry 默认值
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
}

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	// 不指定配置文件，应该返回默认值
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "HCX-005", cfg.Provider.Model)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	// 创建临时配置文件
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
provider:
  api_key: "nv-yaml-key"
  base_url: "https://gw.internal.example.com/v1/openai"
  model: "HCX-007"

log:
  level: "debug"
  format: "console"
  output_paths:
    - "stdout"
    - "/var/log/hyperclovax.log"

telemetry:
  enabled: true
  otlp_endpoint: "otel-collector:4317"
  service_name: "hyperclovax-dev"
  sample_rate: 0.5
`
	err := os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	// 加载配置
	cfg, err := NewLoader().
		WithConfigPath(configPath).
		Load()
	require.NoError(t, err)

	// 验证 YAML 值覆盖了默认值
	assert.Equal(t, "nv-yaml-key", cfg.Provider.APIKey)
	assert.Equal(t, "https://gw.internal.example.com/v1/openai", cfg.Provider.BaseURL)
	assert.Equal(t, "HCX-007", cfg.Provider.Model)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"stdout", "/var/log/hyperclovax.log"}, cfg.Log.OutputPaths)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otel-collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "hyperclovax-dev", cfg.Telemetry.ServiceName)
	assert.InDelta(t, 0.5, cfg.Telemetry.SampleRate, 0.001)
}

func TestLoader_LoadFromEnv(t *testing.T) {
	// 设置环境变量
	envVars := map[string]string{
		"HYPERCLOVAX_PROVIDER_API_KEY":        "nv-env-key",
		"HYPERCLOVAX_PROVIDER_MODEL":          "HCX-007",
		"HYPERCLOVAX_LOG_LEVEL":               "warn",
		"HYPERCLOVAX_LOG_OUTPUT_PATHS":        "stdout, /tmp/hyperclovax.log",
		"HYPERCLOVAX_LOG_ENABLE_STACKTRACE":   "true",
		"HYPERCLOVAX_TELEMETRY_ENABLED":       "true",
		"HYPERCLOVAX_TELEMETRY_OTLP_ENDPOINT": "env-collector:4317",
		"HYPERCLOVAX_TELEMETRY_SAMPLE_RATE":   "0.25",
	}

	// 设置环境变量
	for k, v := range envVars {
		os.Setenv(k, v)
	}
	// 清理环境变量
	defer func() {
		for k := range envVars {
			os.Unsetenv(k)
		}
	}()

	// 加载配置
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	// 验证环境变量覆盖了默认值
	assert.Equal(t, "nv-env-key", cfg.Provider.APIKey)
	assert.Equal(t, "HCX-007", cfg.Provider.Model)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"stdout", "/tmp/hyperclovax.log"}, cfg.Log.OutputPaths)
	assert.True(t, cfg.Log.EnableStacktrace)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "env-collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRate, 0.001)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	// 创建临时配置文件
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
provider:
  api_key: "nv-yaml-key"
  model: "HCX-005"
log:
  level: "debug"
`
	err := os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	// 设置环境变量（应该覆盖 YAML）
	os.Setenv("HYPERCLOVAX_PROVIDER_API_KEY", "nv-env-key")
	os.Setenv("HYPERCLOVAX_LOG_LEVEL", "error")
	defer func() {
		os.Unsetenv("HYPERCLOVAX_PROVIDER_API_KEY")
		os.Unsetenv("HYPERCLOVAX_LOG_LEVEL")
	}()

	// 加载配置
	cfg, err := NewLoader().
		WithConfigPath(configPath).
		Load()
	require.NoError(t, err)

	// 环境变量应该覆盖 YAML
	assert.Equal(t, "nv-env-key", cfg.Provider.APIKey)
	assert.Equal(t, "error", cfg.Log.Level)
	// YAML 值应该保留（没有被环境变量覆盖）
	assert.Equal(t, "HCX-005", cfg.Provider.Model)
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	// 设置自定义前缀的环境变量
	os.Setenv("MYAPP_PROVIDER_API_KEY", "nv-custom-key")
	os.Setenv("MYAPP_PROVIDER_MODEL", "HCX-DASH-002")
	defer func() {
		os.Unsetenv("MYAPP_PROVIDER_API_KEY")
		os.Unsetenv("MYAPP_PROVIDER_MODEL")
	}()

	// 使用自定义前缀加载
	cfg, err := NewLoader().
		WithEnvPrefix("MYAPP").
		Load()
	require.NoError(t, err)

	assert.Equal(t, "nv-custom-key", cfg.Provider.APIKey)
	assert.Equal(t, "HCX-DASH-002", cfg.Provider.Model)
}

func TestLoader_WithValidator(t *testing.T) {
	// 添加验证器
	validator := func(cfg *Config) error {
		if cfg.Provider.APIKey == "" {
			return assert.AnError
		}
		return nil
	}

	// 不设置 API Key，加载应该失败
	_, err := NewLoader().
		WithValidator(validator).
		Load()
	assert.Error(t, err)
}

func TestLoader_NonExistentFile(t *testing.T) {
	// 指定不存在的文件，应该使用默认值（不报错）
	cfg, err := NewLoader().
		WithConfigPath("/non/existent/path/config.yaml").
		Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// 应该返回默认值
	assert.Equal(t, "HCX-005", cfg.Provider.Model)
}

func TestLoader_InvalidYAML(t *testing.T) {
	// 创建无效的 YAML 文件
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
provider:
  api_key: [invalid
  this is not valid yaml
`
	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	// 加载应该失败
	_, err = NewLoader().
		WithConfigPath(configPath).
		Load()
	assert.Error(t, err)
}

// --- Config 方法测试 ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Log.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid sample rate (negative)",
			modify: func(c *Config) {
				c.Telemetry.SampleRate = -0.5
			},
			wantErr: true,
		},
		{
			name: "invalid sample rate (too high)",
			modify: func(c *Config) {
				c.Telemetry.SampleRate = 1.5
			},
			wantErr: true,
		},
		{
			name: "telemetry enabled without endpoint",
			modify: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.OTLPEndpoint = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderConfig_ClovaStudio(t *testing.T) {
	p := ProviderConfig{
		APIKey:  "nv-abc",
		BaseURL: "https://gw.example.com/v1/openai",
		Model:   "HCX-007",
	}

	cs := p.ClovaStudio()
	assert.Equal(t, "nv-abc", cs.APIKey)
	assert.Equal(t, "https://gw.example.com/v1/openai", cs.BaseURL)
	assert.Equal(t, "HCX-007", cs.Model)
}

// --- MustLoad 测试 ---

func TestMustLoad_Success(t *testing.T) {
	// 创建有效配置文件
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
provider:
  model: "HCX-007"
`
	err := os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	// 不应该 panic
	assert.NotPanics(t, func() {
		cfg := MustLoad(configPath)
		assert.Equal(t, "HCX-007", cfg.Provider.Model)
	})
}

func TestMustLoad_InvalidFile(t *testing.T) {
	// 创建无效配置文件
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	err := os.WriteFile(configPath, []byte("provider: [yaml"), 0644)
	require.NoError(t, err)

	// 应该 panic
	assert.Panics(t, func() {
		MustLoad(configPath)
	})
}

func TestLoadFromEnv_Function(t *testing.T) {
	os.Setenv("HYPERCLOVAX_PROVIDER_MODEL", "HCX-DASH-001")
	defer os.Unsetenv("HYPERCLOVAX_PROVIDER_MODEL")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "HCX-DASH-001", cfg.Provider.Model)
}
