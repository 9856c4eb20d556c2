// =============================================================================
// 📦 HyperCLOVA X 适配器默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Provider:  DefaultProviderConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultProviderConfig 返回默认接入配置
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		APIKey:  "",
		BaseURL: "",
		Model:   "HCX-005",
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "hyperclovax",
		SampleRate:   0.1,
	}
}
