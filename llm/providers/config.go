package providers

import "github.com/BaSui01/hyperclovax/llm"

// BaseProviderConfig 所有 Provider 共享的基础配置字段。
// 通过嵌入此结构体，各 Provider 的 Config 自动获得 APIKey、BaseURL、Model 三个字段，
// 避免重复定义。请求超时与重试属于基础客户端，不在适配层配置。
type BaseProviderConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Model   string `json:"model,omitempty" yaml:"model,omitempty"`
}

// ClovaStudioConfig NAVER CLOVA Studio（HyperCLOVA X）适配器配置。
// APIKey 作为凭据缺省值，请求级凭据与 context 覆盖优先生效。
// BaseURL 仅在接入私有网关时设置，留空使用固定的 OpenAI 兼容端点。
type ClovaStudioConfig struct {
	BaseProviderConfig `yaml:",inline"`
}

// ChooseModel 依次取请求模型、配置默认模型、兜底模型中第一个非空者。
func ChooseModel(req *llm.ChatRequest, defaultModel, fallbackModel string) string {
	if req != nil && req.Model != "" {
		return req.Model
	}
	if defaultModel != "" {
		return defaultModel
	}
	return fallbackModel
}
