package clovastudio

import "sort"

// ModelCapabilities 描述单个 HyperCLOVA X 模型的能力记录。
// 零值即保守默认：未收录的模型不支持工具调用、视觉与推理参数。
type ModelCapabilities struct {
	// ToolCalling 是否支持 OpenAI 格式的工具调用（tool_call）
	ToolCalling bool
	// StreamToolCalling 流式响应中是否支持工具调用
	StreamToolCalling bool
	// Vision 是否接受图像输入
	Vision bool
	// Reasoning 是否属于推理模型家族，启用 reasoning_effort 与
	// max_completion_tokens 的参数约定
	Reasoning bool
}

// 能力表只在此处维护，分支逻辑一律通过 CapabilitiesFor 查询。
var modelCapabilities = map[string]ModelCapabilities{
	"HCX-007":      {ToolCalling: true, StreamToolCalling: true, Reasoning: true},
	"HCX-005":      {ToolCalling: true, StreamToolCalling: true, Vision: true},
	"HCX-DASH-002": {ToolCalling: true, StreamToolCalling: true},

	// 旧代模型不支持工具调用，与未知模型走相同的保守分支
	"HCX-003":      {},
	"HCX-DASH-001": {},
}

// CapabilitiesFor 返回模型的能力记录。
// 未收录的模型返回零值记录，任何字符串都不会报错。
func CapabilitiesFor(model string) ModelCapabilities {
	return modelCapabilities[model]
}

// KnownModels 返回能力表收录的模型标识，按字典序排列。
func KnownModels() []string {
	models := make([]string, 0, len(modelCapabilities))
	for m := range modelCapabilities {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}
