package clovastudio

import "github.com/BaSui01/hyperclovax/llm"

const (
	// EndpointURL CLOVA Studio OpenAI 兼容端点的固定地址。
	EndpointURL = "https://clovastudio.stream.ntruss.com/v1/openai"

	// ModeChat 凭据 mode 键的固定取值，本适配器只支持 chat 模式。
	ModeChat = "chat"

	// FunctionCallingTypeToolCall 表示以 OpenAI tool_call 格式传递工具。
	FunctionCallingTypeToolCall = "tool_call"

	// FlagSupport / FlagNoSupport 能力标记键的两种取值。
	FlagSupport   = "support"
	FlagNoSupport = "no_support"
)

// AugmentCredentials 基于能力表构造一份补全后的新凭据。
// 入参映射不会被修改（nil 也可以）；返回值保证五个路由/能力键全部就位：
// endpoint_url、mode、function_calling_type、stream_function_calling、
// vision_support。不支持工具调用时 function_calling_type 为显式 nil。
// 未知模型不报错，只会得到保守的 no_support 标记。
func AugmentCredentials(model string, creds llm.Credentials) llm.Credentials {
	caps := CapabilitiesFor(model)

	out := make(llm.Credentials, len(creds)+5)
	for k, v := range creds {
		out[k] = v
	}

	out[llm.CredKeyEndpointURL] = EndpointURL
	out[llm.CredKeyMode] = ModeChat

	if caps.ToolCalling {
		out[llm.CredKeyFunctionCalling] = FunctionCallingTypeToolCall
	} else {
		out[llm.CredKeyFunctionCalling] = nil
	}

	if caps.StreamToolCalling {
		out[llm.CredKeyStreamFuncCalling] = FlagSupport
	} else {
		out[llm.CredKeyStreamFuncCalling] = FlagNoSupport
	}

	if caps.Vision {
		out[llm.CredKeyVisionSupport] = FlagSupport
	} else {
		out[llm.CredKeyVisionSupport] = FlagNoSupport
	}

	return out
}
