package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// 凭据映射中的通用键。适配层会在调用前补全路由与能力元数据键，
// api_key 之类的机密键由调用方提供并原样透传给基础客户端。
const (
	CredKeyAPIKey            = "api_key"
	CredKeyEndpointURL       = "endpoint_url"
	CredKeyMode              = "mode"
	CredKeyFunctionCalling   = "function_calling_type"
	CredKeyStreamFuncCalling = "stream_function_calling"
	CredKeyVisionSupport     = "vision_support"
)

// Credentials 是调用方提供的凭据映射。值可能是字符串或显式的 nil
//（例如不支持工具调用时 function_calling_type 为 nil）。
type Credentials map[string]any

// Clone 返回浅拷贝；nil 输入返回 nil。
func (c Credentials) Clone() Credentials {
	if c == nil {
		return nil
	}
	out := make(Credentials, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Redacted 返回可安全写入日志的副本，机密键的值以 *** 替代。
// 判定规则：键名包含 key、secret 或 token。
func (c Credentials) Redacted() map[string]any {
	if c == nil {
		return nil
	}
	out := make(map[string]any, len(c))
	for k, v := range c {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "key") || strings.Contains(lower, "secret") || strings.Contains(lower, "token") {
			out[k] = "***"
			continue
		}
		out[k] = v
	}
	return out
}

type credentialOverrideKey struct{}

// CredentialOverride 用于在单次请求内覆盖凭据中的 API Key。
// 注意：该结构仅通过 context 传递，不会从 API JSON 反序列化，避免外部直接注入敏感信息。
type CredentialOverride struct {
	APIKey    string
	SecretKey string
}

func (c CredentialOverride) String() string {
	if c.APIKey == "" && c.SecretKey == "" {
		return "CredentialOverride{}"
	}
	return "CredentialOverride{APIKey:***, SecretKey:***}"
}

func (c CredentialOverride) MarshalJSON() ([]byte, error) {
	type masked struct {
		APIKey    string `json:"api_key,omitempty"`
		SecretKey string `json:"secret_key,omitempty"`
	}
	out := masked{}
	if c.APIKey != "" {
		out.APIKey = "***"
	}
	if c.SecretKey != "" {
		out.SecretKey = "***"
	}
	return json.Marshal(out)
}

// WithCredentialOverride 在 ctx 中写入凭据覆盖信息。
// 传入空的 APIKey/SecretKey 不会改变 ctx。
func WithCredentialOverride(ctx context.Context, c CredentialOverride) context.Context {
	if c.APIKey == "" && c.SecretKey == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialOverrideKey{}, c)
}

// CredentialOverrideFromContext 从 ctx 读取凭据覆盖信息。
func CredentialOverrideFromContext(ctx context.Context) (CredentialOverride, bool) {
	v := ctx.Value(credentialOverrideKey{})
	if v == nil {
		return CredentialOverride{}, false
	}
	c, ok := v.(CredentialOverride)
	return c, ok
}
