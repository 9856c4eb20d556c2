// 版权所有 2026 HyperCLOVA X Adapter Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 llm 定义 HyperCLOVA X 适配层与 OpenAI 兼容基础客户端之间共享的
请求、响应、凭据与错误模型。

# 概述

本包不做任何网络调用。它只描述双方的契约：适配层在调用前补全凭据
与参数，基础客户端负责真正的 HTTP 传输、鉴权、重试与流式解析。
上层业务通过统一的请求与响应结构调用，无需感知 CLOVA Studio 端点
的具体细节。

# 核心接口

  - [ChatClient]：OpenAI 兼容基础客户端契约，提供 Completion /
    Stream / ValidateCredentials 三个入口。

# 核心类型

  - [Credentials]：凭据映射，适配层补全 endpoint_url、mode 与能力
    标记后交给基础客户端；[Credentials.Redacted] 产出可入日志的脱敏副本
  - [Parameters]：模型请求参数映射，键名与 OpenAI 兼容字段一致
  - [ChatRequest] / [ChatResponse]：聊天请求与响应
  - [StreamChunk]：流式输出分片，终止错误通过 Err 字段带出
  - [Error] / [ErrorCode]：统一错误模型，凭据校验失败使用
    [ErrUnauthorized]
  - [CredentialOverride]：单次请求凭据覆盖，通过 context 传递

# 相关子包

- llm/providers：服务商配置与 clovastudio 适配实现。
- llm/middleware：请求改写器链，发送前的参数清理与转换。
- llm/observability：基于 OpenTelemetry 的调用追踪装饰器。
*/
package llm
