// Copyright 2026 HyperCLOVA X Adapter Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 clovastudio 提供 NAVER CLOVA Studio（HyperCLOVA X 模型家族）的
Provider 适配实现。CLOVA Studio 暴露 OpenAI 兼容端点，因此本包不做
任何 HTTP 处理：它持有一个注入的 llm.ChatClient 基础客户端，在调用
前补全凭据与参数，然后原样转交。

# 核心结构体

  - Provider — 组合注入的基础客户端；Completion / Stream /
    ValidateCredentials 三个入口共用同一套凭据补全
  - ModelCapabilities — 按模型维护的能力记录（工具调用、流式工具
    调用、视觉、推理），未知模型取零值保守记录

# 定制行为

  - 端点固定为 https://clovastudio.stream.ntruss.com/v1/openai，
    mode 固定为 chat；配置 BaseURL 可切换到私有网关
  - HCX-007 / HCX-005 / HCX-DASH-002 标记 function_calling_type=tool_call
    与 stream_function_calling=support；其余模型（含未知模型）
    function_calling_type 为显式 nil 且 stream_function_calling=no_support
  - 仅 HCX-005 标记 vision_support=support
  - HCX-007 的参数改写：缺省补 reasoning_effort=medium（不覆盖调用方
    取值），max_tokens 重命名为 max_completion_tokens；通过请求改写
    器链接入，同步与流式路径共用一次改写

# 支持能力

  - Chat Completion（同步，委托基础客户端）
  - 流式输出（委托基础客户端）
  - 原生 Function Calling / Tool Use（HCX-007、HCX-005、HCX-DASH-002）
  - 视觉输入（HCX-005）
  - 凭据校验（与调用路径同一套凭据补全）

# 不支持能力

  旧代模型（HCX-003、HCX-DASH-001）与未知模型不标记工具调用与视觉
  能力；适配层不做校验拦截，不支持的请求形状由服务端拒绝。
*/
package clovastudio
