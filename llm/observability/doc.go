// 版权所有 2026 HyperCLOVA X Adapter Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 observability 提供聊天调用的可观测性能力，涵盖分布式追踪、
指标采集与用量记账三个模块。

# 概述

本包基于 OpenTelemetry 标准，为 HyperCLOVA X 请求全生命周期提供
统一的观测手段。TracedClient 以装饰器方式包装任意 llm.ChatClient，
适配层门面无需感知追踪的存在；不需要观测时不包装即可，零侵入。

典型使用场景：

  - 实时监控请求量、延迟分布与错误率。
  - 按模型维度统计 Token 消耗，为按 Token 计费的账单核对提供依据。
  - 把 trace id 注入请求，贯通上游日志与 CLOVA Studio 调用记录。

# 核心接口

  - TracedClient：llm.ChatClient 装饰器，按调用生成 span，流式调用
    的 span 持续到通道耗尽；可通过 WithUsage 挂载用量记账，通过
    WithMetrics 挂载指标集。
  - Metrics：基于 OpenTelemetry Meter 的指标集，提供请求计数、
    Token 计数、延迟直方图与活跃请求 Gauge 等仪表，由 TracedClient
    在每次调用时落点。
  - UsageTracker：会话级 Token 用量追踪器，支持总量与分模型汇总。
*/
package observability
