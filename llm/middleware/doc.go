// 版权所有 2026 HyperCLOVA X Adapter Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 middleware 提供请求改写器链机制，用于在请求交给 OpenAI 兼容
基础客户端之前插入可组合的参数清理与转换逻辑。

# 概述

改写器链是适配层准备请求的唯一扩展点：clovastudio 适配器把
HCX-007 的推理参数改写（reasoning_effort 默认值与 max_tokens 重命名）
注册为链上的一个改写器，保证同步与流式两条路径共用同一次改写。

# 核心接口

  - RequestRewriter：请求改写器接口，包含 Rewrite 与 Name 方法。
  - RewriterChain：改写器链，按顺序执行多个 RequestRewriter，
    任何一个失败则中断并返回包装后的错误。
*/
package middleware
