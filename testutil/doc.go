// Copyright 2026 HyperCLOVA X Adapter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供本项目测试的共享工具和辅助函数。

# 概述

testutil 包为各包的单元测试与属性测试提供统一的辅助能力，
避免重复实现相似的测试基础设施。所有测试应优先使用此包
中的工具函数和 Mock 实现。

# 核心能力

  - 上下文辅助: TestContext / TestContextWithTimeout / CancelledContext，
    自动注册 Cleanup 防止泄漏
  - 断言工具: AssertMessagesEqual / AssertCredentialsAugmented
  - 数据工具: MustJSON / CopyMessages / UserMessage / SimpleConversation，
    简化测试数据构造
  - 流式辅助: CollectStreamChunks / CollectStreamContent，
    用于基础客户端流式响应测试

# 子包

  - testutil/mocks: Mock 实现，提供 MockChatClient（OpenAI 兼容基础
    客户端），支持 Builder 模式、错误注入与调用记录

# 使用示例

	ctx := testutil.TestContext(t)
	client := mocks.NewMockChatClient().WithResponse("hello")
	provider, _ := clovastudio.New(client, cfg, nil)
	resp, err := provider.Completion(ctx, req)
*/
package testutil
