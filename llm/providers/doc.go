// Copyright 2026 HyperCLOVA X Adapter Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 providers 提供服务商适配实现的公共基础层。具体服务商子包
（clovastudio）依赖本包完成配置定义与模型选择等共享逻辑。

# 核心类型

  - BaseProviderConfig — 所有 Provider 共享的基础配置（APIKey、BaseURL、Model）
  - ClovaStudioConfig — NAVER CLOVA Studio 适配器配置

# 核心函数

  - ChooseModel — 按优先级选择模型（请求 > 默认 > 兜底）
*/
package providers
