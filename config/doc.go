// Package config 提供 HyperCLOVA X 适配器的配置管理功能。
//
// 包含配置加载、默认值、日志构建和凭据热重载。
// 支持从文件和环境变量加载配置，
// 并提供运行时 API Key 轮换能力。
package config
