// 配置热重载实现。
//
// 轮询配置文件变更，校验通过后原子替换当前配置并通知订阅方。
// 主要服务于 API Key 轮换场景：凭据换新不必重启进程。
package config

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReloadCallback 配置重载成功后调用，携带新旧两份配置。
type ReloadCallback func(oldConfig, newConfig *Config)

// Reloader 监听配置文件并热重载。
// 新配置未通过 Validate 时保留旧配置，不触发回调。
type Reloader struct {
	mu sync.RWMutex

	loader     *Loader
	configPath string

	current      *Config
	lastModTime  time.Time
	pollInterval time.Duration

	callbacks []ReloadCallback
	logger    *zap.Logger

	running  bool
	stopChan chan struct{}
}

// NewReloader 创建热重载器并完成首次加载。
// 配置文件允许不存在，此时从默认值与环境变量起步。
func NewReloader(path string, logger *zap.Logger) (*Reloader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loader := NewLoader().WithConfigPath(path)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("initial config load failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("initial config invalid: %w", err)
	}

	r := &Reloader{
		loader:       loader,
		configPath:   path,
		current:      cfg,
		pollInterval: 1 * time.Second,
		stopChan:     make(chan struct{}),
		logger:       logger.With(zap.String("component", "config_reloader")),
	}
	if info, err := os.Stat(path); err == nil {
		r.lastModTime = info.ModTime()
	}
	return r, nil
}

// WithPollInterval 设置轮询间隔，默认 1s。
func (r *Reloader) WithPollInterval(d time.Duration) *Reloader {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.pollInterval = d
	}
	return r
}

// Current 返回当前生效的配置。调用方不得修改返回值。
func (r *Reloader) Current() *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// OnReload 注册重载回调。
func (r *Reloader) OnReload(cb ReloadCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = append(r.callbacks, cb)
}

// Start 启动后台轮询。重复启动返回错误。
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("reloader already running")
	}
	r.running = true
	interval := r.pollInterval
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stopChan:
				return
			case <-ticker.C:
				r.checkAndReload()
			}
		}
	}()

	r.logger.Info("config reloader started",
		zap.String("path", r.configPath),
		zap.Duration("poll_interval", interval),
	)
	return nil
}

// Stop 停止轮询。
func (r *Reloader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	close(r.stopChan)
	r.running = false
	r.logger.Info("config reloader stopped")
}

// Reload 立即重载一次，成功时替换当前配置并触发回调。
// 文件未变更时也会强制重载，供外部信号（如 SIGHUP）驱动。
func (r *Reloader) Reload() error {
	newCfg, err := r.loader.Load()
	if err != nil {
		r.logger.Warn("config reload failed, keeping previous config", zap.Error(err))
		return err
	}
	if err := newCfg.Validate(); err != nil {
		r.logger.Warn("reloaded config invalid, keeping previous config", zap.Error(err))
		return err
	}

	r.mu.Lock()
	oldCfg := r.current
	r.current = newCfg
	callbacks := make([]ReloadCallback, len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.mu.Unlock()

	for _, field := range diffProvider(oldCfg, newCfg) {
		r.logger.Info("provider config changed", zap.String("field", field))
	}

	for _, cb := range callbacks {
		cb(oldCfg, newCfg)
	}
	return nil
}

// checkAndReload 按修改时间判断是否需要重载。
func (r *Reloader) checkAndReload() {
	info, err := os.Stat(r.configPath)
	if err != nil {
		// 文件消失时保留当前配置
		return
	}

	r.mu.RLock()
	lastMod := r.lastModTime
	r.mu.RUnlock()

	if !info.ModTime().After(lastMod) {
		return
	}

	r.mu.Lock()
	r.lastModTime = info.ModTime()
	r.mu.Unlock()

	_ = r.Reload()
}

// diffProvider 给出接入配置中变更的字段名。
// api_key 只报告轮换事件，绝不输出值。
func diffProvider(oldCfg, newCfg *Config) []string {
	var changed []string
	if oldCfg.Provider.APIKey != newCfg.Provider.APIKey {
		changed = append(changed, "api_key")
	}
	if oldCfg.Provider.BaseURL != newCfg.Provider.BaseURL {
		changed = append(changed, "base_url")
	}
	if oldCfg.Provider.Model != newCfg.Provider.Model {
		changed = append(changed, "model")
	}
	return changed
}
