package app

import (
	"errors"
	"time"

	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/logger"
	"github.com/dujiao-next/market/internal/provider"
	"github.com/dujiao-next/market/internal/router"
	"github.com/dujiao-next/market/internal/worker"
)

// BuildRunner 构建服务运行器，返回的 cleanup 用于释放队列与缓存连接
func BuildRunner(cfg *config.Config, mode string) (*Runner, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, nil, err
	}

	container := provider.NewContainer(cfg)
	cleanup := func() {
		if err := container.Close(); err != nil {
			logger.Warnw("app_container_close_failed", "error", err)
		}
	}

	var services []Service

	if runsHTTP(mode) {
		engine := router.SetupRouter(cfg, container)
		httpService := NewHTTPService(listenAddr(cfg), engine, HTTPTimeouts{
			Read:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			Write: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		})
		services = append(services, httpService)
	}

	if runsWorker(mode, cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		cleanup()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), cleanup, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	opts, err := normalizeOptions(opts)
	if err != nil {
		return err
	}

	runner, cleanup, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer cleanup()

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode, "queue_enabled", opts.Config.Queue.Enabled)
	return RunWithOptions(runner, opts)
}

func listenAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}
