package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 同时跑 API 与订单状态 worker
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Signals []os.Signal
	// ShutdownTimeout 未设置时取 server.shutdown_timeout_seconds
	ShutdownTimeout time.Duration
	Mode            string
}

// ParseMode 规整启动模式，空值按 all 处理
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	}
	return "", fmt.Errorf("unknown mode: %s", raw)
}

func runsHTTP(mode string) bool {
	return mode == ModeAll || mode == ModeAPI
}

// all 模式下队列未启用时不起 worker，状态历史走同步写入
func runsWorker(mode string, queueEnabled bool) bool {
	return mode == ModeWorker || (mode == ModeAll && queueEnabled)
}

func normalizeOptions(opts Options) (Options, error) {
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 && opts.Config != nil && opts.Config.Server.ShutdownTimeoutSeconds > 0 {
		opts.ShutdownTimeout = time.Duration(opts.Config.Server.ShutdownTimeoutSeconds) * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	return opts, nil
}
