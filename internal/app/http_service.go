package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"
)

// 读超时未配置时仍限制请求头读取
const defaultReadHeaderTimeout = 10 * time.Second

// HTTPTimeouts HTTP 读写超时，零值表示不限制
type HTTPTimeouts struct {
	Read  time.Duration
	Write time.Duration
}

// HTTPService 市场 API 的 HTTP 服务，Start 阻塞直到 Stop
type HTTPService struct {
	server *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler, timeouts HTTPTimeouts) *HTTPService {
	headerTimeout := timeouts.Read
	if headerTimeout <= 0 {
		headerTimeout = defaultReadHeaderTimeout
	}
	return &HTTPService{server: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       timeouts.Read,
		ReadHeaderTimeout: headerTimeout,
		WriteTimeout:      timeouts.Write,
	}}
}

func (s *HTTPService) Name() string {
	return "http"
}

// Addr 返回实际监听地址，未启动时返回配置地址
func (s *HTTPService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start 先完成监听再开始服务，端口占用等错误会立即返回
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭，等待进行中的请求直到 ctx 超时
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
