package queue

import (
	"fmt"
	"strings"

	"github.com/dujiao-next/market/internal/config"
	"github.com/dujiao-next/market/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 订单事件所在队列
const DefaultQueue = constants.QueueDefault

const (
	defaultMaxRetry    = 5
	defaultConcurrency = 10
)

// Client 订单事件投递客户端，队列未启用时所有投递为空操作
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	c := &Client{queue: DefaultQueue}
	if cfg != nil && cfg.Enabled {
		c.client = asynq.NewClient(redisOpt(cfg))
	}
	return c, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderStatusChanged 投递订单组或订单项的状态变更，由 worker 写入状态历史
func (c *Client) EnqueueOrderStatusChanged(payload OrderStatusChangedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusChangedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, opts)
}

// EnqueueOrderPlaced 投递下单完成事件，worker 据此清理购物车快照
func (c *Client) EnqueueOrderPlaced(payload OrderPlacedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderPlacedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, opts)
}

// 调用方选项追加在默认值之后，可覆盖队列与重试次数
func (c *Client) enqueue(task *asynq.Task, opts []asynq.Option) error {
	merged := make([]asynq.Option, 0, len(opts)+2)
	merged = append(merged, asynq.Queue(c.queue), asynq.MaxRetry(defaultMaxRetry))
	merged = append(merged, opts...)
	_, err := c.client.Enqueue(task, merged...)
	return err
}

// BuildServerConfig 生成 worker 使用的 asynq 连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
