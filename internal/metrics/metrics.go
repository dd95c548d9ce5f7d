package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "market"

var registry = prometheus.NewRegistry()

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP 请求数",
	}, []string{"method", "route", "code"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP 请求耗时",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	couponApplies = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coupon_apply_total",
		Help:      "优惠券应用结果",
	}, []string{"result"})

	statusUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_update_total",
		Help:      "订单状态变更结果",
	}, []string{"axis", "result"})

	ordersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "下单成功数",
	})

	tasksProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "worker_tasks_total",
		Help:      "异步任务处理结果",
	}, []string{"task", "result"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		couponApplies,
		statusUpdates,
		ordersPlaced,
		tasksProcessed,
	)
}

// Handler 返回 /metrics 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Registry 返回指标注册表
func Registry() *prometheus.Registry {
	return registry
}

// ObserveHTTP 记录一次 HTTP 请求
func ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CouponApplied 记录优惠券应用结果（result 为 success 或错误种类）
func CouponApplied(result string) {
	couponApplies.WithLabelValues(result).Inc()
}

// StatusUpdated 记录订单状态变更结果
func StatusUpdated(axis, result string) {
	statusUpdates.WithLabelValues(axis, result).Inc()
}

// OrderPlaced 记录下单成功
func OrderPlaced() {
	ordersPlaced.Inc()
}

// TaskProcessed 记录异步任务处理结果
func TaskProcessed(task, result string) {
	tasksProcessed.WithLabelValues(task, result).Inc()
}
