package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once
	registerErr  error

	// HTTPRequests 请求总数
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "处理的HTTP请求总数",
	}, []string{"method", "path", "status"})

	// HTTPDuration 请求耗时
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP请求耗时",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// RelationChanges 关系落库次数，op 为 link 或 unlink
	RelationChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relation_changes_total",
		Help: "写入存储的关注、收藏、标签关系变化数",
	}, []string{"kind", "op"})
)

// Register 注册全部指标，重复调用只注册一次
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{HTTPRequests, HTTPDuration, RelationChanges} {
			if err := reg.Register(c); err != nil {
				var already prometheus.AlreadyRegisteredError
				if !errors.As(err, &already) {
					registerErr = err
					return
				}
			}
		}
	})
	return registerErr
}

// Handler /metrics 处理器
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// GinMetrics 请求指标中间件，path 取路由模板避免高基数
func GinMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveRelation 记录关系变化
func ObserveRelation(kind, op string, n int) {
	if n > 0 {
		RelationChanges.WithLabelValues(kind, op).Add(float64(n))
	}
}
