package metrics

import (
	"strconv" // Status code formatting

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus"          // Prometheus metric types
	"github.com/prometheus/client_golang/prometheus/promauto" // Self-registering constructors
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics HTTP handler
)

// requestsTotal counts handled requests by method, route and status code
var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Count of handled HTTP requests.",
}, []string{"method", "path", "status"})

// RequestCounter is gin middleware recording one count per handled request
func RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Run the handler chain first
		path := c.FullPath() // Route template, not the raw URL, to bound cardinality
		if path == "" {
			path = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default prometheus registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
