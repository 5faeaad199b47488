package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "nexfolio", Name: "http_requests_total", Help: "Number of handled HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	APIKeyRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "nexfolio", Name: "api_key_rejected_total", Help: "Number of API requests rejected by the x-api-key gate."},
	)
	TokenRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "nexfolio", Name: "user_token_rejected_total", Help: "Number of admin requests rejected for a missing or invalid user token."},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "nexfolio", Name: "login_attempts_total", Help: "Number of login attempts by result."},
		[]string{"result"},
	)
	MediaOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "nexfolio", Name: "media_operations_total", Help: "Number of image host operations by operation and result."},
		[]string{"op", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(APIKeyRejected)
	reg.MustRegister(TokenRejected)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(MediaOperations)
}
