package clovastudio

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	clovaRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperclovax_requests_total",
			Help: "Total chat requests forwarded to the CLOVA Studio base client.",
		},
		[]string{"model", "mode", "outcome"},
	)
	clovaRequestLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hyperclovax_request_latency_ms",
			Help:    "Base client call latency in milliseconds.",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"model", "mode"},
	)
	clovaValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperclovax_credential_validation_failures_total",
			Help: "Total credential validation failures reported by the base client.",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(
		clovaRequestsTotal,
		clovaRequestLatencyMs,
		clovaValidationFailuresTotal,
	)
}

// observeRequest 记录一次基础客户端调用。
// 流式调用只统计到通道建立为止，消费阶段归调用方。
func observeRequest(model, mode string, latency time.Duration, err error) {
	if model == "" {
		model = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	clovaRequestsTotal.WithLabelValues(model, mode, outcome).Inc()
	if latency > 0 {
		clovaRequestLatencyMs.WithLabelValues(model, mode).Observe(float64(latency.Milliseconds()))
	}
}

func observeValidation(model string, err error) {
	if model == "" {
		model = "unknown"
	}
	if err != nil {
		clovaValidationFailuresTotal.WithLabelValues(model).Inc()
	}
}
