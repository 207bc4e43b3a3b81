package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bot_dashboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bot_dashboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Agent metrics
	AgentPollTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bot_dashboard",
			Subsystem: "agent",
			Name:      "poll_total",
			Help:      "Total number of agent status polls",
		},
		[]string{"status"},
	)

	AgentPollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bot_dashboard",
			Subsystem: "agent",
			Name:      "poll_duration_seconds",
			Help:      "Agent status poll duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	StreamReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bot_dashboard",
			Subsystem: "agent",
			Name:      "stream_reconnects_total",
			Help:      "Total number of agent stream reconnect attempts",
		},
	)

	// Bot state metrics
	BotRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "bot",
			Name:      "running",
			Help:      "Whether the booking agent reports itself running (1) or not (0)",
		},
	)

	BotState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "bot",
			Name:      "state",
			Help:      "Current bot state, 1 for the active state and 0 for the rest",
		},
		[]string{"state"},
	)

	BotSlotsFound = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "bot",
			Name:      "slots_found",
			Help:      "Slots found counter as reported by the agent",
		},
	)

	BotAppointmentsBooked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "bot",
			Name:      "appointments_booked",
			Help:      "Appointments booked counter as reported by the agent",
		},
	)

	BotActiveUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "bot",
			Name:      "active_users",
			Help:      "Active users counter as reported by the agent",
		},
	)

	// Dashboard client metrics
	StreamClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "stream",
			Name:      "clients_connected",
			Help:      "Number of dashboard websocket clients connected",
		},
	)

	// Scheduler metrics
	SchedulerJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bot_dashboard",
			Subsystem: "scheduler",
			Name:      "jobs_total",
			Help:      "Total number of scheduled jobs executed",
		},
		[]string{"job_name", "status"},
	)

	SchedulerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bot_dashboard",
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Scheduled job execution duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"job_name"},
	)

	LastSchedulerJobTime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bot_dashboard",
			Subsystem: "scheduler",
			Name:      "last_job_timestamp",
			Help:      "Unix timestamp of last job execution",
		},
		[]string{"job_name"},
	)

	// Rate limiter metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bot_dashboard",
			Subsystem: "rate_limiter",
			Name:      "requests_total",
			Help:      "Total number of rate-limited requests",
		},
		[]string{"ip", "allowed"},
	)
)

var botStates = []string{"stopped", "idle", "running", "error"}

// Metrics provides convenience methods for recording metrics
type Metrics struct{}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, http.StatusText(statusCode)).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAgentPoll records one pull-channel status poll
func (m *Metrics) RecordAgentPoll(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	AgentPollTotal.WithLabelValues(status).Inc()
	AgentPollDuration.Observe(duration.Seconds())
}

// RecordStreamReconnect counts one push-channel reconnect attempt
func (m *Metrics) RecordStreamReconnect() {
	StreamReconnectsTotal.Inc()
}

// UpdateBotState reflects the merged bot state in the gauges
func (m *Metrics) UpdateBotState(state string, running bool) {
	if running {
		BotRunning.Set(1)
	} else {
		BotRunning.Set(0)
	}
	for _, s := range botStates {
		value := 0.0
		if s == state {
			value = 1
		}
		BotState.WithLabelValues(s).Set(value)
	}
}

// UpdateBotStats reflects the agent's counters in the gauges
func (m *Metrics) UpdateBotStats(slotsFound, appointmentsBooked, activeUsers int) {
	BotSlotsFound.Set(float64(slotsFound))
	BotAppointmentsBooked.Set(float64(appointmentsBooked))
	BotActiveUsers.Set(float64(activeUsers))
}

// SetStreamClients updates the connected dashboard client count
func (m *Metrics) SetStreamClients(count int) {
	StreamClientsConnected.Set(float64(count))
}

// RecordSchedulerJob records a scheduler job execution
func (m *Metrics) RecordSchedulerJob(jobName string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SchedulerJobsTotal.WithLabelValues(jobName, status).Inc()
	SchedulerJobDuration.WithLabelValues(jobName).Observe(duration.Seconds())
	LastSchedulerJobTime.WithLabelValues(jobName).SetToCurrentTime()
}

// RecordRateLimit records a rate limiter decision
func (m *Metrics) RecordRateLimit(ip string, allowed bool) {
	value := "true"
	if !allowed {
		value = "false"
	}
	RateLimitRequestsTotal.WithLabelValues(ip, value).Inc()
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
