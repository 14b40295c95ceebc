// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, path string, statusCode int)
	RecordHTTPDuration(method, path string, duration time.Duration)
	RecordJobCreated()
	RecordApplicationCreated()
	RecordNotificationSent()
	RecordNotificationFailed()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	jobsCreated         prometheus.Counter
	applicationsCreated prometheus.Counter
	notificationsSent   prometheus.Counter
	notificationsFailed prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "メソッド・パス・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "path", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_jobs_created_total",
			Help: "作成された求人の合計数",
		}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_applications_created_total",
			Help: "作成された応募の合計数",
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_notifications_sent_total",
			Help: "送信に成功した応募通知メールの合計数",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_notifications_failed_total",
			Help: "送信に失敗した応募通知メールの合計数",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.jobsCreated,
		c.applicationsCreated,
		c.notificationsSent,
		c.notificationsFailed,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエストの完了を記録する。
func (c *Collector) RecordHTTPRequest(method, path string, statusCode int) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPDuration はHTTPリクエストの処理時間を記録する。
func (c *Collector) RecordHTTPDuration(method, path string, duration time.Duration) {
	c.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordJobCreated は求人の作成を記録する。
func (c *Collector) RecordJobCreated() {
	c.jobsCreated.Inc()
}

// RecordApplicationCreated は応募の作成を記録する。
func (c *Collector) RecordApplicationCreated() {
	c.applicationsCreated.Inc()
}

// RecordNotificationSent は応募通知メールの送信成功を記録する。
func (c *Collector) RecordNotificationSent() {
	c.notificationsSent.Inc()
}

// RecordNotificationFailed は応募通知メールの送信失敗を記録する。
func (c *Collector) RecordNotificationFailed() {
	c.notificationsFailed.Inc()
}

// NopCollector は何も記録しないコレクター。テスト用。
type NopCollector struct{}

func (NopCollector) RecordHTTPRequest(method, path string, statusCode int)          {}
func (NopCollector) RecordHTTPDuration(method, path string, duration time.Duration) {}
func (NopCollector) RecordJobCreated()                                              {}
func (NopCollector) RecordApplicationCreated()                                      {}
func (NopCollector) RecordNotificationSent()                                        {}
func (NopCollector) RecordNotificationFailed()                                      {}

// compile-time interface checks
var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = NopCollector{}
)

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
