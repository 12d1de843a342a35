package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gocatalog/internal/pkg/logger"
)

// CreationRecord é o registro de métricas emitido exatamente uma vez por operação de criação.
type CreationRecord struct {
	OperationID        string
	Entity             string // "order" | "product"
	Title              string
	Code               string // ISBN ou SKU
	Category           string
	ValidationDuration time.Duration
	PersistDuration    time.Duration
	PersistAttempted   bool // false quando a criação parou antes do insert
	TotalDuration      time.Duration
	Success            bool
	ErrorReason        string
}

// InvalidCategory é o rótulo usado para categorias fora do enum, mantendo
// a cardinalidade das séries fixa qualquer que seja o payload recebido.
const InvalidCategory = "invalid"

// Recorder recebe os registros de criação.
type Recorder interface {
	RecordCreation(ctx context.Context, rec CreationRecord)
}

// PrometheusRecorder publica o registro em contadores/histogramas e em um log estruturado.
type PrometheusRecorder struct {
	log         logger.Logger
	operations  *prometheus.CounterVec
	validation  *prometheus.HistogramVec
	persistence *prometheus.HistogramVec
	total       *prometheus.HistogramVec
}

// NewPrometheusRecorder registra os coletores no Registerer informado.
func NewPrometheusRecorder(reg prometheus.Registerer, log logger.Logger) *PrometheusRecorder {
	r := &PrometheusRecorder{
		log: log,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_create_operations_total",
				Help: "Total number of create operations by entity, category and outcome",
			},
			[]string{"entity", "category", "outcome"},
		),
		validation: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_create_validation_duration_seconds",
				Help:    "Time spent validating create requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
		persistence: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_create_persist_duration_seconds",
				Help:    "Time spent persisting new entities",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
		total: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_create_duration_seconds",
				Help:    "End-to-end duration of create operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity", "outcome"},
		),
	}

	reg.MustRegister(r.operations, r.validation, r.persistence, r.total)
	return r
}

func (r *PrometheusRecorder) RecordCreation(ctx context.Context, rec CreationRecord) {
	outcome := "success"
	if !rec.Success {
		outcome = "failure"
	}

	r.operations.WithLabelValues(rec.Entity, rec.Category, outcome).Inc()
	r.validation.WithLabelValues(rec.Entity).Observe(rec.ValidationDuration.Seconds())
	if rec.PersistAttempted {
		r.persistence.WithLabelValues(rec.Entity).Observe(rec.PersistDuration.Seconds())
	}
	r.total.WithLabelValues(rec.Entity, outcome).Observe(rec.TotalDuration.Seconds())

	fields := map[string]interface{}{
		"operation_id":  rec.OperationID,
		"entity":        rec.Entity,
		"title":         rec.Title,
		"code":          rec.Code,
		"category":      rec.Category,
		"validation_ms": rec.ValidationDuration.Milliseconds(),
		"persist_ms":    rec.PersistDuration.Milliseconds(),
		"total_ms":      rec.TotalDuration.Milliseconds(),
		"success":       rec.Success,
	}
	if rec.ErrorReason != "" {
		fields["error_reason"] = rec.ErrorReason
	}
	r.log.WithContext(ctx).Info("create operation metrics", fields)
}
