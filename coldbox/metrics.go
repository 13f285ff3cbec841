package coldbox

import (
	"errors"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OpChangeFormat     = "change_format"
	OpDeriveKey        = "derive_key"
	OpGenerateMnemonic = "generate_mnemonic"
	OpRestoreMnemonic  = "restore_mnemonic"
	OpSignPsbt         = "sign_psbt"
)

var (
	// Prometheus metrics
	totalOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coldbox_operations_total",
			Help: "Total number of key and wallet operations run",
		},
		[]string{"op"},
	)
	failedOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coldbox_operation_failures_total",
			Help: "Total number of failed operations by error kind",
		},
		[]string{"op", "kind"},
	)
	timedOperationLatency = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "coldbox_operation_duration_seconds",
		Help:       "Seconds taken to run an operation",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"op"})
)

// observe runs fn and records it under op.
func observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	timedOperationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	totalOperations.WithLabelValues(op).Inc()
	if err != nil {
		failedOperations.WithLabelValues(op, ErrorKind(err)).Inc()
	}
	return err
}

// ErrorKind names the registered error err wraps, "internal" otherwise.
func ErrorKind(err error) string {
	var registered *errorsmod.Error
	if errors.As(err, &registered) {
		return registered.Codespace() + ": " + registered.Error()
	}
	return "internal"
}

// WriteMetrics dumps the default registry to path in the text exposition
// format. The file is replaced atomically.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
