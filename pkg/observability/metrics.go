package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes recorded by the qsig dispatcher.
const (
	OutcomeDecoded       = "decoded"
	OutcomeNoPayload     = "no_payload"
	OutcomeUnsupported   = "unsupported"
	OutcomeNotApplicable = "not_applicable"
	OutcomeUnresolved    = "unresolved"
	OutcomeFailed        = "failed"
	OutcomeOpaque        = "opaque"
)

var (
	registerOnce sync.Once

	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qsig",
			Subsystem: "dispatch",
			Name:      "apdus_total",
			Help:      "ROSE APDUs handed to the QSIG dispatcher, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	extensionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qsig",
			Subsystem: "extension",
			Name:      "decodes_total",
			Help:      "Manufacturer extension decodes, by outcome.",
		},
		[]string{"outcome"},
	)
	ieTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qsig",
			Subsystem: "ie",
			Name:      "decodes_total",
			Help:      "Codeset information element decodes, by codeset and outcome.",
		},
		[]string{"codeset", "outcome"},
	)
)

// RegisterMetrics registers the collectors on the default registry. Safe to call repeatedly.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(dispatchTotal, extensionTotal, ieTotal)
	})
}

// RecordDispatch counts one dispatcher call.
func RecordDispatch(kind, outcome string) {
	dispatchTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordExtension counts one extension resolution.
func RecordExtension(outcome string) {
	extensionTotal.WithLabelValues(outcome).Inc()
}

// RecordIE counts one information element decode.
func RecordIE(codeset uint8, outcome string) {
	ieTotal.WithLabelValues(strconv.Itoa(int(codeset)), outcome).Inc()
}
