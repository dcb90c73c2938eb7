package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRecordDispatch(t *testing.T) {
	before := testutil.ToFloat64(dispatchTotal.WithLabelValues("invoke", OutcomeUnsupported))
	RecordDispatch("invoke", OutcomeUnsupported)
	RecordDispatch("invoke", OutcomeUnsupported)

	if got := testutil.ToFloat64(dispatchTotal.WithLabelValues("invoke", OutcomeUnsupported)); got != before+2 {
		t.Errorf("dispatch counter = %v, want %v", got, before+2)
	}
}

func TestRecordIE(t *testing.T) {
	before := testutil.ToFloat64(ieTotal.WithLabelValues("4", OutcomeDecoded))
	RecordIE(4, OutcomeDecoded)

	if got := testutil.ToFloat64(ieTotal.WithLabelValues("4", OutcomeDecoded)); got != before+1 {
		t.Errorf("ie counter = %v, want %v", got, before+1)
	}
}

func TestRegisterMetrics_Idempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.raw); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestInitLogger(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	var buf bytes.Buffer
	logger := InitLogger("qsig-test", "warn", &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "qsig-test") {
		t.Errorf("warn line missing or without app field: %q", out)
	}
}
