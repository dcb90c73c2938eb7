package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gregLibert/qsig/pkg/config"
	"github.com/gregLibert/qsig/pkg/ie"
	"github.com/gregLibert/qsig/pkg/observability"
	"github.com/gregLibert/qsig/pkg/qsig"
	"github.com/gregLibert/qsig/pkg/rose"
	"github.com/gregLibert/qsig/pkg/tlv"
	"github.com/rs/zerolog"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	logLevel := flag.String("log-level", "", "Log level (overrides the configuration)")
	ieMode := flag.Bool("ie", false, "Decode codeset information elements instead of ROSE components")
	codeset := flag.Int("codeset", -1, "Codeset of the information elements (default from configuration)")
	flag.Parse()

	// --- 1. Setup ---
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *codeset >= 0 {
		if *codeset > int(ie.MaxCodeset) {
			fmt.Fprintf(os.Stderr, "codeset %d not in [0, 7]\n", *codeset)
			os.Exit(2)
		}
		cfg.Codeset = uint8(*codeset)
	}

	logger := observability.InitLogger("qsig", cfg.LogLevel, os.Stderr)
	observability.RegisterMetrics()

	// --- 2. Decoding ---
	var decode func(n int, raw []byte) error
	if *ieMode {
		table := ie.Standard()
		decode = func(_ int, raw []byte) error {
			return decodeIEs(os.Stdout, table, ie.Codeset(cfg.Codeset), raw)
		}
	} else {
		d, ext := newDispatcher(cfg, logger)
		decode = func(n int, raw []byte) error {
			ctx := qsig.NewContext(n, ext).WithLogger(logger.With().Int("apdu", n).Logger())
			return decodeComponents(os.Stdout, d, ctx, raw)
		}
	}

	failed := 0
	var readErr error
	for n, line := range inputs(flag.Args(), os.Stdin, &readErr) {
		raw, err := tlv.ParseHex(line)
		if err != nil {
			logger.Error().Err(err).Int("apdu", n).Msg("invalid hex input")
			failed++
			continue
		}
		if err := decode(n, raw); err != nil {
			logger.Error().Err(err).Int("apdu", n).Msg("decode failed")
			failed++
		}
	}

	if readErr != nil {
		logger.Error().Err(readErr).Msg("reading input failed")
		failed++
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// =========================================================================
// Helper Functions
// =========================================================================

// newDispatcher wires the standard catalogue with the configured extensions.
func newDispatcher(cfg config.Config, logger zerolog.Logger) (*qsig.Dispatcher, *qsig.ExtensionRegistry) {
	b := qsig.StandardBindings()
	if cfg.GenericPayloads {
		b.Default = qsig.BERDecoder{}
	}

	ext := qsig.NewExtensionRegistry()
	for _, e := range cfg.Extensions {
		if err := ext.Register(qsig.ExtensionEntry{OID: e.OID, Name: e.Name, Decoder: qsig.BERDecoder{}}); err != nil {
			logger.Warn().Err(err).Msg("extension skipped")
		}
	}
	ext.Freeze()

	logger.Debug().Int("extensions", ext.Count()).Bool("generic_payloads", cfg.GenericPayloads).Msg("dispatcher ready")
	return qsig.NewStandardDispatcher(b), ext
}

// decodeComponents decodes every ROSE component of raw and prints one report each.
func decodeComponents(w io.Writer, d *qsig.Dispatcher, ctx *qsig.Context, raw []byte) error {
	components, err := rose.ParseComponents(raw)
	if err != nil {
		return err
	}

	for i := range components {
		c := &components[i]
		if c.Kind == rose.KindReject {
			fmt.Fprintf(w, "=== ROSE REJECT ===\n    + InvokeID: %s\n    + Problem:  %s\n\n", invokeID(c), c.Problem)
			continue
		}

		out, err := d.Dispatch(ctx, c)
		if err != nil {
			return fmt.Errorf("%s %s: %w", c.Kind, c.Code, err)
		}
		if out == nil {
			fmt.Fprintf(w, ">> %s %s (invokeId %s): not handled\n\n", c.Kind, c.Code, invokeID(c))
			continue
		}
		fmt.Fprintf(w, "%s\n\n", out.Describe())
	}
	return nil
}

func decodeIEs(w io.Writer, table *ie.Table, cs ie.Codeset, raw []byte) error {
	ies, err := table.DecodeAll(cs, raw)
	for _, e := range ies {
		fmt.Fprintf(w, "%s\n\n", e.Describe())
	}
	return err
}

func invokeID(c *rose.Component) string {
	if !c.HasInvokeID {
		return "NULL"
	}
	return fmt.Sprint(c.InvokeID)
}

// inputs yields the hex inputs: the arguments, or stdin lines when there are none.
// Blank lines and lines starting with '#' are skipped. A read error on stdin ends the
// sequence and is stored in *errp.
func inputs(args []string, stdin io.Reader, errp *error) func(yield func(int, string) bool) {
	return func(yield func(int, string) bool) {
		if len(args) > 0 {
			for i, a := range args {
				if !yield(i+1, a) {
					return
				}
			}
			return
		}

		scanner := bufio.NewScanner(stdin)
		n := 0
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			n++
			if !yield(n, line) {
				return
			}
		}
		*errp = scanner.Err()
	}
}
