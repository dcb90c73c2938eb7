// Package config loads the decoder settings of the qsig command.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Extension declares a manufacturer extension whose argument is shown as a BER tree
// instead of an opaque blob.
type Extension struct {
	OID  string `toml:"oid"`
	Name string `toml:"name"`
}

type Config struct {
	LogLevel string
	// GenericPayloads binds the generic BER decoder to every payload without a decoder.
	GenericPayloads bool
	// Codeset is the default codeset of information elements.
	Codeset    uint8
	Extensions []Extension
}

type fileConfig struct {
	LogLevel        string      `toml:"log_level"`
	GenericPayloads bool        `toml:"generic_payloads"`
	Codeset         int         `toml:"codeset"`
	Extensions      []Extension `toml:"extensions"`
}

func Default() Config {
	return Config{
		LogLevel:        "info",
		GenericPayloads: true,
		Codeset:         5,
	}
}

// Load overlays the keys defined in the TOML file at path on Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load qsig config: %w", err)
	}

	if meta.IsDefined("log_level") {
		if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
			cfg.LogLevel = lvl
		}
	}

	if meta.IsDefined("generic_payloads") {
		cfg.GenericPayloads = raw.GenericPayloads
	}

	if meta.IsDefined("codeset") {
		if raw.Codeset < 0 || raw.Codeset > 7 {
			return Config{}, fmt.Errorf("codeset %d not in [0, 7]", raw.Codeset)
		}
		cfg.Codeset = uint8(raw.Codeset)
	}

	if meta.IsDefined("extensions") {
		exts, err := normalizeExtensions(raw.Extensions)
		if err != nil {
			return Config{}, err
		}
		cfg.Extensions = exts
	}

	return cfg, nil
}

func normalizeExtensions(in []Extension) ([]Extension, error) {
	out := make([]Extension, 0, len(in))
	for i, e := range in {
		e.OID = strings.TrimSpace(e.OID)
		e.Name = strings.TrimSpace(e.Name)
		if e.OID == "" {
			return nil, fmt.Errorf("extensions[%d]: missing oid", i)
		}
		out = append(out, e)
	}
	return out, nil
}
