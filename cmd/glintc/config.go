package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/glintlang/glintc"
)

// loadConfig seeds the analyzer's default config, then overlays any
// GLINTC_-prefixed environment variables — loading a `.env` file first
// when present, the same pattern the pack's integration tests use to
// keep local overrides out of the process environment proper.
func loadConfig(envFile string) glintc.AnalyzerConfig {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}
	cfg := glintc.NewAnalyzerConfig()
	overlayBool(cfg, "analysis.strict_ffi", "GLINTC_STRICT_FFI")
	overlayBool(cfg, "analysis.warn_on_inexhaustive_match", "GLINTC_WARN_INEXHAUSTIVE")
	overlayBool(cfg, "analysis.warn_on_unused_private", "GLINTC_WARN_UNUSED")
	overlayBool(cfg, "generics.cache_enabled", "GLINTC_GENERICS_CACHE")
	overlayInt(cfg, "analysis.max_diagnostics", "GLINTC_MAX_DIAGNOSTICS")
	return cfg
}

func overlayBool(cfg glintc.AnalyzerConfig, path, envVar string) {
	raw, ok := os.LookupEnv(envVar)
	if !ok {
		return
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		cfg.SetBool(path, v)
	}
}

func overlayInt(cfg glintc.AnalyzerConfig, path, envVar string) {
	raw, ok := os.LookupEnv(envVar)
	if !ok {
		return
	}
	if v, err := strconv.Atoi(raw); err == nil {
		cfg.SetInt(path, v)
	}
}
