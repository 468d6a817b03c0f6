// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary. The credential is
// reported only as present or absent.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		fmt.Fprintln(out, "  (defaults)")
		return
	}

	fmt.Fprintf(out, "  Provider:        %s\n", cfg.ProviderName())
	fmt.Fprintf(out, "  Model:           %s\n", cfg.ModelName())
	fmt.Fprintf(out, "  Judge Model:     %s\n", cfg.JudgeModelName())
	if cfg.ProviderName() == "ollama" {
		fmt.Fprintf(out, "  Ollama URL:      %s\n", cfg.OllamaHost())
	}
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Request Timeout: %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Output Path:     %s\n", cfg.OutputFilePath())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	if cfg.APIKey != "" {
		fmt.Fprintf(out, "  %s:  set\n", EnvAPIKey)
	} else {
		fmt.Fprintf(out, "  %s:  not set\n", EnvAPIKey)
	}
}
