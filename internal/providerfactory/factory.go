// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/providers"
	"github.com/factorylens/hazardbench/internal/providers/gemini"
	"github.com/factorylens/hazardbench/internal/providers/ollama"
)

// New selects and configures the vision provider named by the
// application configuration. The gemini provider requires a credential
// in the environment; a run cannot start without it.
func New(cfg *appconfig.Config) (providers.VisionProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}

	switch cfg.ProviderName() {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s not found in environment; set it in .env or export it", appconfig.EnvAPIKey)
		}
		return gemini.New(cfg), nil
	case "ollama":
		return ollama.New(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected gemini or ollama)", cfg.ProviderName())
	}
}
