package generativeAI

import (
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// Registry holds the configured clients. Claude serves the primary path; the enhanced
// path picks one of the others by name.
type Registry struct {
	clients         map[types.Provider]Client
	primary         types.Provider
	defaultEnhancer types.Provider
}

func NewRegistry(primary Client, enhancers ...Client) *Registry {
	r := &Registry{
		clients:         make(map[types.Provider]Client, len(enhancers)+1),
		primary:         primary.Provider(),
		defaultEnhancer: types.ProviderOpenAI,
	}
	r.clients[primary.Provider()] = primary
	for _, c := range enhancers {
		if c != nil {
			r.clients[c.Provider()] = c
		}
	}
	return r
}

// Primary returns the client used by the generate endpoint.
func (r *Registry) Primary() Client {
	return r.clients[r.primary]
}

// Enhancer resolves the client for the enhanced path. An empty name selects OpenAI.
func (r *Registry) Enhancer(name types.Provider) (Client, error) {
	if name == "" {
		name = r.defaultEnhancer
	}
	if name == r.primary {
		return nil, &types.ValidationError{Field: "provider", Message: fmt.Sprintf("provider %q is not available for enhancement", name)}
	}
	c, ok := r.clients[name]
	if !ok {
		return nil, &types.ValidationError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", name)}
	}
	return c, nil
}

// LogConfiguration reports missing credentials once at startup.
func (r *Registry) LogConfiguration(logger *slog.Logger) {
	for name, c := range r.clients {
		if err := c.Configured(); err != nil {
			logger.Warn("LLM provider not configured", slog.String("provider", string(name)), slog.Any("error", err))
			continue
		}
		logger.Info("LLM provider configured", slog.String("provider", string(name)), slog.String("model", c.Model()))
	}
}
