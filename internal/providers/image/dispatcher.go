package image

import (
	"context"
	"errors"
	"strings"

	"sellerkit/internal/domain"
)

// Saver persists a generated image and returns the stored path. The
// dispatcher only writes when the caller asked for it.
type Saver interface {
	SaveGenerated(provider string, data []byte, format string) (string, error)
}

// Options controls post-generation handling for a single dispatch.
type Options struct {
	SaveToDisk bool
}

// Outcome is the dispatch result: the provider output plus the stored path
// when persistence was requested.
type Outcome struct {
	Provider string
	Result   *Result
	Path     string
}

// Dispatcher validates a request against the registry catalog and hands it
// to the matching generator. Credential validation happens before any
// network traffic so a misconfigured call never leaves the process.
type Dispatcher struct {
	registry *Registry
	saver    Saver
}

func NewDispatcher(registry *Registry, saver Saver) *Dispatcher {
	return &Dispatcher{registry: registry, saver: saver}
}

func (d *Dispatcher) Generate(ctx context.Context, provider string, req Request, opts Options) (*Outcome, error) {
	desc, gen, ok := d.registry.Lookup(provider)
	if !ok {
		return nil, &domain.ConfigError{Provider: provider, Message: "unknown provider"}
	}
	for _, field := range desc.Requires {
		if strings.TrimSpace(req.Credentials[field]) == "" {
			return nil, &domain.ConfigError{Provider: provider, Field: field, Message: "missing credential"}
		}
	}
	if req.Size == "" {
		req.Size = DefaultSize
	}

	res, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, normalize(provider, err)
	}
	out := &Outcome{Provider: provider, Result: res}
	if opts.SaveToDisk && d.saver != nil && len(res.Data) > 0 {
		path, err := d.saver.SaveGenerated(provider, res.Data, res.Format)
		if err != nil {
			return nil, &domain.ProviderError{Provider: provider, Cause: err}
		}
		out.Path = path
	}
	return out, nil
}

// normalize keeps the error taxonomy closed: anything a generator returns
// outside the known types is wrapped as a ProviderError.
func normalize(provider string, err error) error {
	var ce *domain.ConfigError
	var pe *domain.ProviderError
	var te *domain.TimeoutError
	if errors.As(err, &ce) || errors.As(err, &pe) || errors.As(err, &te) {
		return err
	}
	return &domain.ProviderError{Provider: provider, Cause: err}
}
