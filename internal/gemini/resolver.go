package gemini

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// ModelBinding is a handle to one usable remote model.
type ModelBinding struct {
	name   string
	client *Client
}

func (b *ModelBinding) Name() string {
	return b.name
}

func (b *ModelBinding) Generate(ctx context.Context, contents []Content, genCfg *GenerationConfig) (*Response, error) {
	return b.client.GenerateContent(ctx, b.name, contents, genCfg)
}

// Resolver binds a usable model per request. Which identifiers an account can
// use changes over time, so nothing is cached between calls.
type Resolver struct {
	client *Client
	logger zerolog.Logger
}

func NewResolver(client *Client, logger zerolog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// Resolve lists the remote model descriptors, keeps those declaring
// generateContent support, and binds the first that accepts a probe. Each
// candidate gets two attempts: the full identifier, then the trailing path
// segment (some identifiers are namespaced as "models/<id>").
//
// Returns ErrNoUsableModels when the filtered set is empty and
// ErrAllModelsFailed when every candidate rejected both probes.
func (r *Resolver) Resolve(ctx context.Context) (*ModelBinding, error) {
	models, err := r.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(models))
	for _, m := range models {
		if m.SupportsGeneration() {
			candidates = append(candidates, m.Name)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoUsableModels
	}

	// First responder wins; keep the API's ordering.
	for _, name := range candidates {
		if _, err := r.client.GetModel(ctx, name); err == nil {
			r.logger.Debug().Str("model", name).Msg("bound model")
			return &ModelBinding{name: name, client: r.client}, nil
		} else if ctx.Err() != nil {
			return nil, ctx.Err()
		} else {
			r.logger.Debug().Err(err).Str("model", name).Msg("model probe failed")
		}

		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			id := name[idx+1:]
			if _, err := r.client.GetModel(ctx, id); err == nil {
				r.logger.Debug().Str("model", id).Msg("bound model by trailing segment")
				return &ModelBinding{name: id, client: r.client}, nil
			} else if ctx.Err() != nil {
				return nil, ctx.Err()
			} else {
				r.logger.Debug().Err(err).Str("model", id).Msg("trailing segment probe failed")
			}
		}
	}

	return nil, ErrAllModelsFailed
}
