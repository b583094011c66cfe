// Package chat turns a user message plus the stored transcript into a reply
// string: greeting fast path, system-context assembly, per-request model
// resolution, rate-limit retries, and reply extraction.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ratnabot/internal/gemini"
	"ratnabot/internal/metrics"
	"ratnabot/internal/session"
)

// historyWindow caps how many stored turns are forwarded to the model. Older
// turns stay in the transcript but exert no influence.
const historyWindow = 20

// Binding is one usable remote model.
type Binding interface {
	Name() string
	Generate(ctx context.Context, contents []gemini.Content, genCfg *gemini.GenerationConfig) (*gemini.Response, error)
}

// Resolver binds a model for the current request. Resolution runs fresh every
// call; availability is account/region/time dependent.
type Resolver interface {
	Resolve(ctx context.Context) (Binding, error)
}

type geminiResolver struct {
	inner *gemini.Resolver
}

// NewGeminiResolver adapts the concrete resolver to the Resolver interface.
func NewGeminiResolver(r *gemini.Resolver) Resolver {
	return geminiResolver{inner: r}
}

func (g geminiResolver) Resolve(ctx context.Context) (Binding, error) {
	b, err := g.inner.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return b, nil
}

type Orchestrator struct {
	resolver      Resolver
	policy        RetryPolicy
	keyConfigured bool
	logger        zerolog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

type Config struct {
	Resolver      Resolver
	Policy        RetryPolicy
	KeyConfigured bool
	Logger        zerolog.Logger
	Metrics       *metrics.Metrics
	Now           func() time.Time
}

func New(cfg Config) *Orchestrator {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if cfg.Policy.MaxAttempts < 1 {
		cfg.Policy = DefaultRetryPolicy(3, 2*time.Second)
	}
	return &Orchestrator{
		resolver:      cfg.Resolver,
		policy:        cfg.Policy,
		keyConfigured: cfg.KeyConfigured,
		logger:        cfg.Logger,
		metrics:       m,
		now:           now,
	}
}

// Respond produces the reply for one user message and appends both the user
// turn and the assistant turn to the session transcript. Every path, error
// paths included, appends exactly those two turns and returns one reply.
func (o *Orchestrator) Respond(ctx context.Context, sess *session.Session, message string) string {
	o.metrics.ChatRequests.Inc()

	var reply string
	if isGreeting(message) {
		o.metrics.GreetingShortcuts.Inc()
		reply = ReplyGreeting
	} else {
		reply = o.generate(ctx, sess, message)
	}

	sess.Append(session.RoleUser, message)
	sess.Append(session.RoleAssistant, reply)
	return reply
}

func (o *Orchestrator) generate(ctx context.Context, sess *session.Session, message string) string {
	if !o.keyConfigured {
		o.metrics.ChatErrors.Inc()
		return ReplyKeyMissing
	}

	binding, err := o.resolver.Resolve(ctx)
	if err != nil {
		o.metrics.ResolverFailures.Inc()
		o.metrics.ChatErrors.Inc()
		o.logger.Error().Err(err).Msg("model resolution failed")
		switch {
		case errors.Is(err, gemini.ErrNoUsableModels):
			return ReplyNoUsableModels
		case errors.Is(err, gemini.ErrAllModelsFailed):
			return ReplyAllModelsFailed
		default:
			return ReplyModelListFailed
		}
	}

	instruction := buildSystemInstruction(o.now())
	fullMessage := instruction +
		"\n\nUser's current message: " + message +
		"\n\nProvide a helpful, intelligent, and engaging response:"

	history := historyContents(sess.LastTurns(historyWindow))
	var contents []gemini.Content
	if len(history) > 0 {
		// Stateful exchange: seed with history, then the combined message.
		contents = append(history, userContent(fullMessage))
	} else {
		// First-ever message: one-shot generation of the same combined string.
		contents = []gemini.Content{userContent(fullMessage)}
	}

	genCfg := &gemini.GenerationConfig{Temperature: 0.7, TopP: 0.95, TopK: 40}

	var resp *gemini.Response
	var lastErr error
	for attempt := 0; attempt < o.policy.MaxAttempts; attempt++ {
		resp, lastErr = binding.Generate(ctx, contents, genCfg)
		if lastErr == nil {
			break
		}
		// Only the rate-limit class is retried; everything else surfaces.
		if !gemini.IsRateLimited(lastErr) || attempt == o.policy.MaxAttempts-1 {
			break
		}
		o.metrics.ProviderRetries.Inc()
		o.logger.Warn().
			Err(lastErr).
			Str("model", binding.Name()).
			Int("attempt", attempt+1).
			Dur("backoff", o.policy.Backoff(attempt)).
			Msg("rate limited, backing off")
		if err := o.policy.Wait(ctx, attempt); err != nil {
			lastErr = err
			break
		}
	}
	if lastErr != nil {
		return o.errorReply(lastErr)
	}

	text := resp.Text()
	if text == "" {
		o.metrics.ChatErrors.Inc()
		o.logger.Warn().Str("model", binding.Name()).Msg("empty response from generation api")
		return ReplyEmptyResponse
	}
	return text
}

// errorReply maps an unrecovered error to its fixed user-facing message and
// logs the raw detail server-side.
func (o *Orchestrator) errorReply(err error) string {
	o.metrics.ChatErrors.Inc()
	o.logger.Error().Err(err).Msg("chat generation failed")

	msg := strings.ToLower(err.Error())
	switch {
	case gemini.IsUnauthenticated(err) || strings.Contains(msg, "api key"):
		return ReplyInvalidKey
	case gemini.IsRateLimited(err):
		return ReplyQuotaExceeded
	case gemini.IsNotFound(err) || strings.Contains(msg, "model"):
		return ReplyModelUnavailable
	case gemini.IsPermissionDenied(err):
		return ReplyPermissionDenied
	default:
		return unknownErrorReply(err)
	}
}

// historyContents converts stored turns to the provider's role vocabulary.
func historyContents(turns []session.Turn) []gemini.Content {
	out := make([]gemini.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == session.RoleAssistant {
			role = "model"
		}
		out = append(out, gemini.Content{Role: role, Parts: []gemini.Part{{Text: t.Content}}})
	}
	return out
}

func userContent(text string) gemini.Content {
	return gemini.Content{Role: "user", Parts: []gemini.Part{{Text: text}}}
}
