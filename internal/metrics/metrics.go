package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ChatRequests      prometheus.Counter
	GreetingShortcuts prometheus.Counter
	ResolverFailures  prometheus.Counter
	ProviderRetries   prometheus.Counter
	ChatErrors        prometheus.Counter
	FeedbackSubmitted prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			ChatRequests: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ratnabot",
				Name:      "chat_requests_total",
				Help:      "Total chat messages received on /get",
			}),
			GreetingShortcuts: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ratnabot",
				Name:      "chat_greeting_shortcuts_total",
				Help:      "Total chat messages answered by the greeting fast path",
			}),
			ResolverFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ratnabot",
				Name:      "model_resolver_failures_total",
				Help:      "Total requests where no remote model could be bound",
			}),
			ProviderRetries: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ratnabot",
				Name:      "provider_retries_total",
				Help:      "Total rate-limit retries against the generation API",
			}),
			ChatErrors: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ratnabot",
				Name:      "chat_errors_total",
				Help:      "Total chat requests that surfaced an error reply",
			}),
			FeedbackSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ratnabot",
				Name:      "feedback_submitted_total",
				Help:      "Total feedback entries appended to the store",
			}),
		}
		prometheus.MustRegister(
			global.ChatRequests,
			global.GreetingShortcuts,
			global.ResolverFailures,
			global.ProviderRetries,
			global.ChatErrors,
			global.FeedbackSubmitted,
		)
	})
	return global
}
