package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ratnabot/internal/gemini"
	"ratnabot/internal/session"
)

type generateResult struct {
	resp *gemini.Response
	err  error
}

type fakeBinding struct {
	results []generateResult
	calls   [][]gemini.Content
}

func (b *fakeBinding) Name() string { return "models/fake" }

func (b *fakeBinding) Generate(ctx context.Context, contents []gemini.Content, genCfg *gemini.GenerationConfig) (*gemini.Response, error) {
	b.calls = append(b.calls, contents)
	r := b.results[0]
	if len(b.results) > 1 {
		b.results = b.results[1:]
	}
	return r.resp, r.err
}

type fakeResolver struct {
	binding Binding
	err     error
	calls   int
}

func (r *fakeResolver) Resolve(ctx context.Context) (Binding, error) {
	r.calls++
	return r.binding, r.err
}

func textResponse(text string) *gemini.Response {
	return &gemini.Response{Candidates: []gemini.Candidate{{
		Content: gemini.Content{Role: "model", Parts: []gemini.Part{{Text: text}}},
	}}}
}

func rateLimitErr() error {
	return &gemini.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"}
}

func newTestOrchestrator(resolver Resolver, sleeps *[]time.Duration) *Orchestrator {
	policy := DefaultRetryPolicy(3, 2*time.Second)
	policy.Sleep = func(ctx context.Context, d time.Duration) error {
		if sleeps != nil {
			*sleeps = append(*sleeps, d)
		}
		return nil
	}
	return New(Config{
		Resolver:      resolver,
		Policy:        policy,
		KeyConfigured: true,
		Logger:        zerolog.Nop(),
	})
}

func TestRespondGreetingShortcut(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("must not be called")}
	o := newTestOrchestrator(resolver, nil)
	sess := &session.Session{ID: "s1"}

	for _, msg := range []string{"hi", "Hello!", "NAMASTE", "good morning."} {
		reply := o.Respond(context.Background(), sess, msg)
		if reply != ReplyGreeting {
			t.Fatalf("%q: expected greeting reply, got %q", msg, reply)
		}
	}
	if resolver.calls != 0 {
		t.Fatalf("greeting shortcut must not resolve a model")
	}
	if len(sess.Transcript) != 8 {
		t.Fatalf("expected 2 turns per exchange, got %d", len(sess.Transcript))
	}
}

func TestRespondNonGreetingReachesModel(t *testing.T) {
	binding := &fakeBinding{results: []generateResult{{resp: textResponse("school opens at 9")}}}
	o := newTestOrchestrator(&fakeResolver{binding: binding}, nil)
	sess := &session.Session{ID: "s1"}

	reply := o.Respond(context.Background(), sess, "hi there, when does school open?")
	if reply != "school opens at 9" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(binding.calls) != 1 {
		t.Fatalf("expected one generation call, got %d", len(binding.calls))
	}
}

func TestRespondKeyMissing(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("must not be called")}
	o := New(Config{
		Resolver:      resolver,
		Policy:        DefaultRetryPolicy(3, 2*time.Second),
		KeyConfigured: false,
		Logger:        zerolog.Nop(),
	})
	sess := &session.Session{ID: "s1"}

	if reply := o.Respond(context.Background(), sess, "what is the fee?"); reply != ReplyKeyMissing {
		t.Fatalf("expected key-missing reply, got %q", reply)
	}
	if resolver.calls != 0 {
		t.Fatalf("missing key must short-circuit before resolution")
	}
	if len(sess.Transcript) != 2 {
		t.Fatalf("error path must still append both turns, got %d", len(sess.Transcript))
	}
}

func TestRespondResolverFailures(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{gemini.ErrNoUsableModels, ReplyNoUsableModels},
		{gemini.ErrAllModelsFailed, ReplyAllModelsFailed},
		{errors.New("list failed"), ReplyModelListFailed},
	}
	for _, tc := range cases {
		o := newTestOrchestrator(&fakeResolver{err: tc.err}, nil)
		sess := &session.Session{ID: "s1"}
		if reply := o.Respond(context.Background(), sess, "question"); reply != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.err, tc.want, reply)
		}
		if len(sess.Transcript) != 2 {
			t.Fatalf("%v: expected 2 turns, got %d", tc.err, len(sess.Transcript))
		}
	}
}

func TestRespondRetriesRateLimitThenSucceeds(t *testing.T) {
	binding := &fakeBinding{results: []generateResult{
		{err: rateLimitErr()},
		{resp: textResponse("recovered")},
	}}
	var sleeps []time.Duration
	o := newTestOrchestrator(&fakeResolver{binding: binding}, &sleeps)
	sess := &session.Session{ID: "s1"}

	if reply := o.Respond(context.Background(), sess, "question"); reply != "recovered" {
		t.Fatalf("expected recovered reply, got %q", reply)
	}
	if len(sleeps) != 1 || sleeps[0] != 2*time.Second {
		t.Fatalf("expected one 2s backoff, got %v", sleeps)
	}
	if len(binding.calls) != 2 {
		t.Fatalf("expected 2 generation calls, got %d", len(binding.calls))
	}
}

func TestRespondRateLimitExhaustsAttempts(t *testing.T) {
	binding := &fakeBinding{results: []generateResult{{err: rateLimitErr()}}}
	var sleeps []time.Duration
	o := newTestOrchestrator(&fakeResolver{binding: binding}, &sleeps)
	sess := &session.Session{ID: "s1"}

	if reply := o.Respond(context.Background(), sess, "question"); reply != ReplyQuotaExceeded {
		t.Fatalf("expected quota reply, got %q", reply)
	}
	if len(binding.calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(binding.calls))
	}
	if len(sleeps) != 2 || sleeps[0] != 2*time.Second || sleeps[1] != 4*time.Second {
		t.Fatalf("expected backoffs [2s 4s], got %v", sleeps)
	}
}

func TestRespondNonRetryableErrorFailsFast(t *testing.T) {
	binding := &fakeBinding{results: []generateResult{
		{err: &gemini.APIError{Code: 401, Status: "UNAUTHENTICATED", Message: "API key not valid"}},
	}}
	var sleeps []time.Duration
	o := newTestOrchestrator(&fakeResolver{binding: binding}, &sleeps)
	sess := &session.Session{ID: "s1"}

	if reply := o.Respond(context.Background(), sess, "question"); reply != ReplyInvalidKey {
		t.Fatalf("expected invalid-key reply, got %q", reply)
	}
	if len(binding.calls) != 1 {
		t.Fatalf("non-retryable error must not retry, got %d calls", len(binding.calls))
	}
	if len(sleeps) != 0 {
		t.Fatalf("unexpected backoffs %v", sleeps)
	}
}

func TestRespondErrorReplyClasses(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&gemini.APIError{Code: 404, Status: "NOT_FOUND", Message: "no such model"}, ReplyModelUnavailable},
		{&gemini.APIError{Code: 403, Status: "PERMISSION_DENIED", Message: "denied"}, ReplyPermissionDenied},
		{errors.New("API key invalid"), ReplyInvalidKey},
	}
	for _, tc := range cases {
		binding := &fakeBinding{results: []generateResult{{err: tc.err}}}
		o := newTestOrchestrator(&fakeResolver{binding: binding}, nil)
		sess := &session.Session{ID: "s1"}
		if reply := o.Respond(context.Background(), sess, "question"); reply != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.err, tc.want, reply)
		}
	}
}

func TestRespondUnknownErrorTruncated(t *testing.T) {
	long := strings.Repeat("x", 150)
	binding := &fakeBinding{results: []generateResult{{err: errors.New(long)}}}
	o := newTestOrchestrator(&fakeResolver{binding: binding}, nil)
	sess := &session.Session{ID: "s1"}

	reply := o.Respond(context.Background(), sess, "question")
	want := "⚠️ Sorry, I'm facing a technical issue: " + long[:100] + ". Please try again."
	if reply != want {
		t.Fatalf("expected truncated detail, got %q", reply)
	}
}

func TestRespondEmptyResponse(t *testing.T) {
	binding := &fakeBinding{results: []generateResult{{resp: &gemini.Response{}}}}
	o := newTestOrchestrator(&fakeResolver{binding: binding}, nil)
	sess := &session.Session{ID: "s1"}

	if reply := o.Respond(context.Background(), sess, "question"); reply != ReplyEmptyResponse {
		t.Fatalf("expected empty-response apology, got %q", reply)
	}
}

func TestRespondForwardsWindowedHistory(t *testing.T) {
	binding := &fakeBinding{results: []generateResult{{resp: textResponse("ok")}}}
	o := newTestOrchestrator(&fakeResolver{binding: binding}, nil)

	sess := &session.Session{ID: "s1"}
	for i := 0; i < 13; i++ {
		sess.Append(session.RoleUser, "q")
		sess.Append(session.RoleAssistant, "a")
	}

	o.Respond(context.Background(), sess, "current question")

	contents := binding.calls[0]
	// 20 windowed turns plus the combined current message.
	if len(contents) != 21 {
		t.Fatalf("expected 21 contents, got %d", len(contents))
	}
	for i := 0; i < 20; i++ {
		want := "user"
		if i%2 == 1 {
			want = "model"
		}
		if contents[i].Role != want {
			t.Fatalf("content %d: expected role %q, got %q", i, want, contents[i].Role)
		}
	}
	last := contents[20]
	if last.Role != "user" {
		t.Fatalf("final content must carry the user role, got %q", last.Role)
	}
	if !strings.Contains(last.Parts[0].Text, "User's current message: current question") {
		t.Fatalf("combined message missing from final content: %q", last.Parts[0].Text)
	}
	if len(sess.Transcript) != 28 {
		t.Fatalf("expected 28 stored turns, got %d", len(sess.Transcript))
	}
}

func TestIsGreeting(t *testing.T) {
	yes := []string{"hi", "hi.", "hi!", "Hello", "good evening!", "Namaste."}
	for _, msg := range yes {
		if !isGreeting(msg) {
			t.Fatalf("%q should be a greeting", msg)
		}
	}
	no := []string{"hi there", "hello?", "goodbye", "", "what time is it"}
	for _, msg := range no {
		if isGreeting(msg) {
			t.Fatalf("%q should not be a greeting", msg)
		}
	}
}
