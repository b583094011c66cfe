package chat

import "strings"

// Fixed user-facing reply strings. Chat-path failures never surface as HTTP
// errors; they degrade to one of these in a 200 JSON reply.
const (
	ReplyGreeting = "Hello! How can I help you today?"

	ReplyKeyMissing = "⚠️ Error: Gemini API key is not configured. Set GEMINI_API_KEY in your environment."

	ReplyNoUsableModels = "⚠️ Error: No models with generateContent support found. Please check your API key and access permissions."
	ReplyAllModelsFailed = "⚠️ Error: Found models but none could be used. Please check your API key permissions."
	ReplyModelListFailed = "⚠️ Error: Unable to access Gemini models. Please verify your API key and model access."

	ReplyInvalidKey = "⚠️ Error: Invalid or missing Gemini API key. Check GEMINI_API_KEY in your environment."
	ReplyQuotaExceeded = "⚠️ Error: API quota exceeded or rate limit reached. Please wait a few moments and try again. If this persists, you may need to upgrade your API plan or wait for your quota to reset."
	ReplyModelUnavailable = "⚠️ Error: Model not available. Please check your API access."
	ReplyPermissionDenied = "⚠️ Error: Permission denied. Please check your API key permissions."
	ReplyEmptyResponse = "⚠️ Sorry, I'm facing a technical issue connecting to Gemini AI. Please try again."
)

// greetingBases expand with optional trailing "." or "!" into the full
// short-circuit set. Zero-information exchanges never reach the remote API.
var greetingBases = []string{
	"hi", "hello", "hey", "namaste",
	"good morning", "good afternoon", "good evening",
}

var greetings = buildGreetingSet()

func buildGreetingSet() map[string]struct{} {
	set := make(map[string]struct{}, len(greetingBases)*3)
	for _, g := range greetingBases {
		set[g] = struct{}{}
		set[g+"."] = struct{}{}
		set[g+"!"] = struct{}{}
	}
	return set
}

// isGreeting matches the normalized message against the fixed greeting set.
func isGreeting(message string) bool {
	_, ok := greetings[strings.ToLower(message)]
	return ok
}

// unknownErrorReply truncates the raw error to keep the surfaced message
// short; the full detail goes to the server log.
func unknownErrorReply(err error) string {
	msg := err.Error()
	if len(msg) > 100 {
		msg = msg[:100]
	}
	return "⚠️ Sorry, I'm facing a technical issue: " + msg + ". Please try again."
}
