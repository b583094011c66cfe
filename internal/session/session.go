// Package session holds per-browser conversational state: who the visitor is
// and the ordered chat transcript. Records live server-side in redis; the
// browser only carries a signed cookie with the session id.
package session

type IdentityKind string

const (
	KindAnonymous IdentityKind = "anonymous"
	KindGuest     IdentityKind = "guest"
	KindUser      IdentityKind = "user"
)

type Identity struct {
	Kind     IdentityKind `json:"kind"`
	Username string       `json:"username,omitempty"`
}

func Anonymous() Identity {
	return Identity{Kind: KindAnonymous}
}

func Guest() Identity {
	return Identity{Kind: KindGuest}
}

func Authenticated(username string) Identity {
	return Identity{Kind: KindUser, Username: username}
}

// Known reports whether the visitor may use the chat (logged in or guest).
func (i Identity) Known() bool {
	return i.Kind == KindGuest || i.Kind == KindUser
}

func (i Identity) Authenticated() bool {
	return i.Kind == KindUser
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Session struct {
	ID         string   `json:"id"`
	Identity   Identity `json:"identity"`
	Transcript []Turn   `json:"transcript"`
	Flashes    []Flash  `json:"flashes,omitempty"`
}

// SetIdentity switches who the session belongs to and clears the transcript.
// Guest and authenticated identities are mutually exclusive.
func (s *Session) SetIdentity(id Identity) {
	s.Identity = id
	s.Transcript = nil
}

// Append adds a turn to the transcript. Turns are never edited afterwards.
func (s *Session) Append(role Role, content string) {
	s.Transcript = append(s.Transcript, Turn{Role: role, Content: content})
}

// LastTurns returns at most n of the most recent turns. Older turns stay
// stored but are not forwarded to the model.
func (s *Session) LastTurns(n int) []Turn {
	if n <= 0 || len(s.Transcript) <= n {
		return s.Transcript
	}
	return s.Transcript[len(s.Transcript)-n:]
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns pending flash messages and clears them.
func (s *Session) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}
