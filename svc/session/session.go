package session

// Storage keys used by the manager and the HTTP client's interceptors.
// Values are stored raw (token) or JSON-serialized (google identity); there is
// no versioning and no migration.
const (
	StorageKeyToken      = "token"
	StorageKeyGoogleUser = "googleUser"
)

// User is the canonical authenticated identity, fetched from the primary API.
// Present only while a bearer token is valid.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// GoogleUser is a secondary, lower-trust identity captured directly from the
// Google sign-in flow. It authenticates the client only when no bearer-token
// session exists.
type GoogleUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Photo   string `json:"photo"`
	IDToken string `json:"idToken"`
}

// State is an immutable snapshot of the session.
type State struct {
	User       *User
	GoogleUser *GoogleUser
	Token      string
	Loading    bool
}

// IsAuthenticated derives the authentication flag from the snapshot: a valid
// token session (token plus fetched user) or a Google identity. It is
// recomputed on every call, never cached.
func (s State) IsAuthenticated() bool {
	return (s.Token != "" && s.User != nil) || s.GoogleUser != nil
}
