package domain

// UserProfile is the account record behind the user-facing flows. The
// backend owns it; the client only reads it.
type UserProfile struct {
	UserID    int            `json:"user_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Status    string         `json:"status"`
	Documents []UserDocument `json:"documents,omitempty"`
}

type UserDocument struct {
	DocumentType   string `json:"document_type"`
	DocumentURL    string `json:"document_url"`
	LocalImagePath string `json:"local_image_path"`
}

// Session is the locally persisted login state. A zero UserID with
// LoggedIn false is the unauthenticated session.
type Session struct {
	UserID   int
	LoggedIn bool
	Admin    bool
}
