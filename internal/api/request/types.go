package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateWordRequest is the request body for checking a word offline.
// Letters are optional; without them only dictionary membership is checked.
type ValidateWordRequest struct {
	Word    string   `json:"word"`
	Letters []string `json:"letters,omitempty"`
}
