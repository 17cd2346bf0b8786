package domain

// Identity is the authenticated caller as resolved by the session gate.
// Email is the stable owner identifier for all expense data; it is always set.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
