package model

// Dashboard is the persisted record behind every access decision.
//
// PasswordHash is a three-state field: nil means no password gate,
// otherwise it holds a bcrypt digest. The empty string is never
// stored, and the field is never serialized into a response.
type Dashboard struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"owner_id"`
	Name         string  `json:"name"`
	Layout       string  `json:"layout"`
	Items        string  `json:"items"`
	NextID       int     `json:"next_id"`
	PasswordHash *string `json:"-"`
	Shared       bool    `json:"shared"`
	Views        int64   `json:"views"`
	Ctime        int64   `json:"ctime"`
	Mtime        int64   `json:"mtime"`
}

// HasPassword reports whether a password gate is set. Only this
// boolean ever leaves the core; the digest itself does not.
func (d *Dashboard) HasPassword() bool {
	return d.PasswordHash != nil
}
