package model

// PasswordReset is a single-use credential for the forgot-password
// flow. At most one row exists per username; issuing a new one
// replaces the old.
type PasswordReset struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	ExpireAt int64  `json:"expire_at"`
	Ctime    int64  `json:"ctime"`
}
