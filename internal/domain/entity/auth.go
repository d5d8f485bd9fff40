package entity

// AuthResult is the outcome of a login or a 2FA verification. When the
// account has 2FA enabled the first step returns RequiresTwoFactor and the
// user id to verify, without a token.
type AuthResult struct {
	Token             string     `json:"token"`
	User              *Principal `json:"user,omitempty"`
	RequiresTwoFactor bool       `json:"requires2FA,omitempty"`
	UserID            string     `json:"userId,omitempty"`
}
