package model

// TokenManager issues and verifies signed identity tokens.
type TokenManager interface {
	Issue(user User) (string, error)
	Parse(token string) (Identity, error)
}
