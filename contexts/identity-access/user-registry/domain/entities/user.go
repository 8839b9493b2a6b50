package entities

import "time"

// User is a platform identity registered with the orchestrator.
// Sub and Issuer together identify the account at its provider.
type User struct {
	ID           string
	Sub          string
	Name         string
	Email        string
	Issuer       string
	PublicSSHKey string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// KeyPair is the material issued at registration. Only the public half
// is persisted with the user.
type KeyPair struct {
	PublicOpenSSH string
	PrivatePEM    string
}
