package auth

import "errors"

var (
	// ErrConfigurationMissing means the gate was built without a signing secret.
	ErrConfigurationMissing = errors.New("session secret is not configured")

	// ErrInvalidCredentials is the only credential failure callers may show.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownIdentifier classifies a login for an email with no account.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrInvalidSecret classifies a login with the wrong password.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrBadSignature covers malformed tokens, wrong algorithms and
	// signature mismatches.
	ErrBadSignature = errors.New("bad token signature")

	// ErrExpired means the token's expiry is at or before now.
	ErrExpired = errors.New("token expired")
)

// credentialError reports as ErrInvalidCredentials while keeping the
// internal reason reachable through errors.Is.
type credentialError struct {
	reason error
}

func (e *credentialError) Error() string { return ErrInvalidCredentials.Error() }

func (e *credentialError) Unwrap() []error {
	return []error{ErrInvalidCredentials, e.reason}
}
