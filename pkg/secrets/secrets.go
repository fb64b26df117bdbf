// Package secrets provides the platform credential protection capability
// used when a service spec carries a password.
package secrets

// Protector encrypts a credential with a platform protection mechanism so
// that it never travels in clear text. Callers must check Available before
// calling Protect: on platforms without a protection mechanism the
// credential is carried absent instead of failing the request.
type Protector interface {
	Available() bool
	Protect(secret string) (string, error)
}
