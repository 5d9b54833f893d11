// Package jwt issues and verifies the session tokens returned after a
// completed login, and carries verified claims through a request context.
package jwt
