// Package clock hides time.Now behind an interface so OTP expiry and token
// lifetimes can be tested against a fixed instant.
package clock
