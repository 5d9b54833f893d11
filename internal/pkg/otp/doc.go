// Package otp generates short numeric one-time codes that are delivered out of
// band (email) and typed back by the user.
package otp
