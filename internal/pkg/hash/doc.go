// Package hash turns secrets into one-way digests.
//
// Bcrypt is for account passwords. HMACSHA256 is a fast keyed digest for
// short-lived one-time codes, where the expiry bounds the exposure.
package hash
