// Package messaging publishes and consumes broker messages behind small
// interfaces so modules do not import the broker client. NATS is the only
// backend.
package messaging
