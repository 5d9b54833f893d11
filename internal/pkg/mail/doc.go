// Package mail sends transactional email. Callers depend on the Mail
// interface; SMTP delivery is implemented with gopkg.in/gomail.v2.
package mail
