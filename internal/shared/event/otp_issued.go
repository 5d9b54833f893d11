package event

import "time"

const OTPIssuedDestination string = "auth_otp_issued"
const OTPIssuedConsumerNotification string = "auth_otp_issued_notification"

// OTPIssuedMessage asks for a one-time code to be emailed. It carries the
// plaintext code, so the subject must stay on an internal bus.
type OTPIssuedMessage struct {
	AccountID  string    `json:"account_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Purpose    string    `json:"purpose"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTLMinutes int       `json:"ttl_minutes"`
}
