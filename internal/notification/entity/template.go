package entity

// TriggerKey identifies which email a notification sends.
type TriggerKey string

const (
	TriggerKeyOTPSignup TriggerKey = "otp_signup"
	TriggerKeyOTPLogin  TriggerKey = "otp_login"
	TriggerKeyOTPReset  TriggerKey = "otp_reset"
)

func (t TriggerKey) String() string {
	return string(t)
}

// TriggerKeyFromPurpose maps the purpose carried by an issued code.
func TriggerKeyFromPurpose(purpose string) (TriggerKey, bool) {
	switch purpose {
	case "signup":
		return TriggerKeyOTPSignup, true
	case "login":
		return TriggerKeyOTPLogin, true
	case "reset":
		return TriggerKeyOTPReset, true
	default:
		return "", false
	}
}

// Template is an email subject and an html/template body.
type Template struct {
	TriggerKey TriggerKey
	Subject    string
	Body       string
}

const otpBody = `<p>Your OTP is <b>{{.code}}</b>. It expires in {{.ttl_minutes}} minutes.</p>`

// DefaultTemplates returns the built-in OTP emails.
func DefaultTemplates() map[TriggerKey]Template {
	return map[TriggerKey]Template{
		TriggerKeyOTPSignup: {TriggerKey: TriggerKeyOTPSignup, Subject: "Verify your email", Body: otpBody},
		TriggerKeyOTPLogin:  {TriggerKey: TriggerKeyOTPLogin, Subject: "Your login code", Body: otpBody},
		TriggerKeyOTPReset:  {TriggerKey: TriggerKeyOTPReset, Subject: "Reset your password", Body: otpBody},
	}
}
