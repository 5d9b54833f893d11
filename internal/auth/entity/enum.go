package entity

// Role is the account role carried in session tokens.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleTurfOwner Role = "turfOwner"
)

// RoleOrDefault maps an empty role to RoleUser.
func RoleOrDefault(r string) Role {
	if r == "" {
		return RoleUser
	}
	return Role(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleTurfOwner:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Purpose is why a one-time code was issued.
type Purpose int8

const (
	PurposeUnknown Purpose = iota
	PurposeSignup
	PurposeLogin
	PurposeReset
)

func (p Purpose) String() string {
	switch p {
	case PurposeSignup:
		return "signup"
	case PurposeLogin:
		return "login"
	case PurposeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParsePurpose is the inverse of String.
func ParsePurpose(s string) Purpose {
	switch s {
	case "signup":
		return PurposeSignup
	case "login":
		return PurposeLogin
	case "reset":
		return PurposeReset
	default:
		return PurposeUnknown
	}
}

// Slot names where a purpose's challenge is stored on the account.
type Slot int8

const (
	// SlotOTP is shared by signup and login; issuing one overwrites the other.
	SlotOTP Slot = iota
	SlotReset
)

func (p Purpose) Slot() Slot {
	if p == PurposeReset {
		return SlotReset
	}
	return SlotOTP
}
