package models

// User is the normalized authenticated-identity snapshot held by the session
// layer. It is derived from the backend on every session validation and never
// persisted locally.
type User struct {
	// ID is the backend-assigned user identifier.
	ID int64 `json:"id"`

	// Email is the login identifier of the account.
	Email string `json:"email"`

	// FullName is the display name of the user. May be empty.
	FullName string `json:"full_name"`

	// Phone is the optional contact phone number.
	Phone string `json:"phone_number,omitempty"`

	// IsAdmin reports whether the account carries administrative privileges.
	// Always a strict boolean here; see [UserPayload.Normalize] for how the
	// backend's loosely-typed representations are folded into it.
	IsAdmin bool `json:"is_admin"`
}

// UserPayload is the wire form of GET /users/me. The backend is known to emit
// is_admin as a boolean, a number, or a string depending on the code path that
// produced the row, so the field is decoded untyped and normalized afterwards.
type UserPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone_number"`
	IsAdmin  any    `json:"is_admin"`
}

// Empty reports whether the payload carries no usable identity. Intermediary
// caches have been observed returning 200s with hollow bodies; callers treat
// an empty payload as a miss and retry with cache busting.
func (p UserPayload) Empty() bool {
	return p.ID == 0 && p.Email == ""
}

// Normalize converts the wire payload into a [User] with a strict boolean
// admin flag.
func (p UserPayload) Normalize() User {
	return User{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Phone:    p.Phone,
		IsAdmin:  NormalizeBool(p.IsAdmin),
	}
}

// NormalizeBool folds a loosely-typed truthy value into a strict boolean.
//
// Only the exact values true, 1, "1" and "true" count as true. Everything
// else, including other truthy-looking strings such as "yes", is false,
// matching the observed backend contract. JSON numbers decode as float64,
// so both int and float64 representations of 1 are accepted.
func NormalizeBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case int:
		return v == 1
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}

// RegisterRequest is the JSON body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone_number,omitempty"`
}

// ProfileUpdate is the JSON body of PUT /users/me.
type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone_number,omitempty"`
}

// PasswordChange is the JSON body of POST /users/me/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
