package account

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation limits for account fields.
const (
	minUsernameLen = 3
	maxUsernameLen = 50
	maxEmailLen    = 254
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores bytes past 72
	maxAvatarLen   = 2048
)

// validateRegistration checks registration inputs and returns the first
// error found.
func validateRegistration(username, email, password string) string {
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return "Username is required."
	}
	if n < minUsernameLen || n > maxUsernameLen {
		return "Username must be between 3 and 50 characters."
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return "Username may only contain letters, digits, '.', '_' and '-'."
		}
	}

	if email == "" {
		return "Email is required."
	}
	if len(email) > maxEmailLen {
		return "Email is too long (max 254 characters)."
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Email is not a valid address."
	}

	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if len(password) > maxPasswordLen {
		return "Password is too long (max 72 bytes)."
	}
	return ""
}

// normalizeAvatar trims the avatar URL. Nil and blank values mean no
// avatar.
func normalizeAvatar(avatar *string) (*string, string) {
	if avatar == nil {
		return nil, ""
	}
	v := strings.TrimSpace(*avatar)
	if v == "" {
		return nil, ""
	}
	if utf8.RuneCountInString(v) > maxAvatarLen {
		return nil, "Avatar URL is too long (max 2,048 characters)."
	}
	return &v, ""
}
