package validation

import (
	"net/mail"
	"strings"
)

// Account checks the contact details of a tenant account before it is stored.
// The returned email is lower cased and trimmed.
func Account(email, name string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case email == "":
		return "", &Error{Field: "email", Message: "is required"}
	case len(email) > 254:
		return "", &Error{Field: "email", Message: "must be at most 254 characters"}
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", &Error{Field: "email", Message: "is not a valid address"}
	}

	if len(strings.TrimSpace(name)) > 100 {
		return "", &Error{Field: "name", Message: "must be at most 100 characters"}
	}

	return email, nil
}
