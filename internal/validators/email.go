package validators

import (
	"net/mail"
	"strings"
)

// IsEmail aceita só o endereço puro ("ana@exemplo.com"), sem nome de exibição.
func IsEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
