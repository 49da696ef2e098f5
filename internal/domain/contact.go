package domain

import (
	"fmt"
	"strings"
)

// Contact is the read-only delivery address joined from the account subsystem.
type Contact struct {
	email       string
	displayName string
}

func NewContact(email, displayName string) (Contact, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return Contact{}, fmt.Errorf("%w: email %q", ErrInvalidContact, email)
	}

	return Contact{
		email:       email,
		displayName: strings.TrimSpace(displayName),
	}, nil
}

func (c Contact) Email() string {
	return c.email
}

func (c Contact) DisplayName() string {
	return c.displayName
}
