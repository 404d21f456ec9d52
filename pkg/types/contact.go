package types

import "strings"

// Contact is a customer record. Email is the unique key; FirstName is
// required; the remaining fields are optional and empty when unset.
type Contact struct {
	Email       string `json:"email" yaml:"email"`
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	PhoneNumber string `json:"phone_number" yaml:"phone_number"`
	Address     string `json:"address" yaml:"address"`
}

// Document returns the flat five-key mapping persisted for this contact.
func (c Contact) Document() Document {
	return Document{
		FieldEmail:       c.Email,
		FieldFirstName:   c.FirstName,
		FieldLastName:    c.LastName,
		FieldPhoneNumber: c.PhoneNumber,
		FieldAddress:     c.Address,
	}
}

// ContactFromDocument maps a stored document back to a Contact. Missing keys
// yield empty fields; unknown keys are ignored.
func ContactFromDocument(doc Document) Contact {
	return Contact{
		Email:       doc[FieldEmail],
		FirstName:   doc[FieldFirstName],
		LastName:    doc[FieldLastName],
		PhoneNumber: doc[FieldPhoneNumber],
		Address:     doc[FieldAddress],
	}
}

// String renders the contact one field per line, omitting empty optional
// fields.
func (c Contact) String() string {
	var b strings.Builder
	b.WriteString("Email: " + c.Email)
	b.WriteString("\nFirst name: " + c.FirstName)
	if c.LastName != "" {
		b.WriteString("\nLast name: " + c.LastName)
	}
	if c.PhoneNumber != "" {
		b.WriteString("\nPhone number: " + c.PhoneNumber)
	}
	if c.Address != "" {
		b.WriteString("\nAddress: " + c.Address)
	}
	return b.String()
}
