package contacts

import (
	"strings"

	"github.com/mesh-intelligence/crm/internal/validate"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// NewContact validates and normalizes the given fields into a Contact.
// email and firstName are required; the remaining fields may be empty.
// The first failing field is reported as a *types.ValidationError.
func NewContact(email, firstName, lastName, phoneNumber, address string) (types.Contact, error) {
	return normalize(types.Contact{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		Address:     address,
	})
}

// normalize runs every field of c through the validator. Optional fields
// that are empty (after trimming, for names and address) stay empty.
func normalize(c types.Contact) (types.Contact, error) {
	var (
		out types.Contact
		err error
	)
	if out.Email, err = validate.Email(c.Email); err != nil {
		return types.Contact{}, err
	}
	if out.FirstName, err = validate.Name(c.FirstName, types.FieldFirstName); err != nil {
		return types.Contact{}, err
	}
	if strings.TrimSpace(c.LastName) != "" {
		if out.LastName, err = validate.Name(c.LastName, types.FieldLastName); err != nil {
			return types.Contact{}, err
		}
	}
	if c.PhoneNumber != "" {
		if out.PhoneNumber, err = validate.Phone(c.PhoneNumber); err != nil {
			return types.Contact{}, err
		}
	}
	if strings.TrimSpace(c.Address) != "" {
		if out.Address, err = validate.Address(c.Address); err != nil {
			return types.Contact{}, err
		}
	}
	return out, nil
}
