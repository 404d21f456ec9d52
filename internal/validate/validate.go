// Package validate checks and canonicalizes contact record fields.
// Every function is pure: it takes one raw value and returns the normalized
// value or a *types.ValidationError naming the rule that failed.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Length limits.
const (
	MaxEmailLocalLen  = 64
	MaxEmailDomainLen = 255
	MinTLDLen         = 2
	MinNameLen        = 2
	MaxNameLen        = 40
	PhoneLen          = 10
	MinAddressLen     = 10
	MaxAddressLen     = 100
)

// Rejection reasons for email addresses.
const (
	ReasonEmailAtCount   = "email must contain exactly 1 '@'"
	ReasonEmailDomainDot = "email domain name must have at least 1 dot (.)"
	ReasonEmailCharset   = "email must only contain letters, digits, dots (.), underscores (_), hyphens (-), plus (+) and an at (@)"
	ReasonEmailEdges     = "email cannot start with '@', '.', '-' or '_' and cannot end with '@' or '.'"
	ReasonEmailTLD       = "top level domain must have 2 or more characters"
	ReasonEmailLocalLen  = "username (part before the at (@)) must be 64 characters long or less"
	ReasonEmailDomainLen = "domain (part after the at (@)) must be 255 characters long or less"
)

// Rejection reasons for phone numbers and addresses. Name reasons depend on
// the field label; see NameLengthReason and NameCharsetReason.
const (
	ReasonPhoneDigits    = "phone number must only contain numbers"
	ReasonPhoneLen       = "phone number must contain 10 digits"
	ReasonAddressLen     = "address must contain 10 - 100 characters"
	ReasonAddressCharset = "address must only contain letters, spaces, numbers, hyphens (-), periods (.) and commas (,)"
)

var (
	emailCharset   = regexp.MustCompile(`^[A-Za-z0-9.@_+-]*$`)
	nameCharset    = regexp.MustCompile(`^[A-Za-z '-]*$`)
	digitsOnly     = regexp.MustCompile(`^[0-9]+$`)
	addressCharset = regexp.MustCompile(`^[A-Za-z0-9 .,-]*$`)
)

// fieldLabels are the human labels used in name rejection reasons.
var fieldLabels = map[string]string{
	types.FieldFirstName: "First name",
	types.FieldLastName:  "Last name",
}

// Email validates an address and returns it lowercased.
func Email(s string) (string, error) {
	email := strings.ToLower(s)
	fail := func(reason string) (string, error) {
		return "", types.NewValidationError(types.FieldEmail, reason)
	}

	if strings.Count(email, "@") != 1 {
		return fail(ReasonEmailAtCount)
	}
	at := strings.IndexByte(email, '@')
	local, domain := email[:at], email[at+1:]

	if !strings.Contains(domain, ".") {
		return fail(ReasonEmailDomainDot)
	}
	if !emailCharset.MatchString(email) {
		return fail(ReasonEmailCharset)
	}
	if strings.ContainsAny(email[:1], "@.-_") || strings.ContainsAny(email[len(email)-1:], "@.") {
		return fail(ReasonEmailEdges)
	}
	if tld := email[strings.LastIndexByte(email, '.')+1:]; len(tld) < MinTLDLen {
		return fail(ReasonEmailTLD)
	}
	if len(local) > MaxEmailLocalLen {
		return fail(ReasonEmailLocalLen)
	}
	if len(domain) > MaxEmailDomainLen {
		return fail(ReasonEmailDomainLen)
	}
	return email, nil
}

// NameLengthReason is the length rejection reason for the given name field.
func NameLengthReason(field string) string {
	return fmt.Sprintf("%s length must be between %d-%d characters", label(field), MinNameLen, MaxNameLen)
}

// NameCharsetReason is the character-set rejection reason for the given
// name field.
func NameCharsetReason(field string) string {
	return label(field) + " must only contain letters, hyphens (-), spaces and apostrophes (')"
}

// Name trims and title-cases a first or last name. field is the document key
// (first_name or last_name) and selects the label used in rejection reasons.
func Name(s, field string) (string, error) {
	trimmed := strings.TrimSpace(s)

	if n := utf8.RuneCountInString(trimmed); n < MinNameLen || n > MaxNameLen {
		return "", types.NewValidationError(field, NameLengthReason(field))
	}
	if !nameCharset.MatchString(trimmed) {
		return "", types.NewValidationError(field, NameCharsetReason(field))
	}
	return titleCase(trimmed), nil
}

// Phone checks that s is exactly ten decimal digits. It does not reformat.
func Phone(s string) (string, error) {
	if !digitsOnly.MatchString(s) {
		return "", types.NewValidationError(types.FieldPhoneNumber, ReasonPhoneDigits)
	}
	if len(s) != PhoneLen {
		return "", types.NewValidationError(types.FieldPhoneNumber, ReasonPhoneLen)
	}
	return s, nil
}

// Address trims s, checks its length and character set, and collapses every
// run of a repeated non-alphanumeric character to a single occurrence.
func Address(s string) (string, error) {
	trimmed := strings.TrimSpace(s)

	if n := utf8.RuneCountInString(trimmed); n < MinAddressLen || n > MaxAddressLen {
		return "", types.NewValidationError(types.FieldAddress, ReasonAddressLen)
	}
	if !addressCharset.MatchString(trimmed) {
		return "", types.NewValidationError(types.FieldAddress, ReasonAddressCharset)
	}
	return collapseRepeats(trimmed), nil
}

// Field normalizes value according to the document key it is written to.
// Returns types.ErrUnknownField for keys outside the contact schema.
func Field(key, value string) (string, error) {
	switch key {
	case types.FieldEmail:
		return Email(value)
	case types.FieldFirstName, types.FieldLastName:
		return Name(value, key)
	case types.FieldPhoneNumber:
		return Phone(value)
	case types.FieldAddress:
		return Address(value)
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownField, key)
	}
}

// titleCase upper-cases the first character of each whitespace-separated
// word and lower-cases the rest. Hyphens and apostrophes do not start a new
// word, so "mary-jane" becomes "Mary-jane". Spacing is kept as is.
func titleCase(s string) string {
	upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	flush := func(end int) {
		word := s[start:end]
		_, n := utf8.DecodeRuneInString(word)
		b.WriteString(upper.String(word[:n]))
		b.WriteString(lower.String(word[n:]))
	}
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				flush(i)
				start = -1
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		flush(len(s))
	}
	return b.String()
}

// collapseRepeats drops every non-alphanumeric byte equal to the byte before
// it. Input is ASCII by the time it gets here.
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i > 0 && c == s[i-1] && !isAlnum(c) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
