package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// requireReason asserts err is a ValidationError for field with the given reason.
func requireReason(t *testing.T, err error, field, reason string) {
	t.Helper()
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
	assert.Equal(t, reason, verr.Reason)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantReason string
	}{
		{name: "plain address", input: "example@gmail.com", want: "example@gmail.com"},
		{name: "lowercased", input: "eXAmPle@gmail.com", want: "example@gmail.com"},
		{name: "hyphen allowed", input: "exam-ple@gmail.com", want: "exam-ple@gmail.com"},
		{name: "plus and underscore allowed", input: "first_last+tag@mail.example.org", want: "first_last+tag@mail.example.org"},
		{name: "missing at", input: "examplegmail.com", wantReason: ReasonEmailAtCount},
		{name: "two ats", input: "example@@gmail.com", wantReason: ReasonEmailAtCount},
		{name: "trailing second at", input: "example@gmail.com@", wantReason: ReasonEmailAtCount},
		{name: "empty", input: "", wantReason: ReasonEmailAtCount},
		{name: "no dot in domain", input: "example@gmailcom", wantReason: ReasonEmailDomainDot},
		{name: "dot only before at", input: "ex.ample@gmailcom", wantReason: ReasonEmailDomainDot},
		{name: "prohibited characters", input: "!#$%())example@gmail.com[]{}|;./`~<>?", wantReason: ReasonEmailCharset},
		{name: "space", input: "exa mple@gmail.com", wantReason: ReasonEmailCharset},
		{name: "leading dot", input: ".example@gmail.com", wantReason: ReasonEmailEdges},
		{name: "leading hyphen", input: "-example@gmail.com", wantReason: ReasonEmailEdges},
		{name: "leading underscore", input: "_example@gmail.com", wantReason: ReasonEmailEdges},
		{name: "leading at", input: "@gmail.com", wantReason: ReasonEmailEdges},
		{name: "trailing dot", input: "example@gmail.com.", wantReason: ReasonEmailEdges},
		{name: "one letter tld", input: "example@gmail.c", wantReason: ReasonEmailTLD},
		{name: "local part at limit", input: strings.Repeat("a", 64) + "@gmail.com", want: strings.Repeat("a", 64) + "@gmail.com"},
		{name: "local part over limit", input: strings.Repeat("a", 65) + "@gmail.com", wantReason: ReasonEmailLocalLen},
		{name: "domain at limit", input: "example@" + strings.Repeat("p", 251) + ".com", want: "example@" + strings.Repeat("p", 251) + ".com"},
		{name: "domain over limit", input: "example@" + strings.Repeat("p", 252) + ".com", wantReason: ReasonEmailDomainLen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Email(tt.input)
			if tt.wantReason != "" {
				requireReason(t, err, types.FieldEmail, tt.wantReason)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailIdempotent(t *testing.T) {
	for _, in := range []string{"Example@Gmail.COM", "a.b-c_d+e@x.io"} {
		once, err := Email(in)
		require.NoError(t, err)
		twice, err := Email(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		field      string
		want       string
		wantReason string
	}{
		{name: "titled", input: "james", field: types.FieldFirstName, want: "James"},
		{name: "stripped", input: "    James          ", field: types.FieldFirstName, want: "James"},
		{name: "two words", input: "john peTer", field: types.FieldFirstName, want: "John Peter"},
		{name: "mixed case last name", input: "sUntHon", field: types.FieldLastName, want: "Sunthon"},
		{name: "hyphenated", input: "mary-jane", field: types.FieldFirstName, want: "Mary-jane"},
		{name: "apostrophe", input: "o'brien", field: types.FieldLastName, want: "O'brien"},
		{name: "upper apostrophe", input: "O'BRIEN", field: types.FieldLastName, want: "O'brien"},
		{name: "words split on whitespace only", input: "jean-claude van damme", field: types.FieldFirstName, want: "Jean-claude Van Damme"},
		{name: "inner spacing kept", input: "de  la cruz", field: types.FieldLastName, want: "De  La Cruz"},
		{name: "leading apostrophe", input: "'tis mary", field: types.FieldFirstName, want: "'tis Mary"},
		{name: "two characters", input: "al", field: types.FieldFirstName, want: "Al"},
		{name: "forty characters", input: strings.Repeat("a", 40), field: types.FieldLastName, want: "A" + strings.Repeat("a", 39)},
		{name: "empty first name", input: "", field: types.FieldFirstName, wantReason: "First name length must be between 2-40 characters"},
		{name: "single letter last name", input: "p", field: types.FieldLastName, wantReason: "Last name length must be between 2-40 characters"},
		{name: "whitespace only", input: "     ", field: types.FieldFirstName, wantReason: NameLengthReason(types.FieldFirstName)},
		{name: "too long", input: "qwertyuiopasdfghjklzxcvbnmqwertyuiopasdfghjklzxcvbnm", field: types.FieldLastName, wantReason: NameLengthReason(types.FieldLastName)},
		{name: "digits", input: "James67890", field: types.FieldFirstName, wantReason: "First name must only contain letters, hyphens (-), spaces and apostrophes (')"},
		{name: "punctuation", input: "J@mes!", field: types.FieldLastName, wantReason: NameCharsetReason(types.FieldLastName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.input, tt.field)
			if tt.wantReason != "" {
				requireReason(t, err, tt.field, tt.wantReason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{"james", "  JOHN peter ", "anne-marie", "de la cruz", "Sunthon", "o'brien", "O'BRIEN", "jean-claude van damme"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once, err := Name(in, types.FieldFirstName)
			require.NoError(t, err)
			twice, err := Name(once, types.FieldFirstName)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantReason string
	}{
		{name: "ten digits", input: "0123456789"},
		{name: "nine digits", input: "012345678", wantReason: ReasonPhoneLen},
		{name: "eleven digits", input: "01234567890", wantReason: ReasonPhoneLen},
		{name: "letters", input: "01234five6", wantReason: ReasonPhoneDigits},
		{name: "formatted", input: "012-345-6789", wantReason: ReasonPhoneDigits},
		{name: "surrounding space", input: " 0123456789", wantReason: ReasonPhoneDigits},
		{name: "empty", input: "", wantReason: ReasonPhoneDigits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.input)
			if tt.wantReason != "" {
				requireReason(t, err, types.FieldPhoneNumber, tt.wantReason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantReason string
	}{
		{name: "unchanged", input: "123 main street", want: "123 main street"},
		{name: "trimmed", input: "   123 main street   ", want: "123 main street"},
		{name: "space and comma runs", input: "321   main,,,street", want: "321 main,street"},
		{name: "double hyphen and period", input: "12 -- main .. st", want: "12 - main . st"},
		{name: "long period run", input: "1........0 main", want: "1.0 main"},
		{name: "alphanumeric repeats kept", input: "1100 Hill Street", want: "1100 Hill Street"},
		{name: "different specials kept", input: "12, -main. st", want: "12, -main. st"},
		{name: "too short", input: "short", wantReason: ReasonAddressLen},
		{name: "too short after trim", input: "   abc      ", wantReason: ReasonAddressLen},
		{name: "too long", input: strings.Repeat("a", 101), wantReason: ReasonAddressLen},
		{name: "at upper limit", input: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "prohibited character", input: "123 main street #4", wantReason: ReasonAddressCharset},
		{name: "newline", input: "123 main\nstreet", wantReason: ReasonAddressCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Address(tt.input)
			if tt.wantReason != "" {
				requireReason(t, err, types.FieldAddress, tt.wantReason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddressHasNoAdjacentSpecials(t *testing.T) {
	inputs := []string{
		"321   main,,,street",
		"a.,.,..,,--  -- 12 b",
		"Unit 4--5,, 12 ... Elm   Road",
		"----------1 main st",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := Address(in)
			require.NoError(t, err)
			for i := 1; i < len(got); i++ {
				if got[i] == got[i-1] {
					assert.True(t, isAlnum(got[i]), "adjacent duplicate %q in %q", got[i], got)
				}
			}
			again, err := Address(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestField(t *testing.T) {
	got, err := Field(types.FieldEmail, "Joseph.Lighthead@Gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "joseph.lighthead@gmail.com", got)

	got, err = Field(types.FieldLastName, "  lighthead ")
	require.NoError(t, err)
	assert.Equal(t, "Lighthead", got)

	got, err = Field(types.FieldPhoneNumber, "0192837465")
	require.NoError(t, err)
	assert.Equal(t, "0192837465", got)

	got, err = Field(types.FieldAddress, "321  main street")
	require.NoError(t, err)
	assert.Equal(t, "321 main street", got)

	_, err = Field("non_existant_key", "fail")
	assert.ErrorIs(t, err, types.ErrUnknownField)
	assert.NotErrorIs(t, err, types.ErrValidation)
}
