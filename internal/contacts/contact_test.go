package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

func TestNewContact(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		first     string
		last      string
		phone     string
		address   string
		want      types.Contact
		wantField string
	}{
		{
			name:    "full record normalized",
			email:   "Example@Gmail.com",
			first:   "john",
			last:    "doe",
			phone:   "0123456789",
			address: "123 main street",
			want: types.Contact{
				Email:       "example@gmail.com",
				FirstName:   "John",
				LastName:    "Doe",
				PhoneNumber: "0123456789",
				Address:     "123 main street",
			},
		},
		{
			name:  "required fields only",
			email: "joseph.lighthead@gmail.com",
			first: "Joseph",
			want:  types.Contact{Email: "joseph.lighthead@gmail.com", FirstName: "Joseph"},
		},
		{
			name:  "blank optional names and address stay empty",
			email: "a@b.co",
			first: "al",
			last:  "    ",
			want:  types.Contact{Email: "a@b.co", FirstName: "Al"},
		},
		{
			name:    "address collapsed",
			email:   "a@b.co",
			first:   "al",
			address: "  321   main,,,street ",
			want:    types.Contact{Email: "a@b.co", FirstName: "Al", Address: "321 main,street"},
		},
		{name: "bad email", email: "examplegmail.com", first: "Joseph", wantField: types.FieldEmail},
		{name: "missing first name", email: "a@b.co", first: "", last: "Campbell", wantField: types.FieldFirstName},
		{name: "short last name", email: "a@b.co", first: "James", last: "p", wantField: types.FieldLastName},
		{name: "bad phone", email: "a@b.co", first: "James", phone: "12345", wantField: types.FieldPhoneNumber},
		{name: "bad address", email: "a@b.co", first: "James", address: "1 st", wantField: types.FieldAddress},
		{name: "email checked first", email: "bad", first: "", wantField: types.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewContact(tt.email, tt.first, tt.last, tt.phone, tt.address)
			if tt.wantField != "" {
				var verr *types.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				assert.Equal(t, types.Contact{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIsFixedPoint(t *testing.T) {
	c, err := NewContact("EX@gmail.com", " mary-jane ", "o'BRIEN", "0123456789", "1.. main  road")
	require.NoError(t, err)
	assert.Equal(t, "Mary-jane", c.FirstName)
	assert.Equal(t, "O'brien", c.LastName)

	again, err := normalize(c)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}
