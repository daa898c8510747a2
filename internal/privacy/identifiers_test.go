package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/models"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []models.Identifier
	}{
		{
			name:  "emails before phones",
			lines: []string{"UID:u", "TEL:+1 650 253 0000", "EMAIL:alice@x.com"},
			want: []models.Identifier{
				{Kind: models.IdentifierEmail, Value: "alice@x.com"},
				{Kind: models.IdentifierPhone, Value: "+16502530000"},
			},
		},
		{
			name:  "national number uses default region",
			lines: []string{"UID:u", "TEL:(650) 253-0000"},
			want:  []models.Identifier{{Kind: models.IdentifierPhone, Value: "+16502530000"}},
		},
		{
			name:  "tel uri",
			lines: []string{"UID:u", "TEL;VALUE=uri:tel:+44-20-7946-0958"},
			want:  []models.Identifier{{Kind: models.IdentifierPhone, Value: "+442079460958"}},
		},
		{
			name:  "unparsable phone kept raw",
			lines: []string{"UID:u", "TEL:ext. 42"},
			want:  []models.Identifier{{Kind: models.IdentifierPhone, Value: "ext. 42"}},
		},
		{
			name:  "duplicates kept",
			lines: []string{"UID:u", "EMAIL;TYPE=work:a@x.com", "EMAIL;TYPE=home:a@x.com"},
			want: []models.Identifier{
				{Kind: models.IdentifierEmail, Value: "a@x.com"},
				{Kind: models.IdentifierEmail, Value: "a@x.com"},
			},
		},
		{
			name:  "empty values skipped",
			lines: []string{"UID:u", "EMAIL:", "TEL:"},
			want:  nil,
		},
		{
			name:  "no identifiers",
			lines: []string{"UID:u", "FN:Nobody"},
			want:  nil,
		},
	}

	e := NewExtractor(phone.NewNormalizer("US"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(parseItem(t, tt.lines...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_NonContact(t *testing.T) {
	item, err := card.Parse([]byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"))
	require.NoError(t, err)

	assert.Nil(t, NewExtractor(nil).Extract(item))
}

func TestExtractor_Region(t *testing.T) {
	e := NewExtractor(phone.NewNormalizer("GB"))
	item := parseItem(t, "UID:u", "TEL:020 7946 0958")

	assert.Equal(t, []string{"+442079460958"}, e.Phones(item))
}
