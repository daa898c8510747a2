package card

import (
	"strings"
	"testing"

	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceCard = "BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"UID:alice-1\r\n" +
	"FN:Alice Example\r\n" +
	"EMAIL:alice@example.com\r\n" +
	"EMAIL:alice@work.example.com\r\n" +
	"TEL:+1 650 253 0000\r\n" +
	"ORG:ACME\r\n" +
	"END:VCARD\r\n"

func TestParse_VCard(t *testing.T) {
	item, err := Parse([]byte(aliceCard))
	require.NoError(t, err)

	assert.True(t, item.IsContact())
	assert.Equal(t, ComponentVCard, item.Component)
	assert.Equal(t, "alice-1", item.UID())
	assert.Equal(t, []string{"alice@example.com", "alice@work.example.com"}, item.Values("email"))
	assert.Equal(t, []string{"+1 650 253 0000"}, item.Values("TEL"))
	assert.True(t, item.HasField("org"))
}

func TestParse_NonContact(t *testing.T) {
	text := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

	item, err := Parse([]byte(text))
	require.NoError(t, err)

	assert.False(t, item.IsContact())
	assert.Equal(t, "VCALENDAR", item.Component)
	assert.Empty(t, item.UID())
	assert.Nil(t, item.FieldNames())

	out, err := item.Serialize()
	require.NoError(t, err)
	assert.Equal(t, text, string(out))
}

func TestParse_Malformed(t *testing.T) {
	for name, text := range map[string]string{
		"empty":      "",
		"no begin":   "VERSION:4.0\r\n",
		"whitespace": "  \r\n \r\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(text))
			assert.ErrorIs(t, err, ErrMalformedItem)
		})
	}
}

func TestItem_DeleteFieldInvalidatesText(t *testing.T) {
	item, err := Parse([]byte(aliceCard))
	require.NoError(t, err)

	before, err := item.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(before), "ORG:ACME")

	for _, key := range item.FieldNames() {
		if strings.EqualFold(key, "org") {
			item.DeleteField(key)
		}
	}

	after, err := item.Serialize()
	require.NoError(t, err)
	assert.NotContains(t, string(after), "ORG")
	assert.Contains(t, string(after), "UID:alice-1")

	reparsed, err := Parse(after)
	require.NoError(t, err)
	assert.False(t, reparsed.HasField("org"))
	assert.Equal(t, "alice-1", reparsed.UID())
}

func TestNewItem_Serialize(t *testing.T) {
	c := vcard.Card{}
	c.SetValue(vcard.FieldVersion, "4.0")
	c.SetValue(vcard.FieldUID, "bob-1")
	c.SetValue(vcard.FieldFormattedName, "Bob")

	item := NewItem(c)
	out, err := item.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(out), "BEGIN:VCARD")
	assert.Contains(t, string(out), "UID:bob-1")
}

func TestItem_SerializeEmpty(t *testing.T) {
	_, err := (&Item{Component: "VCALENDAR"}).Serialize()
	assert.ErrorIs(t, err, ErrNothingToSerialize)
}

func TestSerialize_FillsMissingVersion(t *testing.T) {
	text := "BEGIN:VCARD\r\nFN:Alice\r\nUID:alice-1\r\nEMAIL:alice@x.com\r\nORG:C\r\nEND:VCARD\r\n"

	item, err := Parse([]byte(text))
	require.NoError(t, err)

	out, err := item.Serialize()
	require.NoError(t, err)
	assert.Equal(t, text, string(out), "untouched cards keep their stored text")

	item.DeleteField("ORG")
	out, err = item.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(out), "VERSION:3.0")
	assert.NotContains(t, string(out), "ORG")

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@x.com"}, again.Values("email"))
}
