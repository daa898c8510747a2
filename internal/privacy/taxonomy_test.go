package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/card-privacy/models"
)

func TestDefaultTaxonomy_FlagMapping(t *testing.T) {
	tax := DefaultTaxonomy()

	tests := []struct {
		flag   models.Flag
		fields []string
	}{
		{models.FlagDisallowPhoto, []string{"photo"}},
		{models.FlagDisallowGender, []string{"gender"}},
		{models.FlagDisallowBirthday, []string{"bday", "anniversary"}},
		{models.FlagDisallowAddress, []string{"adr", "label", "geo"}},
		{models.FlagDisallowCompany, []string{"org", "logo"}},
		{models.FlagDisallowTitle, []string{"title", "role"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.flag), func(t *testing.T) {
			assert.ElementsMatch(t, tt.fields, tax.FieldsFor(tt.flag))
		})
	}
}

func TestDefaultTaxonomy_EveryMappedFieldIsValidAndNotPublic(t *testing.T) {
	tax := DefaultTaxonomy()
	for _, f := range models.AllFlags {
		for _, field := range tax.FieldsFor(f) {
			assert.True(t, tax.IsValid(field), field)
			assert.False(t, tax.IsPublic(field), field)
		}
	}
}

func TestTaxonomy_CaseInsensitive(t *testing.T) {
	tax := DefaultTaxonomy()

	assert.True(t, tax.IsPublic("UID"))
	assert.True(t, tax.IsPublic("Email"))
	assert.True(t, tax.IsValid("PHOTO"))
	assert.False(t, tax.IsValid("X-SOCIALPROFILE"))
}

func TestTaxonomy_Removable(t *testing.T) {
	tax := DefaultTaxonomy()

	removable := tax.Removable(models.PrivacyFlags{DisallowCompany: true, DisallowTitle: true})
	assert.Equal(t, map[string]struct{}{
		"org": {}, "logo": {}, "title": {}, "role": {},
	}, removable)

	assert.Empty(t, tax.Removable(models.PrivacyFlags{}))
}

func TestTaxonomy_NewTaxonomyLowercases(t *testing.T) {
	tax := NewTaxonomy(
		map[models.Flag][]string{models.FlagDisallowPhoto: {"PHOTO", "photo"}},
		[]string{"UID"},
		[]string{"PHOTO", "UID"},
	)

	assert.Equal(t, []string{"photo"}, tax.FieldsFor(models.FlagDisallowPhoto))
	assert.True(t, tax.IsPublic("uid"))
	assert.True(t, tax.IsValid("photo"))
}
