package privacy

import (
	"strings"

	"github.com/samber/lo"

	"github.com/MKhiriev/card-privacy/models"
)

// Taxonomy maps privacy flags to the card properties they control. Names
// are compared in lower case. A Taxonomy is immutable once built.
type Taxonomy struct {
	flagFields map[models.Flag][]string
	public     map[string]struct{}
	valid      map[string]struct{}
}

var (
	defaultFlagFields = map[models.Flag][]string{
		models.FlagDisallowPhoto:    {"photo"},
		models.FlagDisallowGender:   {"gender"},
		models.FlagDisallowBirthday: {"bday", "anniversary"},
		models.FlagDisallowAddress:  {"adr", "label", "geo"},
		models.FlagDisallowCompany:  {"org", "logo"},
		models.FlagDisallowTitle:    {"title", "role"},
	}

	defaultPublicFields = []string{
		"version", "prodid", "uid", "rev", "kind", "fn", "n", "email", "tel",
	}

	// RFC 6350 properties plus the vCard 3.0 ones it dropped.
	defaultValidFields = []string{
		"source", "kind", "xml", "fn", "n", "nickname", "photo", "bday",
		"anniversary", "gender", "adr", "label", "tel", "email", "impp",
		"lang", "tz", "geo", "title", "role", "logo", "org", "member",
		"related", "categories", "note", "prodid", "rev", "sound", "uid",
		"clientpidmap", "url", "version", "key", "fburl", "caladruri",
		"caluri", "name", "profile", "mailer", "class", "agent", "sort-string",
	}
)

// DefaultTaxonomy returns the vCard taxonomy used in production.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(defaultFlagFields, defaultPublicFields, defaultValidFields)
}

// NewTaxonomy builds a taxonomy from explicit data.
func NewTaxonomy(flagFields map[models.Flag][]string, public, valid []string) *Taxonomy {
	t := &Taxonomy{
		flagFields: make(map[models.Flag][]string, len(flagFields)),
		public:     lowerSet(public),
		valid:      lowerSet(valid),
	}
	for f, fields := range flagFields {
		t.flagFields[f] = lo.Uniq(lo.Map(fields, func(s string, _ int) string { return strings.ToLower(s) }))
	}
	return t
}

// FieldsFor returns the properties controlled by flag f.
func (t *Taxonomy) FieldsFor(f models.Flag) []string {
	return append([]string(nil), t.flagFields[f]...)
}

// Removable returns the union of the properties of every flag set in flags.
func (t *Taxonomy) Removable(flags models.PrivacyFlags) map[string]struct{} {
	removable := make(map[string]struct{})
	for _, f := range flags.Enabled() {
		for _, field := range t.flagFields[f] {
			removable[field] = struct{}{}
		}
	}
	return removable
}

// IsPublic reports whether name can never be removed.
func (t *Taxonomy) IsPublic(name string) bool {
	_, ok := t.public[strings.ToLower(name)]
	return ok
}

// IsValid reports whether name is a recognised property.
func (t *Taxonomy) IsValid(name string) bool {
	_, ok := t.valid[strings.ToLower(name)]
	return ok
}

func lowerSet(names []string) map[string]struct{} {
	return lo.SliceToMap(names, func(s string) (string, struct{}) {
		return strings.ToLower(s), struct{}{}
	})
}
