// Package card wraps a stored contact document (a vCard) together with the
// location it was loaded from, and declares the contracts of the collection
// store that holds such documents.
package card

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emersion/go-vcard"
)

// ComponentVCard is the component name of contact documents.
const ComponentVCard = "VCARD"

// DefaultVersion is filled in when a card is encoded without a VERSION line.
const DefaultVersion = "3.0"

var (
	// ErrMalformedItem is returned when a stored document cannot be parsed.
	ErrMalformedItem = errors.New("malformed item")

	// ErrNothingToSerialize is returned by [Item.Serialize] for an item that
	// carries neither a card nor raw text.
	ErrNothingToSerialize = errors.New("item has nothing to serialize")
)

// Item is a single document of a collection.
//
// Contact items carry a parsed [vcard.Card]; anything else (calendars,
// journals) is kept as raw text only. The serialized form is cached and must
// be invalidated whenever the card's property table changes, which every
// mutating method of Item does.
type Item struct {
	// Href is the file name of the item inside its collection.
	Href string

	// CollectionPath is the owning collection, e.g. "alice/contacts".
	CollectionPath string

	// Component is the outermost BEGIN value, e.g. "VCARD" or "VCALENDAR".
	Component string

	// Card is the parsed property table of a contact item, nil otherwise.
	Card vcard.Card

	text []byte
}

// NewItem wraps an in-memory card.
func NewItem(c vcard.Card) *Item {
	return &Item{Component: ComponentVCard, Card: c}
}

// Parse builds an Item from stored text. Only the first component of the
// text is considered.
func Parse(text []byte) (*Item, error) {
	component, err := detectComponent(text)
	if err != nil {
		return nil, err
	}

	item := &Item{Component: component, text: append([]byte(nil), text...)}
	if component != ComponentVCard {
		return item, nil
	}

	c, err := vcard.NewDecoder(bytes.NewReader(text)).Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedItem, err)
	}
	item.Card = c

	return item, nil
}

func detectComponent(text []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(name, "BEGIN") || value == "" {
			return "", fmt.Errorf("%w: missing BEGIN line", ErrMalformedItem)
		}
		return strings.ToUpper(value), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedItem, err)
	}

	return "", fmt.Errorf("%w: empty document", ErrMalformedItem)
}

// IsContact reports whether the item is a contact document this service
// governs.
func (i *Item) IsContact() bool {
	return i != nil && i.Component == ComponentVCard && i.Card != nil
}

// UID returns the card's UID or "" for non-contact items.
func (i *Item) UID() string {
	values := i.Values(vcard.FieldUID)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// FieldNames returns the property names present on the card as stored
// (case preserved), sorted.
func (i *Item) FieldNames() []string {
	if !i.IsContact() {
		return nil
	}

	names := make([]string, 0, len(i.Card))
	for name := range i.Card {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Values returns every value of the property name, matched
// case-insensitively. Empty values are skipped.
func (i *Item) Values(name string) []string {
	if !i.IsContact() {
		return nil
	}

	var values []string
	for _, key := range i.FieldNames() {
		if !strings.EqualFold(key, name) {
			continue
		}
		for _, field := range i.Card[key] {
			if field != nil && field.Value != "" {
				values = append(values, field.Value)
			}
		}
	}

	return values
}

// HasField reports whether the property name is present, matched
// case-insensitively.
func (i *Item) HasField(name string) bool {
	for _, key := range i.FieldNames() {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

// DeleteField removes the property stored under exactly key, with all its
// values, and invalidates the cached text.
func (i *Item) DeleteField(key string) {
	if !i.IsContact() {
		return
	}
	delete(i.Card, key)
	i.InvalidateText()
}

// InvalidateText drops the cached serialized form.
func (i *Item) InvalidateText() {
	i.text = nil
}

// Serialize returns the document text, encoding the card again when the
// cache was invalidated. A card without VERSION is written as
// [DefaultVersion].
func (i *Item) Serialize() ([]byte, error) {
	if i.text != nil {
		return i.text, nil
	}
	if !i.IsContact() {
		return nil, ErrNothingToSerialize
	}

	if i.Card.Value(vcard.FieldVersion) == "" {
		i.Card.SetValue(vcard.FieldVersion, DefaultVersion)
	}

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(i.Card); err != nil {
		return nil, fmt.Errorf("error encoding vcard: %w", err)
	}
	i.text = buf.Bytes()

	return i.text, nil
}
