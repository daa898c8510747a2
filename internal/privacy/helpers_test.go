package privacy

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/models"
)

// settingsMap is an in-memory SettingsReader.
type settingsMap struct {
	mu       sync.Mutex
	settings map[string]models.PrivacyFlags
	err      error
	lookups  []string
}

func newSettingsMap(settings map[string]models.PrivacyFlags) *settingsMap {
	return &settingsMap{settings: settings}
}

func (m *settingsMap) Get(_ context.Context, identifier string) (*models.PrivacySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, identifier)
	if m.err != nil {
		return nil, m.err
	}
	flags, ok := m.settings[identifier]
	if !ok {
		return nil, nil
	}
	return &models.PrivacySettings{Identifier: identifier, PrivacyFlags: flags}, nil
}

func (m *settingsMap) set(identifier string, flags models.PrivacyFlags) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[identifier] = flags
}

func newTestEnforcer(settings SettingsReader) *Enforcer {
	return NewEnforcer(settings, nil, phone.NewNormalizer("US"), logger.Nop())
}

func vcardText(lines ...string) string {
	return "BEGIN:VCARD\r\nVERSION:4.0\r\n" + strings.Join(lines, "\r\n") + "\r\nEND:VCARD\r\n"
}

func parseItem(t *testing.T, lines ...string) *card.Item {
	t.Helper()
	item, err := card.Parse([]byte(vcardText(lines...)))
	require.NoError(t, err)
	return item
}

func lowerFieldNames(item *card.Item) []string {
	return lowerAll(item.FieldNames())
}

func lowerAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.ToLower(n))
	}
	sort.Strings(out)
	return out
}

// fakeCollection is an in-memory card.Collection.
type fakeCollection struct {
	path      string
	getErr    error
	uploadErr error

	mu      sync.Mutex
	items   []*card.Item
	uploads []string
}

func (c *fakeCollection) Path() string { return c.path }

func (c *fakeCollection) GetAll(context.Context) ([]*card.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := make([]*card.Item, 0, len(c.items))
	for _, it := range c.items {
		text, err := it.Serialize()
		if err != nil {
			return nil, err
		}
		cp, err := card.Parse(text)
		if err != nil {
			return nil, err
		}
		cp.Href = it.Href
		cp.CollectionPath = c.path
		out = append(out, cp)
	}
	return out, nil
}

func (c *fakeCollection) Get(ctx context.Context, href string) (*card.Item, error) {
	items, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Href == href {
			return it, nil
		}
	}
	return nil, errors.New("no such item")
}

func (c *fakeCollection) Upload(_ context.Context, href string, item *card.Item) (*card.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uploadErr != nil {
		return nil, c.uploadErr
	}
	c.uploads = append(c.uploads, href)
	item.Href = href
	for i, it := range c.items {
		if it.Href == href {
			c.items[i] = item
			return item, nil
		}
	}
	c.items = append(c.items, item)
	return item, nil
}

func (c *fakeCollection) stored(href string) *card.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.Href == href {
			return it
		}
	}
	return nil
}

// fakeStorage is an in-memory card.Storage.
type fakeStorage struct {
	collections map[string]*fakeCollection
	discoverErr error
}

func newFakeStorage(collections ...*fakeCollection) *fakeStorage {
	s := &fakeStorage{collections: make(map[string]*fakeCollection)}
	for _, c := range collections {
		s.collections[c.path] = c
	}
	return s
}

func (s *fakeStorage) Discover(_ context.Context, path string) ([]card.Collection, error) {
	if s.discoverErr != nil {
		return nil, s.discoverErr
	}
	path = strings.Trim(path, "/")
	if path != "" {
		c, ok := s.collections[path]
		if !ok {
			return []card.Collection{}, nil
		}
		return []card.Collection{c}, nil
	}

	keys := make([]string, 0, len(s.collections))
	for k := range s.collections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]card.Collection, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.collections[k])
	}
	return out, nil
}

func collectionWith(t *testing.T, path string, cards map[string][]string) *fakeCollection {
	t.Helper()
	c := &fakeCollection{path: path}
	hrefs := make([]string, 0, len(cards))
	for href := range cards {
		hrefs = append(hrefs, href)
	}
	sort.Strings(hrefs)
	for _, href := range hrefs {
		item := parseItem(t, cards[href]...)
		item.Href = href
		item.CollectionPath = path
		c.items = append(c.items, item)
	}
	return c
}
