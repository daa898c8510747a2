package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/models"
)

// ─────────────────────────────────────────────
// Mock: store.PrivacySettingsRepository
// ─────────────────────────────────────────────

type mockSettingsRepository struct {
	createFn func(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	getFn    func(ctx context.Context, identifier string) (*models.PrivacySettings, error)
	updateFn func(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	deleteFn func(ctx context.Context, identifier string) (bool, error)
}

func (m *mockSettingsRepository) Create(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	if m.createFn != nil {
		return m.createFn(ctx, identifier, values)
	}
	return &models.PrivacySettings{Identifier: identifier}, nil
}

func (m *mockSettingsRepository) Get(ctx context.Context, identifier string) (*models.PrivacySettings, error) {
	if m.getFn != nil {
		return m.getFn(ctx, identifier)
	}
	return nil, nil
}

func (m *mockSettingsRepository) Update(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, identifier, values)
	}
	return nil, nil
}

func (m *mockSettingsRepository) Delete(ctx context.Context, identifier string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, identifier)
	}
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: store.ActionRepository
// ─────────────────────────────────────────────

type mockActionRepository struct {
	logFn  func(ctx context.Context, entry models.ActionLogEntry) error
	listFn func(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error)
}

func (m *mockActionRepository) LogAction(ctx context.Context, entry models.ActionLogEntry) error {
	if m.logFn != nil {
		return m.logFn(ctx, entry)
	}
	return nil
}

func (m *mockActionRepository) ListActions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, identifier, limit)
	}
	return []models.ActionLogEntry{}, nil
}

// ─────────────────────────────────────────────
// Mock: scanner, reprocessor, queue
// ─────────────────────────────────────────────

type mockScanner struct {
	scanFn func(ctx context.Context, identifier string) ([]models.ScanMatch, error)
}

func (m *mockScanner) Scan(ctx context.Context, identifier string) ([]models.ScanMatch, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, identifier)
	}
	return []models.ScanMatch{}, nil
}

type mockReprocessor struct {
	reprocessFn func(ctx context.Context, identifier string) (models.ReprocessReport, error)
}

func (m *mockReprocessor) Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error) {
	if m.reprocessFn != nil {
		return m.reprocessFn(ctx, identifier)
	}
	return models.ReprocessReport{Identifier: identifier}, nil
}

type mockQueue struct {
	mu     sync.Mutex
	queued []string
	err    error
}

func (m *mockQueue) Enqueue(identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.queued = append(m.queued, identifier)
	return nil
}

// ─────────────────────────────────────────────
// Mock: CollectionStore
// ─────────────────────────────────────────────

type mockCollection struct {
	path     string
	getFn    func(ctx context.Context, href string) (*card.Item, error)
	uploadFn func(ctx context.Context, href string, item *card.Item) (*card.Item, error)
}

func (m *mockCollection) Path() string { return m.path }

func (m *mockCollection) GetAll(context.Context) ([]*card.Item, error) { return nil, nil }

func (m *mockCollection) Get(ctx context.Context, href string) (*card.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, href)
	}
	return nil, nil
}

func (m *mockCollection) Upload(ctx context.Context, href string, item *card.Item) (*card.Item, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, href, item)
	}
	item.Href = href
	return item, nil
}

type mockCollectionStore struct {
	discoverFn func(ctx context.Context, path string) ([]card.Collection, error)
	createFn   func(ctx context.Context, path string) (card.Collection, error)
}

func (m *mockCollectionStore) Discover(ctx context.Context, path string) ([]card.Collection, error) {
	if m.discoverFn != nil {
		return m.discoverFn(ctx, path)
	}
	return []card.Collection{}, nil
}

func (m *mockCollectionStore) CreateCollection(ctx context.Context, path string) (card.Collection, error) {
	if m.createFn != nil {
		return m.createFn(ctx, path)
	}
	return &mockCollection{path: path}, nil
}
