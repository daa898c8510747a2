package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/service"
	"github.com/MKhiriev/card-privacy/models"
)

// ---- Mock: PrivacyService ----

type mockPrivacySvc struct {
	getFn       func(ctx context.Context, identifier string) (*models.PrivacySettings, error)
	createFn    func(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	updateFn    func(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	deleteFn    func(ctx context.Context, identifier string) error
	findFn      func(ctx context.Context, identifier string) ([]models.ScanMatch, error)
	reprocessFn func(ctx context.Context, identifier string) (models.ReprocessReport, error)
	actionsFn   func(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error)
}

func (m *mockPrivacySvc) GetSettings(ctx context.Context, identifier string) (*models.PrivacySettings, error) {
	if m.getFn != nil {
		return m.getFn(ctx, identifier)
	}
	return nil, service.ErrSettingsNotFound
}

func (m *mockPrivacySvc) CreateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	if m.createFn != nil {
		return m.createFn(ctx, identifier, values)
	}
	return &models.PrivacySettings{Identifier: identifier}, nil
}

func (m *mockPrivacySvc) UpdateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, identifier, values)
	}
	return &models.PrivacySettings{Identifier: identifier}, nil
}

func (m *mockPrivacySvc) DeleteSettings(ctx context.Context, identifier string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, identifier)
	}
	return nil
}

func (m *mockPrivacySvc) FindCards(ctx context.Context, identifier string) ([]models.ScanMatch, error) {
	if m.findFn != nil {
		return m.findFn(ctx, identifier)
	}
	return nil, nil
}

func (m *mockPrivacySvc) Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error) {
	if m.reprocessFn != nil {
		return m.reprocessFn(ctx, identifier)
	}
	return models.ReprocessReport{Identifier: identifier}, nil
}

func (m *mockPrivacySvc) Actions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	if m.actionsFn != nil {
		return m.actionsFn(ctx, identifier, limit)
	}
	return nil, nil
}

// ---- Mock: CardService ----

type mockCardSvc struct {
	uploadFn func(ctx context.Context, collectionPath, href string, body []byte) (*card.Item, error)
	getFn    func(ctx context.Context, collectionPath, href string) (*card.Item, error)
}

func (m *mockCardSvc) UploadCard(ctx context.Context, collectionPath, href string, body []byte) (*card.Item, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, collectionPath, href, body)
	}
	return card.Parse(body)
}

func (m *mockCardSvc) GetCard(ctx context.Context, collectionPath, href string) (*card.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collectionPath, href)
	}
	return nil, nil
}

// ---- Mock: AppInfoService ----

type mockAppInfoSvc struct {
	version string
}

func (m *mockAppInfoSvc) GetAppVersion(_ context.Context) string {
	return m.version
}

// ---- Helpers ----

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "card-privacy",
	TokenDuration: time.Hour,
}

func newTestHandler(privacy service.PrivacyService, cards service.CardService) *Handler {
	if privacy == nil {
		privacy = &mockPrivacySvc{}
	}
	if cards == nil {
		cards = &mockCardSvc{}
	}
	return NewHandler(&service.Services{
		AuthService:    service.NewAuthService(testAppConfig, logger.Nop()),
		PrivacyService: privacy,
		CardService:    cards,
		AppInfoService: &mockAppInfoSvc{version: "test-version"},
	}, nil, logger.Nop())
}

// bearer mints a token for identifier signed with the test key.
func bearer(t *testing.T, identifier string) string {
	t.Helper()
	token, err := service.NewAuthService(testAppConfig, logger.Nop()).CreateToken(context.Background(), identifier)
	require.NoError(t, err)
	return "Bearer " + token.String()
}

func authorize(t *testing.T, r *http.Request, identifier string) *http.Request {
	t.Helper()
	r.Header.Set("Authorization", bearer(t, identifier))
	return r
}
