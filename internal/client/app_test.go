package client

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-privacy/internal/adapter"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

// ---- Mock: PrivacyClient ----

type mockPrivacyClient struct {
	token string

	createFn func(identifier string, values map[string]bool) error
	updateFn func(identifier string, values map[string]bool) error
	statusFn func(identifier string, limit uint64) ([]models.ActionLogEntry, error)
	putFn    func(collectionPath, href string, body []byte) (string, error)
	getErr   error
}

func (m *mockPrivacyClient) SetToken(token string) { m.token = token }
func (m *mockPrivacyClient) Token() string         { return m.token }

func (m *mockPrivacyClient) Version(context.Context) (string, error) { return "1.0.0", nil }

func (m *mockPrivacyClient) GetSettings(_ context.Context, identifier string) (models.PrivacySettings, error) {
	if m.getErr != nil {
		return models.PrivacySettings{}, m.getErr
	}
	return models.PrivacySettings{Identifier: identifier, PrivacyFlags: models.PrivacyFlags{DisallowPhoto: true}}, nil
}

func (m *mockPrivacyClient) CreateSettings(_ context.Context, identifier string, values map[string]bool) error {
	if m.createFn != nil {
		return m.createFn(identifier, values)
	}
	return nil
}

func (m *mockPrivacyClient) UpdateSettings(_ context.Context, identifier string, values map[string]bool) error {
	if m.updateFn != nil {
		return m.updateFn(identifier, values)
	}
	return nil
}

func (m *mockPrivacyClient) DeleteSettings(context.Context, string) error { return nil }

func (m *mockPrivacyClient) FindCards(context.Context, string) ([]models.ScanMatch, error) {
	return []models.ScanMatch{{VCardUID: "u1"}}, nil
}

func (m *mockPrivacyClient) Reprocess(context.Context, string) (adapter.ReprocessSummary, error) {
	return adapter.ReprocessSummary{Status: "success", Total: 1, ReprocessedCards: 1, ReprocessedCardUIDs: []string{"u1"}}, nil
}

func (m *mockPrivacyClient) Status(_ context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	if m.statusFn != nil {
		return m.statusFn(identifier, limit)
	}
	return nil, nil
}

func (m *mockPrivacyClient) PutCard(_ context.Context, collectionPath, href string, body []byte) (string, error) {
	if m.putFn != nil {
		return m.putFn(collectionPath, href, body)
	}
	return "", nil
}

func (m *mockPrivacyClient) GetCard(context.Context, string, string) ([]byte, error) {
	return []byte("BEGIN:VCARD\r\nEND:VCARD\r\n"), nil
}

// ---- Mock: TokenIssuer ----

type tokenIssuerFunc func(identifier string) (models.Token, error)

func (f tokenIssuerFunc) CreateToken(_ context.Context, identifier string) (models.Token, error) {
	return f(identifier)
}

func tokenFor(identifier string) (models.Token, error) {
	return models.Token{
		RegisteredClaims: jwt.RegisteredClaims{Subject: identifier},
		SignedString:     "token-for-" + identifier,
		Identifier:       identifier,
	}, nil
}

func newTestApp(c *mockPrivacyClient, fs afero.Fs) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return NewApp(c, tokenIssuerFunc(tokenFor), fs, out, models.NewAppBuildInfo("v1", "", ""), logger.Nop()), out
}

func TestRun_Usage(t *testing.T) {
	app, _ := newTestApp(&mockPrivacyClient{}, nil)

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"get"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"frobnicate", "alice@example.com"}), ErrUnknownCommand)
}

func TestRun_Token(t *testing.T) {
	c := &mockPrivacyClient{}
	app, out := newTestApp(c, nil)

	require.NoError(t, app.Run(context.Background(), []string{"token", "alice@example.com"}))

	assert.Equal(t, "token-for-alice@example.com\n", out.String())
	assert.Empty(t, c.token)
}

func TestRun_TokenError(t *testing.T) {
	out := &bytes.Buffer{}
	app := NewApp(&mockPrivacyClient{}, tokenIssuerFunc(func(string) (models.Token, error) {
		return models.Token{}, errors.New("no key")
	}), afero.NewMemMapFs(), out, models.AppBuildInfo{}, logger.Nop())

	assert.Error(t, app.Run(context.Background(), []string{"get", "alice@example.com"}))
}

func TestRun_Get(t *testing.T) {
	c := &mockPrivacyClient{}
	app, out := newTestApp(c, nil)

	require.NoError(t, app.Run(context.Background(), []string{"get", "alice@example.com"}))

	assert.Equal(t, "token-for-alice@example.com", c.token)
	assert.Contains(t, out.String(), `"disallow_photo": true`)
}

func TestRun_GetError(t *testing.T) {
	app, _ := newTestApp(&mockPrivacyClient{getErr: adapter.ErrNotFound}, nil)

	assert.ErrorIs(t, app.Run(context.Background(), []string{"get", "alice@example.com"}), adapter.ErrNotFound)
}

func TestRun_SetParsesFlags(t *testing.T) {
	var got map[string]bool
	app, out := newTestApp(&mockPrivacyClient{
		createFn: func(_ string, values map[string]bool) error {
			got = values
			return nil
		},
	}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"set", "alice@example.com", "disallow_photo", "disallow_title=false"}))

	assert.Equal(t, map[string]bool{"disallow_photo": true, "disallow_title": false}, got)
	assert.Contains(t, out.String(), `"created"`)
}

func TestRun_UpdateNeedsFlags(t *testing.T) {
	app, _ := newTestApp(&mockPrivacyClient{}, nil)

	assert.ErrorIs(t, app.Run(context.Background(), []string{"update", "alice@example.com"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"update", "alice@example.com", "disallow_photo=maybe"}), ErrInvalidFlagArg)
}

func TestRun_Status(t *testing.T) {
	var gotLimit uint64
	app, out := newTestApp(&mockPrivacyClient{
		statusFn: func(_ string, limit uint64) ([]models.ActionLogEntry, error) {
			gotLimit = limit
			return []models.ActionLogEntry{{ID: "a1", Action: models.ActionReprocessCompleted}}, nil
		},
	}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"status", "alice@example.com", "3"}))
	assert.Equal(t, uint64(3), gotLimit)
	assert.Contains(t, out.String(), "reprocess_completed")

	assert.ErrorIs(t, app.Run(context.Background(), []string{"status", "alice@example.com", "0"}), ErrInvalidLimit)
}

func TestRun_CardsAndReprocess(t *testing.T) {
	app, out := newTestApp(&mockPrivacyClient{}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"cards", "alice@example.com"}))
	require.NoError(t, app.Run(context.Background(), []string{"reprocess", "alice@example.com"}))

	assert.Contains(t, out.String(), `"vcard_uid": "u1"`)
	assert.Contains(t, out.String(), `"reprocessed_cards": 1`)
}

func TestRun_PutReadsFileAndUsesOwnerToken(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cards/carol.vcf", []byte("BEGIN:VCARD\r\nEND:VCARD\r\n"), 0o644))

	var gotCollection, gotHref string
	c := &mockPrivacyClient{
		putFn: func(collectionPath, href string, body []byte) (string, error) {
			gotCollection, gotHref = collectionPath, href
			return "carol-1", nil
		},
	}
	app, out := newTestApp(c, fs)

	require.NoError(t, app.Run(context.Background(), []string{"put", "alice@example.com/contacts/carol.vcf", "/cards/carol.vcf"}))

	assert.Equal(t, "alice@example.com/contacts", gotCollection)
	assert.Equal(t, "carol.vcf", gotHref)
	assert.Equal(t, "token-for-alice@example.com", c.token)
	assert.Contains(t, out.String(), `"carol-1"`)
}

func TestRun_PutErrors(t *testing.T) {
	app, _ := newTestApp(&mockPrivacyClient{}, nil)

	assert.ErrorIs(t, app.Run(context.Background(), []string{"put", "carol.vcf", "x"}), ErrInvalidCardRef)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"put", "alice/contacts/carol.vcf"}), ErrUsage)
	assert.Error(t, app.Run(context.Background(), []string{"put", "alice/contacts/carol.vcf", "/missing.vcf"}))
}

func TestRun_Fetch(t *testing.T) {
	app, out := newTestApp(&mockPrivacyClient{}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"fetch", "alice/contacts/carol.vcf"}))

	assert.Equal(t, "BEGIN:VCARD\r\nEND:VCARD\r\n", out.String())
}

func TestRun_Version(t *testing.T) {
	app, out := newTestApp(&mockPrivacyClient{}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"version"}))

	assert.Contains(t, out.String(), "Build version: v1")
	assert.Contains(t, out.String(), "Server version: 1.0.0")
}

func TestParseFlagArgs(t *testing.T) {
	_, err := parseFlagArgs([]string{"=true"})
	assert.ErrorIs(t, err, ErrInvalidFlagArg)

	values, err := parseFlagArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}
