package adapter

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
	"github.com/MKhiriev/card-privacy/models"
)

type httpPrivacyClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPPrivacyClient constructs an HTTP implementation of [PrivacyClient].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying client with the request timeout.
func NewHTTPPrivacyClient(cfg config.ClientAdapter, logger *logger.Logger) (PrivacyClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpPrivacyClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpPrivacyClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpPrivacyClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpPrivacyClient) Version(ctx context.Context) (string, error) {
	var out struct {
		Version string `json:"version"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return out.Version, nil
}

func (h *httpPrivacyClient) GetSettings(ctx context.Context, identifier string) (models.PrivacySettings, error) {
	var settings models.PrivacySettings

	resp, err := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		SetResult(&settings).
		Get("/privacy/settings/{identifier}")
	if err != nil {
		return models.PrivacySettings{}, fmt.Errorf("get settings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PrivacySettings{}, err
	}

	return settings, nil
}

func (h *httpPrivacyClient) CreateSettings(ctx context.Context, identifier string, values map[string]bool) error {
	if values == nil {
		values = map[string]bool{}
	}

	resp, err := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		SetHeader("Content-Type", "application/json").
		SetBody(values).
		Post("/privacy/settings/{identifier}")
	if err != nil {
		return fmt.Errorf("create settings request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpPrivacyClient) UpdateSettings(ctx context.Context, identifier string, values map[string]bool) error {
	resp, err := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		SetHeader("Content-Type", "application/json").
		SetBody(values).
		Put("/privacy/settings/{identifier}")
	if err != nil {
		return fmt.Errorf("update settings request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpPrivacyClient) DeleteSettings(ctx context.Context, identifier string) error {
	resp, err := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		Delete("/privacy/settings/{identifier}")
	if err != nil {
		return fmt.Errorf("delete settings request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpPrivacyClient) FindCards(ctx context.Context, identifier string) ([]models.ScanMatch, error) {
	var out struct {
		Matches []models.ScanMatch `json:"matches"`
	}

	resp, err := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		SetResult(&out).
		Get("/privacy/cards/{identifier}")
	if err != nil {
		return nil, fmt.Errorf("find cards request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return out.Matches, nil
}

func (h *httpPrivacyClient) Reprocess(ctx context.Context, identifier string) (ReprocessSummary, error) {
	var summary ReprocessSummary

	resp, err := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		SetResult(&summary).
		Post("/privacy/cards/{identifier}/reprocess")
	if err != nil {
		return ReprocessSummary{}, fmt.Errorf("reprocess request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return ReprocessSummary{}, err
	}

	return summary, nil
}

func (h *httpPrivacyClient) Status(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	var out struct {
		Actions []models.ActionLogEntry `json:"actions"`
	}

	req := h.authorized(ctx).
		SetPathParam("identifier", identifier).
		SetResult(&out)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(limit, 10))
	}

	resp, err := req.Get("/privacy/status/{identifier}")
	if err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return out.Actions, nil
}

// PutCard uploads body with an X-Content-SHA256 header so the server can
// detect a truncated or altered payload.
func (h *httpPrivacyClient) PutCard(ctx context.Context, collectionPath, href string, body []byte) (string, error) {
	var out struct {
		UID string `json:"uid"`
	}

	resp, err := h.authorized(ctx).
		SetHeader("Content-Type", "text/vcard; charset=utf-8").
		SetHeader("X-Content-SHA256", hex.EncodeToString(utils.Hash(body))).
		SetBody(body).
		SetResult(&out).
		Put(cardURL(collectionPath, href))
	if err != nil {
		return "", fmt.Errorf("put card request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return out.UID, nil
}

func (h *httpPrivacyClient) GetCard(ctx context.Context, collectionPath, href string) ([]byte, error) {
	resp, err := h.authorized(ctx).
		SetHeader("Accept", "text/vcard").
		Get(cardURL(collectionPath, href))
	if err != nil {
		return nil, fmt.Errorf("get card request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (h *httpPrivacyClient) authorized(ctx context.Context) *resty.Request {
	token := h.Token()
	if token == "" {
		h.logger.Warn().Msg("sending request without bearer token")
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token)
}

// cardURL escapes every segment of the collection path and the href.
func cardURL(collectionPath, href string) string {
	segments := strings.Split(strings.Trim(collectionPath, "/"), "/")
	segments = append(segments, href)
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/collections/" + strings.Join(segments, "/")
}
