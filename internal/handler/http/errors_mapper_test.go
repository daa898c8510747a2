package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/card-privacy/internal/privacy"
	"github.com/MKhiriev/card-privacy/internal/service"
	"github.com/MKhiriev/card-privacy/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "collection vanished during scan",
			err:  fmt.Errorf("%w: collection alice/contacts: %w", privacy.ErrScanFailed, store.ErrCollectionNotFound),
			want: http.StatusInternalServerError,
		},
		{
			name: "enforcement wraps a missing card",
			err:  fmt.Errorf("%w: %w", store.ErrEnforcementFailed, store.ErrCardNotFound),
			want: http.StatusInternalServerError,
		},
		{
			name: "plain not found",
			err:  fmt.Errorf("reading card: %w", store.ErrCardNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "settings exist",
			err:  store.ErrPrivacySettingsAlreadyExist,
			want: http.StatusConflict,
		},
		{
			name: "validation",
			err:  service.ErrValidationNoIdentifier,
			want: http.StatusBadRequest,
		},
		{
			name: "unmapped",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// map iteration order changes between runs
			for range 50 {
				assert.Equal(t, tt.want, statusFromError(tt.err))
			}
		})
	}
}
