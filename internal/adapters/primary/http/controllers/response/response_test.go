package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/admin/astrografia/internal/domain"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: date is required", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.WrapBusinessError(domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
