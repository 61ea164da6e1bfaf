package response

import (
	"errors"
	"net/http"

	"github.com/admin/astrografia/internal/domain"
)

// Status HTTP-статус для ошибки usecase
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
