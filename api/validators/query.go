package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
)

// ParseUUIDParam reads a chi route parameter and rejects values that are not
// well formed UUIDs before they reach a repository query.
func ParseUUIDParam(r *http.Request, name string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "path parameter is required").WithDetails(map[string]any{"field": name})
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a uuid").WithDetails(map[string]any{"field": name})
	}
	return parsed.String(), nil
}

// ParseStatusQuery reads an optional ?status= filter. An absent or blank value
// returns nil so callers list every status.
func ParseStatusQuery(r *http.Request) (*enums.EstimateStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseEstimateStatus(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown estimate status").WithDetails(map[string]any{"field": "status", "value": raw})
	}
	return &status, nil
}

// ParseCategoryQuery reads the optional ?category= filter on catalog listings.
func ParseCategoryQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("category"))
}
