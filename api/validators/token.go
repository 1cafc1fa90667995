package validators

import (
	"strings"

	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
)

// ExtractBearerToken pulls the raw JWT out of an Authorization header.
func ExtractBearerToken(header string) (string, error) {
	value := strings.TrimSpace(header)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the bearer scheme")
	}
	token := strings.TrimSpace(value[7:])
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}
	return token, nil
}
