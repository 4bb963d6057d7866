package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
)

func ParseQueryUint(r *http.Request, key string, defaultVal uint64) (uint64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a non-negative number").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
