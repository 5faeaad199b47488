package models

import (
	"strings"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// requireAll returns a validation error carrying msg when any value is empty after trimming.
func requireAll(msg string, values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return apperr.Validation("%s", msg)
		}
	}
	return nil
}

// normalizeList trims entries, drops blanks and never returns nil so records encode as [].
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
