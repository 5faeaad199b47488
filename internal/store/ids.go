package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// ParseID decodes a hex ObjectID. Malformed ids cannot name a record, so
// they are reported as apperr.ErrNotFound.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return id, nil
}

// IsID reports whether s is a well-formed ObjectID.
func IsID(s string) bool {
	return primitive.IsValidObjectID(strings.TrimSpace(s))
}
