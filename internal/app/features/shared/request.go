// internal/app/features/shared/request.go

// Package shared holds the small request helpers every feature handler uses.
package shared

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

// DecodeJSON decodes a JSON request body into v, classifying malformed
// bodies as validation errors.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	return nil
}

// SessionUserOID returns the signed-in user's ObjectID. Routes behind
// RequireSignedIn always have one; a malformed session still fails closed.
func SessionUserOID(r *http.Request) (primitive.ObjectID, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, apperr.New(apperr.Unauthorized, "sign in required")
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.Unauthorized, "invalid session")
	}
	return oid, nil
}

// PathOID parses a chi URL parameter as an ObjectID.
func PathOID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.Validation, "malformed id")
	}
	return oid, nil
}
