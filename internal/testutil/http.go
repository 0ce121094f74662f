// internal/testutil/http.go
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestUser represents session data for handler tests.
type TestUser struct {
	ID   string
	Name string
	Role string
}

// AdminUser returns a TestUser with admin role.
func AdminUser() TestUser {
	return TestUser{ID: primitive.NewObjectID().Hex(), Name: "Test Admin", Role: "admin"}
}

// CoachUser returns a TestUser with coach role and the given id.
func CoachUser(id primitive.ObjectID) TestUser {
	return TestUser{ID: id.Hex(), Name: "Test Coach", Role: "coach"}
}

// MemberUser returns a TestUser with member role and the given id.
func MemberUser(id primitive.ObjectID) TestUser {
	return TestUser{ID: id.Hex(), Name: "Test Member", Role: "member"}
}

// NewAuthenticatedRequest creates a request with a session user injected,
// bypassing the cookie middleware.
func NewAuthenticatedRequest(method, target string, body io.Reader, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return auth.WithTestUser(req, &auth.SessionUser{ID: user.ID, Name: user.Name, Role: user.Role})
}

// JSONBody wraps a JSON literal for request construction.
func JSONBody(s string) io.Reader {
	return strings.NewReader(s)
}
