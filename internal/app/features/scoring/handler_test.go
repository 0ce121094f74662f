package scoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/scoring"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
	"github.com/mkelsey/dreamcoach/internal/testutil"
)

func TestHandleUpsertScore_MirrorsTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := scoring.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, err := userstore.New(db).Create(ctx, models.User{FullName: "Pat Member", Email: "pat@test.com", Role: "member"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	body := `{"year":2026,"quarter":3,"values":{"health":7,"career":8,"family":9}}`
	rec := httptest.NewRecorder()
	handler.HandleUpsertScore(rec, testutil.NewAuthenticatedRequest("POST", "/scoring", testutil.JSONBody(body), testutil.MemberUser(user.ID)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data models.ScoreDocument `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parse score: %v", err)
	}
	if env.Data.Total != 24 {
		t.Errorf("total: got %d, want 24", env.Data.Total)
	}

	reloaded, err := userstore.New(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Score != 24 {
		t.Errorf("mirrored score: got %d, want 24", reloaded.Score)
	}
}

func TestHandleUpsertScore_ValueOutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := scoring.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	user, err := userstore.New(db).Create(ctx, models.User{FullName: "Pat", Email: "pat2@test.com", Role: "member"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	body := `{"year":2026,"quarter":3,"values":{"health":11}}`
	rec := httptest.NewRecorder()
	handler.HandleUpsertScore(rec, testutil.NewAuthenticatedRequest("POST", "/scoring", testutil.JSONBody(body), testutil.MemberUser(user.ID)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
