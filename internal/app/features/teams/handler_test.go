package teams_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/teams"
	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
	teamstore "github.com/mkelsey/dreamcoach/internal/app/store/teams"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
	"github.com/mkelsey/dreamcoach/internal/testutil"
)

func newTestHandler(t *testing.T) (*teams.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return teams.NewHandler(db, zap.NewNop()), db
}

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-key-0123456789", "dreamcoach-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

func createMember(t *testing.T, db *mongo.Database, name, email string) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := userstore.New(db).Create(ctx, models.User{FullName: name, Email: email, Role: "member"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createCoachWithTeam(t *testing.T, db *mongo.Database, name, email, teamName string) (models.User, models.Team) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	coach, err := userstore.New(db).Create(ctx, models.User{FullName: name, Email: email, Role: "coach", IsCoach: true})
	if err != nil {
		t.Fatalf("create coach: %v", err)
	}
	team, err := teamstore.New(db).Create(ctx, models.Team{ManagerID: coach.ID, TeamName: teamName})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	return coach, team
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (failed bool, data json.RawMessage) {
	t.Helper()
	var env struct {
		Failed bool            `json:"failed"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parse envelope: %v (body %s)", err, rec.Body.String())
	}
	return env.Failed, env.Data
}

func TestHandleAssign_EstablishesBothSides(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := createMember(t, db, "Pat Member", "pat@test.com")
	coach, team := createCoachWithTeam(t, db, "Casey Coach", "casey@test.com", "Brave Otters")

	body := fmt.Sprintf(`{"user_id":%q,"coach_id":%q}`, member.ID.Hex(), coach.ID.Hex())
	req := testutil.NewAuthenticatedRequest("POST", "/teams/assign", testutil.JSONBody(body), testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if failed, _ := decodeEnvelope(t, rec); failed {
		t.Fatalf("envelope marked failed: %s", rec.Body.String())
	}

	got, err := teamstore.New(db).GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("reload team: %v", err)
	}
	if !got.HasMember(member.ID) {
		t.Error("member missing from roster")
	}
	u, err := userstore.New(db).GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.AssignedCoachID == nil || *u.AssignedCoachID != coach.ID {
		t.Error("user back-reference not set")
	}
}

func TestHandleAssign_MalformedIDRejected(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("POST", "/teams/assign",
		testutil.JSONBody(`{"user_id":"nope","coach_id":"also-nope"}`), testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRoutes_NonAdminCannotAssign(t *testing.T) {
	handler, db := newTestHandler(t)
	member := createMember(t, db, "Pat Member", "pat2@test.com")

	sm := newSessionManager(t)
	router := teams.Routes(handler, sm)

	req := testutil.NewAuthenticatedRequest("POST", "/assign",
		testutil.JSONBody(`{}`), testutil.MemberUser(member.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleUnassign_RepeatIsNoOp(t *testing.T) {
	handler, db := newTestHandler(t)

	member := createMember(t, db, "Pat Member", "pat3@test.com")
	coach, _ := createCoachWithTeam(t, db, "Casey Coach", "casey3@test.com", "Brave Otters")

	assign := fmt.Sprintf(`{"user_id":%q,"coach_id":%q}`, member.ID.Hex(), coach.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, testutil.NewAuthenticatedRequest("POST", "/teams/assign", testutil.JSONBody(assign), testutil.AdminUser()))
	if rec.Code != http.StatusOK {
		t.Fatalf("assign: %d %s", rec.Code, rec.Body.String())
	}

	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		handler.HandleUnassign(rec, testutil.NewAuthenticatedRequest("POST", "/teams/unassign", testutil.JSONBody(assign), testutil.AdminUser()))
		if rec.Code != http.StatusOK {
			t.Fatalf("unassign pass %d: %d %s", i+1, rec.Code, rec.Body.String())
		}
	}
}

func TestHandlePromote_ReturnsNewTeam(t *testing.T) {
	handler, db := newTestHandler(t)
	member := createMember(t, db, "Pat Member", "pat4@test.com")

	body := fmt.Sprintf(`{"user_id":%q,"team_name":"Night Owls"}`, member.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandlePromote(rec, testutil.NewAuthenticatedRequest("POST", "/teams/promote", testutil.JSONBody(body), testutil.AdminUser()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	_, data := decodeEnvelope(t, rec)
	var team models.Team
	if err := json.Unmarshal(data, &team); err != nil {
		t.Fatalf("parse team: %v", err)
	}
	if team.TeamName != "Night Owls" {
		t.Errorf("team name: got %q", team.TeamName)
	}
	if team.ManagerID != member.ID {
		t.Error("team not managed by the promoted user")
	}
}

func TestServeRoster_CoachLimitedToOwn(t *testing.T) {
	handler, db := newTestHandler(t)
	coachA, _ := createCoachWithTeam(t, db, "Coach A", "a@test.com", "Team A")
	coachB, _ := createCoachWithTeam(t, db, "Coach B", "b@test.com", "Team B")

	req := testutil.NewAuthenticatedRequest("GET", "/teams/"+coachB.ID.Hex()+"/roster", nil, testutil.CoachUser(coachA.ID))
	req = testutil.WithChiURLParam(req, "coachID", coachB.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeRoster(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/teams/"+coachA.ID.Hex()+"/roster", nil, testutil.CoachUser(coachA.ID))
	req = testutil.WithChiURLParam(req, "coachID", coachA.ID.Hex())
	rec = httptest.NewRecorder()
	handler.ServeRoster(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("own roster: got %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestHandleUpdateMyTeam_SanitizesInput(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coach, team := createCoachWithTeam(t, db, "Casey Coach", "casey5@test.com", "Brave Otters")

	body := `{"team_name":"<script>alert(1)</script>Dream Chasers","mission":"Help <b>everyone</b> grow"}`
	rec := httptest.NewRecorder()
	handler.HandleUpdateMyTeam(rec, testutil.NewAuthenticatedRequest("POST", "/teams/mine", testutil.JSONBody(body), testutil.CoachUser(coach.ID)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	got, err := teamstore.New(db).GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("reload team: %v", err)
	}
	if got.TeamName != "Dream Chasers" {
		t.Errorf("team name not sanitized: %q", got.TeamName)
	}
	if got.Mission != "Help everyone grow" {
		t.Errorf("mission not sanitized: %q", got.Mission)
	}
}

func TestHandleReconcile_ReportsRepairs(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := createMember(t, db, "Pat Member", "pat6@test.com")
	coach, team := createCoachWithTeam(t, db, "Casey Coach", "casey6@test.com", "Brave Otters")

	// Stage drift: member on roster without a back-reference.
	if err := teamstore.New(db).AddMember(ctx, team.ID, member.ID); err != nil {
		t.Fatalf("stage drift: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("POST", "/teams/"+coach.ID.Hex()+"/reconcile", nil, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "coachID", coach.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	_, data := decodeEnvelope(t, rec)
	var report struct {
		Repointed int `json:"repointed"`
		Enrolled  int `json:"enrolled"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if report.Repointed != 1 {
		t.Errorf("repointed: got %d, want 1", report.Repointed)
	}

	u, err := userstore.New(db).GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.AssignedCoachID == nil || *u.AssignedCoachID != coach.ID {
		t.Error("reconcile did not repair the back-reference")
	}
}
