package rollover_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/rollover"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
	"github.com/mkelsey/dreamcoach/internal/testutil"
)

// Wednesday of ISO week 2, 2026.
var week2Wed = time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

// Tuesday of ISO week 3, 2026.
var week3Tue = time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)

type fixture struct {
	engine    *rollover.Engine
	weeks     *testutil.MemWeekStore
	past      *testutil.MemPastWeeksStore
	templates *testutil.MemTemplateSource
	userID    primitive.ObjectID
	now       time.Time
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		weeks:     testutil.NewMemWeekStore(),
		past:      testutil.NewMemPastWeeksStore(),
		templates: testutil.NewMemTemplateSource(),
		userID:    primitive.NewObjectID(),
		now:       now,
	}
	f.engine = rollover.New(f.weeks, f.past, f.templates, zap.NewNop(),
		rollover.WithNow(func() time.Time { return f.now }))
	return f
}

func tpl(id, title, recurrence string, active bool) models.WeeklyGoalTemplate {
	return models.WeeklyGoalTemplate{ID: id, Title: title, Recurrence: recurrence, Active: active}
}

func TestEnsureCurrentWeek_NoTemplates(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("EnsureCurrentWeek failed: %v", err)
	}

	if len(doc.Goals) != 0 {
		t.Errorf("expected empty goal list, got %d", len(doc.Goals))
	}
	year, week := week2Wed.ISOWeek()
	if doc.Year != year || doc.WeekNumber != week {
		t.Errorf("week id: got %d-W%d, want %d-W%d", doc.Year, doc.WeekNumber, year, week)
	}
	if wd := doc.WeekStartDate.Weekday(); wd != time.Monday {
		t.Errorf("week start: got %v, want Monday", wd)
	}
	if wd := doc.WeekEndDate.Weekday(); wd != time.Sunday {
		t.Errorf("week end: got %v, want Sunday", wd)
	}

	// No archive entry appears when there was nothing to archive.
	archive, _ := f.past.GetByUser(ctx, f.userID)
	if len(archive.Weeks) != 0 {
		t.Errorf("expected empty archive, got %d entries", len(archive.Weeks))
	}
}

func TestEnsureCurrentWeek_TemplateInstantiation(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.templates.SetTemplates(f.userID, []models.WeeklyGoalTemplate{
		tpl("tpl-a", "Run three times", models.RecurrenceWeekly, true),
		tpl("tpl-b", "Book dentist", models.RecurrenceOnce, true),
		tpl("tpl-c", "Old habit", models.RecurrenceWeekly, false),
	})

	doc, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("EnsureCurrentWeek failed: %v", err)
	}

	got := map[string]bool{}
	for _, g := range doc.Goals {
		got[g.TemplateID] = true
	}
	if len(doc.Goals) != 2 || !got["tpl-a"] || !got["tpl-b"] {
		t.Errorf("instantiated templates: got %v, want exactly {tpl-a, tpl-b}", got)
	}
}

func TestEnsureCurrentWeek_CurrentIsStable(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.WeekNumber != first.WeekNumber || second.Year != first.Year {
		t.Error("current week replaced without being stale")
	}

	state, err := f.engine.Evaluate(ctx, f.userID)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if state != rollover.StateCurrent {
		t.Errorf("state: got %v, want current", state)
	}
}

func TestRollover_ArchivesStaleWeekMostRecentFirst(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.templates.SetTemplates(f.userID, []models.WeeklyGoalTemplate{
		tpl("tpl-a", "Run three times", models.RecurrenceWeekly, true),
	})

	w1, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 1 failed: %v", err)
	}

	// Complete the weekly goal, then cross into week 3.
	w1.Goals[0].Completed = true
	if err := f.weeks.Upsert(ctx, w1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	f.now = week3Tue

	state, _ := f.engine.Evaluate(ctx, f.userID)
	if state != rollover.StateStale {
		t.Fatalf("state before rollover: got %v, want stale", state)
	}

	w2, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 2 failed: %v", err)
	}
	if w2.WeekNumber == w1.WeekNumber {
		t.Fatal("expected a new week number after rollover")
	}

	archive, _ := f.past.GetByUser(ctx, f.userID)
	if len(archive.Weeks) != 1 {
		t.Fatalf("archive entries: got %d, want 1", len(archive.Weeks))
	}
	sum := archive.Weeks[0]
	if sum.GoalsCompleted != 1 || sum.GoalsTotal != 1 || sum.CompletionRate != 100 {
		t.Errorf("summary: got %+v", sum)
	}
	if sum.WeekNumber != w1.WeekNumber {
		t.Errorf("summary week: got %d, want %d", sum.WeekNumber, w1.WeekNumber)
	}

	// Roll once more; newest summary must sit at the head.
	f.now = week3Tue.AddDate(0, 0, 7)
	if _, err := f.engine.EnsureCurrentWeek(ctx, f.userID); err != nil {
		t.Fatalf("week 3 failed: %v", err)
	}
	archive, _ = f.past.GetByUser(ctx, f.userID)
	if len(archive.Weeks) != 2 {
		t.Fatalf("archive entries: got %d, want 2", len(archive.Weeks))
	}
	if archive.Weeks[0].WeekNumber != w2.WeekNumber {
		t.Errorf("head of archive: got week %d, want %d", archive.Weeks[0].WeekNumber, w2.WeekNumber)
	}
	if archive.Weeks[1].WeekNumber != w1.WeekNumber {
		t.Errorf("tail of archive: got week %d, want %d", archive.Weeks[1].WeekNumber, w1.WeekNumber)
	}
}

func TestRollover_CompletedOnceNeverReinstantiated(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.templates.SetTemplates(f.userID, []models.WeeklyGoalTemplate{
		tpl("tpl-once", "Book dentist", models.RecurrenceOnce, true),
	})

	w1, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 1 failed: %v", err)
	}
	w1.Goals[0].Completed = true
	if err := f.weeks.Upsert(ctx, w1); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Next week: the completed once goal must not come back.
	f.now = week3Tue
	w2, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 2 failed: %v", err)
	}
	if len(w2.Goals) != 0 {
		t.Fatalf("expected no goals in week 2, got %d", len(w2.Goals))
	}

	// Two weeks later it must still stay gone, even though the carrying
	// week has long been archived.
	f.now = week3Tue.AddDate(0, 0, 14)
	w4, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 4 failed: %v", err)
	}
	if len(w4.Goals) != 0 {
		t.Errorf("completed once goal re-instantiated after archival")
	}
}

func TestRollover_IncompleteOnceCarriesOver(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.templates.SetTemplates(f.userID, []models.WeeklyGoalTemplate{
		tpl("tpl-once", "Book dentist", models.RecurrenceOnce, true),
	})

	w1, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 1 failed: %v", err)
	}
	originalID := w1.Goals[0].ID

	f.now = week3Tue
	w2, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 2 failed: %v", err)
	}
	if len(w2.Goals) != 1 {
		t.Fatalf("expected carried goal, got %d goals", len(w2.Goals))
	}
	if w2.Goals[0].ID != originalID {
		t.Error("carried once goal lost its instance identity")
	}
	if w2.Goals[0].Completed {
		t.Error("carried goal must stay incomplete")
	}
}

func TestRollover_OnceWindowElapsed(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := week2Wed.AddDate(0, 0, 2) // inside week 2
	f.templates.SetTemplates(f.userID, []models.WeeklyGoalTemplate{
		{ID: "tpl-once", Title: "Submit application", Recurrence: models.RecurrenceOnce, Active: true, TargetDate: &target},
	})

	if _, err := f.engine.EnsureCurrentWeek(ctx, f.userID); err != nil {
		t.Fatalf("week 1 failed: %v", err)
	}

	// By week 3 the target date lies before the new week's start; the goal
	// is dropped rather than carried.
	f.now = week3Tue
	w2, err := f.engine.EnsureCurrentWeek(ctx, f.userID)
	if err != nil {
		t.Fatalf("week 2 failed: %v", err)
	}
	if len(w2.Goals) != 0 {
		t.Errorf("expected elapsed once goal to be dropped, got %d goals", len(w2.Goals))
	}
}

func TestRollover_EmptyWeekCompletionRateZero(t *testing.T) {
	f := newFixture(t, week2Wed)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := f.engine.EnsureCurrentWeek(ctx, f.userID); err != nil {
		t.Fatalf("week 1 failed: %v", err)
	}
	f.now = week3Tue
	if _, err := f.engine.EnsureCurrentWeek(ctx, f.userID); err != nil {
		t.Fatalf("week 2 failed: %v", err)
	}

	archive, _ := f.past.GetByUser(ctx, f.userID)
	if len(archive.Weeks) != 1 {
		t.Fatalf("archive entries: got %d, want 1", len(archive.Weeks))
	}
	if got := archive.Weeks[0].CompletionRate; got != 0 {
		t.Errorf("completion rate of empty week: got %d, want 0", got)
	}
}
