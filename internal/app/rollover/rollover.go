// internal/app/rollover/rollover.go

// Package rollover advances each user's week: when the stored current week
// has elapsed it archives a summary of that week and instantiates a fresh
// goal list from the user's templates.
package rollover

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// State of a user's week document relative to today.
type State int

const (
	// StateCurrent: the stored document covers today's ISO week.
	StateCurrent State = iota
	// StateStale: the stored week's date range has elapsed (or no document
	// exists yet).
	StateStale
	// StateArchiving: transiently, while the stale summary is being written.
	StateArchiving
)

func (s State) String() string {
	switch s {
	case StateCurrent:
		return "current"
	case StateStale:
		return "stale"
	case StateArchiving:
		return "archiving"
	default:
		return "unknown"
	}
}

// WeekStore is the current-week capability the engine needs.
type WeekStore interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.CurrentWeekDocument, error)
	Upsert(ctx context.Context, w models.CurrentWeekDocument) error
}

// PastWeeksStore is the archive capability the engine needs.
type PastWeeksStore interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.PastWeeksDocument, error)
	PrependSummary(ctx context.Context, userID primitive.ObjectID, summary models.WeekSummary, completedOnce []string) error
}

// TemplateSource yields a user's goal templates; the engine consumes them
// without mutating.
type TemplateSource interface {
	Templates(ctx context.Context, userID primitive.ObjectID) ([]models.WeeklyGoalTemplate, error)
}

// Engine runs the CURRENT -> STALE -> ARCHIVING -> CURRENT transition.
type Engine struct {
	weeks     WeekStore
	past      PastWeeksStore
	templates TemplateSource
	log       *zap.Logger
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow overrides the engine clock; tests pin it to fixed instants.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds a rollover Engine.
func New(weeks WeekStore, past PastWeeksStore, templates TemplateSource, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		weeks:     weeks,
		past:      past,
		templates: templates,
		log:       logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate reports where the user's week document stands without mutating
// anything.
func (e *Engine) Evaluate(ctx context.Context, userID primitive.ObjectID) (State, error) {
	doc, err := e.weeks.GetByUser(ctx, userID)
	if err != nil {
		return StateStale, err
	}
	if doc != nil && coversInstant(doc, e.now().UTC()) {
		return StateCurrent, nil
	}
	return StateStale, nil
}

// EnsureCurrentWeek returns the user's active week document, rolling the
// week over first if the stored one is stale. Evaluated on login and by the
// background sweep.
func (e *Engine) EnsureCurrentWeek(ctx context.Context, userID primitive.ObjectID) (models.CurrentWeekDocument, error) {
	now := e.now().UTC()
	doc, err := e.weeks.GetByUser(ctx, userID)
	if err != nil {
		return models.CurrentWeekDocument{}, err
	}
	if doc != nil && coversInstant(doc, now) {
		return *doc, nil
	}

	// STALE -> ARCHIVING. Archiving is skipped, not an error, when there is
	// no stored week to archive.
	var completedOnce []string
	if doc != nil {
		summary := summarize(doc, now)
		completedOnce = completedOnceIDs(doc.Goals)
		if err := e.past.PrependSummary(ctx, userID, summary, completedOnce); err != nil {
			return models.CurrentWeekDocument{}, err
		}
		e.log.Info("week archived",
			zap.String("user_id", userID.Hex()),
			zap.Int("week", summary.WeekNumber),
			zap.Int("year", summary.Year),
			zap.Int("completion_rate", summary.CompletionRate))
	}

	// ARCHIVING -> CURRENT: instantiate the new week from templates.
	archive, err := e.past.GetByUser(ctx, userID)
	if err != nil {
		return models.CurrentWeekDocument{}, err
	}
	tpls, err := e.templates.Templates(ctx, userID)
	if err != nil {
		return models.CurrentWeekDocument{}, err
	}

	start, end := weekBounds(now)
	year, week := now.ISOWeek()
	fresh := models.CurrentWeekDocument{
		UserID:        userID,
		WeekNumber:    week,
		Year:          year,
		WeekStartDate: start,
		WeekEndDate:   end,
		Goals:         instantiate(tpls, doc, archive.CompletedOnce, start, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.weeks.Upsert(ctx, fresh); err != nil {
		return models.CurrentWeekDocument{}, err
	}
	return fresh, nil
}

// instantiate builds the new week's goal list. Active weekly templates are
// always re-instantiated; active once templates only while they have never
// been completed and their target window has not elapsed. An incomplete
// once instance carries over from the stale week with its identity intact.
func instantiate(tpls []models.WeeklyGoalTemplate, stale *models.CurrentWeekDocument, completedOnce []string, weekStart, now time.Time) []models.Goal {
	done := make(map[string]struct{}, len(completedOnce))
	for _, id := range completedOnce {
		done[id] = struct{}{}
	}

	var carried map[string]models.Goal
	if stale != nil {
		carried = make(map[string]models.Goal)
		for _, g := range stale.Goals {
			if g.TemplateID != "" && g.Recurrence == models.RecurrenceOnce && !g.Completed {
				carried[g.TemplateID] = g
			}
		}
	}

	goals := []models.Goal{}
	for _, tpl := range tpls {
		if !tpl.Active {
			continue
		}
		switch tpl.Recurrence {
		case models.RecurrenceWeekly:
			goals = append(goals, newInstance(tpl, now))
		case models.RecurrenceOnce:
			if _, completed := done[tpl.ID]; completed {
				continue
			}
			if tpl.TargetDate != nil && tpl.TargetDate.Before(weekStart) {
				continue
			}
			if prior, ok := carried[tpl.ID]; ok {
				goals = append(goals, prior)
				continue
			}
			goals = append(goals, newInstance(tpl, now))
		}
	}
	return goals
}

func newInstance(tpl models.WeeklyGoalTemplate, now time.Time) models.Goal {
	return models.Goal{
		ID:         uuid.NewString(),
		TemplateID: tpl.ID,
		Title:      tpl.Title,
		Recurrence: tpl.Recurrence,
		CreatedAt:  now,
	}
}

func summarize(doc *models.CurrentWeekDocument, now time.Time) models.WeekSummary {
	completed := 0
	for _, g := range doc.Goals {
		if g.Completed {
			completed++
		}
	}
	total := len(doc.Goals)
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return models.WeekSummary{
		WeekNumber:     doc.WeekNumber,
		Year:           doc.Year,
		WeekStartDate:  doc.WeekStartDate,
		WeekEndDate:    doc.WeekEndDate,
		GoalsCompleted: completed,
		GoalsTotal:     total,
		CompletionRate: rate,
		ArchivedAt:     now,
	}
}

func completedOnceIDs(goals []models.Goal) []string {
	var ids []string
	for _, g := range goals {
		if g.Completed && g.TemplateID != "" && g.Recurrence == models.RecurrenceOnce {
			ids = append(ids, g.TemplateID)
		}
	}
	return ids
}
