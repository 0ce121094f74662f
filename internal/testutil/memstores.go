// internal/testutil/memstores.go
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// In-memory store fakes. They mirror the write semantics of the Mongo
// stores (set-semantics rosters, no-op pulls/clears, upsert-by-user) so
// coordinator and rollover tests exercise the same idempotence the real
// collections provide. Failure flags let tests inject mid-sequence write
// errors.

// ErrInjected is returned by fakes whose failure flag is set.
var ErrInjected = errors.New("injected store failure")

// MemUserStore is an in-memory coordinator.UserStore / rollover user source.
type MemUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User

	FailSetAssignedCoach   bool
	FailClearAssignedCoach bool
	FailSetCoachRole       bool
	FailClearCoachRole     bool
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: map[primitive.ObjectID]models.User{}}
}

// Put inserts or replaces a user and returns the stored copy.
func (s *MemUserStore) Put(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == primitive.NilObjectID {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return u
}

func (s *MemUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	cp := u
	return &cp, nil
}

func (s *MemUserStore) SetAssignedCoach(_ context.Context, userID, coachID primitive.ObjectID, teamName string) error {
	if s.FailSetAssignedCoach {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	u.AssignedCoachID = &coachID
	u.AssignedTeamName = teamName
	u.UpdatedAt = time.Now().UTC()
	s.users[userID] = u
	return nil
}

func (s *MemUserStore) ClearAssignedCoach(_ context.Context, userID primitive.ObjectID) error {
	if s.FailClearAssignedCoach {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	u.AssignedCoachID = nil
	u.AssignedTeamName = ""
	u.UpdatedAt = time.Now().UTC()
	s.users[userID] = u
	return nil
}

func (s *MemUserStore) SetCoachRole(_ context.Context, userID primitive.ObjectID) error {
	if s.FailSetCoachRole {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	u.Role = "coach"
	u.IsCoach = true
	s.users[userID] = u
	return nil
}

func (s *MemUserStore) ClearCoachRole(_ context.Context, userID primitive.ObjectID) error {
	if s.FailClearCoachRole {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	u.Role = "member"
	u.IsCoach = false
	s.users[userID] = u
	return nil
}

func (s *MemUserStore) ListByAssignedCoach(_ context.Context, coachID primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.AssignedCoachID != nil && *u.AssignedCoachID == coachID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemUserStore) ListActiveIDs(_ context.Context) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []primitive.ObjectID
	for id, u := range s.users {
		if u.Status == "" || u.Status == "active" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// MemTeamStore is an in-memory coordinator.TeamStore.
type MemTeamStore struct {
	mu    sync.Mutex
	teams map[primitive.ObjectID]models.Team

	FailAddMember    bool
	FailRemoveMember bool
	FailSetManager   bool
}

func NewMemTeamStore() *MemTeamStore {
	return &MemTeamStore{teams: map[primitive.ObjectID]models.Team{}}
}

// Put inserts or replaces a team and returns the stored copy.
func (s *MemTeamStore) Put(t models.Team) models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == primitive.NilObjectID {
		t.ID = primitive.NewObjectID()
	}
	if t.TeamMembers == nil {
		t.TeamMembers = []primitive.ObjectID{}
	}
	s.teams[t.ID] = t
	return t
}

func (s *MemTeamStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "team not found")
	}
	cp := cloneTeam(t)
	return &cp, nil
}

func (s *MemTeamStore) GetByManager(_ context.Context, managerID primitive.ObjectID) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.ManagerID == managerID {
			cp := cloneTeam(t)
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "coach does not have a team")
}

func (s *MemTeamStore) Create(_ context.Context, t models.Team) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.teams {
		if existing.ManagerID == t.ManagerID {
			return models.Team{}, errors.New("coach already manages a team")
		}
	}
	t.ID = primitive.NewObjectID()
	if t.TeamMembers == nil {
		t.TeamMembers = []primitive.ObjectID{}
	}
	if t.Status == "" {
		t.Status = "active"
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.teams[t.ID] = t
	return cloneTeam(t), nil
}

func (s *MemTeamStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, id)
	return nil
}

func (s *MemTeamStore) AddMember(_ context.Context, teamID, userID primitive.ObjectID) error {
	if s.FailAddMember {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil
	}
	for _, id := range t.TeamMembers {
		if id == userID {
			return nil
		}
	}
	t.TeamMembers = append(t.TeamMembers, userID)
	s.teams[teamID] = t
	return nil
}

func (s *MemTeamStore) RemoveMember(_ context.Context, teamID, userID primitive.ObjectID) error {
	if s.FailRemoveMember {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil
	}
	kept := t.TeamMembers[:0]
	for _, id := range t.TeamMembers {
		if id != userID {
			kept = append(kept, id)
		}
	}
	t.TeamMembers = kept
	s.teams[teamID] = t
	return nil
}

func (s *MemTeamStore) SetManager(_ context.Context, teamID, managerID primitive.ObjectID) error {
	if s.FailSetManager {
		return ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil
	}
	t.ManagerID = managerID
	s.teams[teamID] = t
	return nil
}

func cloneTeam(t models.Team) models.Team {
	cp := t
	cp.TeamMembers = append([]primitive.ObjectID(nil), t.TeamMembers...)
	return cp
}

// MemWeekStore is an in-memory rollover.WeekStore.
type MemWeekStore struct {
	mu    sync.Mutex
	weeks map[primitive.ObjectID]models.CurrentWeekDocument
}

func NewMemWeekStore() *MemWeekStore {
	return &MemWeekStore{weeks: map[primitive.ObjectID]models.CurrentWeekDocument{}}
}

func (s *MemWeekStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.CurrentWeekDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.weeks[userID]
	if !ok {
		return nil, nil
	}
	cp := w
	cp.Goals = append([]models.Goal(nil), w.Goals...)
	return &cp, nil
}

func (s *MemWeekStore) Upsert(_ context.Context, w models.CurrentWeekDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.Goals == nil {
		w.Goals = []models.Goal{}
	}
	s.weeks[w.UserID] = w
	return nil
}

// MemPastWeeksStore is an in-memory rollover.PastWeeksStore.
type MemPastWeeksStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.PastWeeksDocument
}

func NewMemPastWeeksStore() *MemPastWeeksStore {
	return &MemPastWeeksStore{docs: map[primitive.ObjectID]models.PastWeeksDocument{}}
}

func (s *MemPastWeeksStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.PastWeeksDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[userID]
	if !ok {
		return &models.PastWeeksDocument{UserID: userID, Weeks: []models.WeekSummary{}}, nil
	}
	cp := d
	cp.Weeks = append([]models.WeekSummary(nil), d.Weeks...)
	cp.CompletedOnce = append([]string(nil), d.CompletedOnce...)
	return &cp, nil
}

func (s *MemPastWeeksStore) PrependSummary(_ context.Context, userID primitive.ObjectID, summary models.WeekSummary, completedOnce []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[userID]
	if !ok {
		d = models.PastWeeksDocument{UserID: userID}
	}
	d.Weeks = append([]models.WeekSummary{summary}, d.Weeks...)
	for _, id := range completedOnce {
		found := false
		for _, have := range d.CompletedOnce {
			if have == id {
				found = true
				break
			}
		}
		if !found {
			d.CompletedOnce = append(d.CompletedOnce, id)
		}
	}
	s.docs[userID] = d
	return nil
}

// MemTemplateSource is an in-memory rollover.TemplateSource.
type MemTemplateSource struct {
	mu        sync.Mutex
	templates map[primitive.ObjectID][]models.WeeklyGoalTemplate
}

func NewMemTemplateSource() *MemTemplateSource {
	return &MemTemplateSource{templates: map[primitive.ObjectID][]models.WeeklyGoalTemplate{}}
}

// SetTemplates replaces a user's template list.
func (s *MemTemplateSource) SetTemplates(userID primitive.ObjectID, tpls []models.WeeklyGoalTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[userID] = tpls
}

func (s *MemTemplateSource) Templates(_ context.Context, userID primitive.ObjectID) ([]models.WeeklyGoalTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.WeeklyGoalTemplate(nil), s.templates[userID]...), nil
}
