package optimistic_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/mkelsey/dreamcoach/internal/app/optimistic"
)

type goalList struct {
	Titles []string
}

func cloneGoalList(g goalList) goalList {
	out := goalList{Titles: make([]string, len(g.Titles))}
	copy(out.Titles, g.Titles)
	return out
}

// blockingPersist lets a test hold a persist call open while more mutations
// are applied, then release it with a chosen result.
type blockingPersist struct {
	mu      sync.Mutex
	started chan struct{}
	release chan error
	calls   []goalList
}

func newBlockingPersist() *blockingPersist {
	return &blockingPersist{
		started: make(chan struct{}, 16),
		release: make(chan error),
	}
}

func (p *blockingPersist) persist(_ context.Context, g goalList) error {
	p.mu.Lock()
	p.calls = append(p.calls, cloneGoalList(g))
	p.mu.Unlock()
	p.started <- struct{}{}
	return <-p.release
}

func (p *blockingPersist) snapshots() []goalList {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]goalList, len(p.calls))
	copy(out, p.calls)
	return out
}

func addGoal(title string) optimistic.Mutation[goalList] {
	return func(g goalList) goalList {
		g.Titles = append(g.Titles, title)
		return g
	}
}

func TestApply_VisibleImmediately(t *testing.T) {
	p := newBlockingPersist()
	c := optimistic.New(goalList{Titles: []string{"read"}}, cloneGoalList, p.persist)

	c.Apply(addGoal("run"))

	got := c.Visible()
	want := []string{"read", "run"}
	if !reflect.DeepEqual(got.Titles, want) {
		t.Errorf("visible after apply: got %v, want %v", got.Titles, want)
	}
	// Confirmed has not moved; the write is still in flight.
	if conf := c.Confirmed(); !reflect.DeepEqual(conf.Titles, []string{"read"}) {
		t.Errorf("confirmed moved before ack: %v", conf.Titles)
	}

	<-p.started
	p.release <- nil
	c.Wait()

	if conf := c.Confirmed(); !reflect.DeepEqual(conf.Titles, want) {
		t.Errorf("confirmed after ack: got %v, want %v", conf.Titles, want)
	}
}

func TestApply_SecondDeltaSeesFirst(t *testing.T) {
	p := newBlockingPersist()
	c := optimistic.New(goalList{}, cloneGoalList, p.persist)

	c.Apply(addGoal("first"))
	<-p.started // first persist is now in flight
	c.Apply(addGoal("second"))

	// The second mutation was computed against the first's optimistic
	// result, not against the still-empty confirmed state.
	got := c.Visible()
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got.Titles, want) {
		t.Fatalf("visible: got %v, want %v", got.Titles, want)
	}

	p.release <- nil
	<-p.started
	p.release <- nil
	c.Wait()

	snaps := p.snapshots()
	if len(snaps) != 2 {
		t.Fatalf("persist calls: got %d, want 2", len(snaps))
	}
	if !reflect.DeepEqual(snaps[1].Titles, want) {
		t.Errorf("second snapshot: got %v, want %v", snaps[1].Titles, want)
	}
	if conf := c.Confirmed(); !reflect.DeepEqual(conf.Titles, want) {
		t.Errorf("confirmed: got %v, want %v", conf.Titles, want)
	}
}

func TestApply_RollbackIsExact(t *testing.T) {
	errBoom := errors.New("write rejected")
	initial := goalList{Titles: []string{"read", "run"}}
	c := optimistic.New(initial, cloneGoalList, func(context.Context, goalList) error {
		return errBoom
	})

	before := c.Visible()
	c.Apply(addGoal("swim"))
	c.Wait()

	after := c.Visible()
	if !reflect.DeepEqual(after, before) {
		t.Errorf("rollback not exact: got %v, want %v", after.Titles, before.Titles)
	}
	if conf := c.Confirmed(); !reflect.DeepEqual(conf, before) {
		t.Errorf("confirmed changed by failed write: %v", conf.Titles)
	}

	select {
	case err := <-c.Errors():
		if !errors.Is(err, errBoom) {
			t.Errorf("error channel: got %v, want %v", err, errBoom)
		}
	default:
		t.Error("no error delivered after failed persist")
	}
}

func TestApply_FailureDiscardsWholeChain(t *testing.T) {
	p := newBlockingPersist()
	c := optimistic.New(goalList{Titles: []string{"read"}}, cloneGoalList, p.persist)

	c.Apply(addGoal("run"))
	<-p.started
	c.Apply(addGoal("swim"))
	c.Apply(addGoal("bike"))

	// Fail the first write; the two queued deltas built on top of it must
	// go with it.
	p.release <- errors.New("write rejected")
	c.Wait()

	got := c.Visible()
	if !reflect.DeepEqual(got.Titles, []string{"read"}) {
		t.Errorf("visible after chain rollback: got %v, want [read]", got.Titles)
	}
	if snaps := p.snapshots(); len(snaps) != 1 {
		t.Errorf("persist calls: got %d, want 1 (chain discarded)", len(snaps))
	}
	if len(c.Errors()) != 1 {
		t.Errorf("errors delivered: got %d, want 1", len(c.Errors()))
	}
}

func TestApply_MutationCannotAliasConfirmed(t *testing.T) {
	p := newBlockingPersist()
	c := optimistic.New(goalList{Titles: []string{"read"}}, cloneGoalList, p.persist)

	c.Apply(func(g goalList) goalList {
		g.Titles[0] = "mutated"
		return g
	})

	if conf := c.Confirmed(); conf.Titles[0] != "read" {
		t.Errorf("confirmed state aliased by mutation: %v", conf.Titles)
	}

	<-p.started
	p.release <- nil
	c.Wait()
}

func TestClose_RejectsFurtherMutations(t *testing.T) {
	c := optimistic.New(goalList{}, cloneGoalList, func(context.Context, goalList) error {
		return nil
	})
	c.Apply(addGoal("one"))
	c.Close()
	c.Apply(addGoal("two"))

	if got := c.Visible(); !reflect.DeepEqual(got.Titles, []string{"one"}) {
		t.Errorf("mutation accepted after close: %v", got.Titles)
	}
}
