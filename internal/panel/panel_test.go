package panel

import (
	"errors"
	"sync"
	"testing"

	"github.com/showfinder/showfinder/internal/apperrors"
)

func TestPanel_ReplaceIsFullReplace(t *testing.T) {
	t.Parallel()

	p := New[string](false)
	if !p.Replace(p.Begin(), []string{"a", "b", "c"}) {
		t.Fatal("Expected first replace to apply")
	}
	if !p.Replace(p.Begin(), []string{"d"}) {
		t.Fatal("Expected second replace to apply")
	}

	view := p.Snapshot()
	if len(view.Items) != 1 || view.Items[0] != "d" {
		t.Errorf("Expected only the second list, got %v", view.Items)
	}
	if view.Pending {
		t.Error("Expected no pending request")
	}
}

func TestPanel_StaleCompletionDiscarded(t *testing.T) {
	t.Parallel()

	p := New[string](false)
	first := p.Begin()
	second := p.Begin()

	if !p.Snapshot().Pending {
		t.Error("Expected pending while tickets are outstanding")
	}
	if !p.Replace(second, []string{"second"}) {
		t.Fatal("Expected newest ticket to apply")
	}
	if p.Replace(first, []string{"first"}) {
		t.Error("Expected stale ticket to be rejected")
	}
	if p.Fail(first, errors.New("late failure")) {
		t.Error("Expected stale failure to be rejected")
	}

	view := p.Snapshot()
	if len(view.Items) != 1 || view.Items[0] != "second" || view.Error != "" {
		t.Errorf("Unexpected view after stale completions: %+v", view)
	}
}

func TestPanel_FailKeepsItems(t *testing.T) {
	t.Parallel()

	p := New[int](false)
	p.Replace(p.Begin(), []int{1, 2})

	failure := apperrors.NewRequestFailure("search shows", "http://x", apperrors.ReasonNetwork, errors.New("boom"))
	if !p.Fail(p.Begin(), failure) {
		t.Fatal("Expected failure to apply")
	}

	view := p.Snapshot()
	if len(view.Items) != 2 {
		t.Errorf("Expected previous items to be kept, got %v", view.Items)
	}
	if view.Error == "" {
		t.Error("Expected an error message")
	}

	p.Replace(p.Begin(), []int{3})
	if view := p.Snapshot(); view.Error != "" {
		t.Errorf("Expected successful replace to clear the error, got %q", view.Error)
	}
}

func TestPanel_VisibilityIsMonotonic(t *testing.T) {
	t.Parallel()

	p := New[int](false)
	if p.Snapshot().Visible {
		t.Fatal("Expected panel to start hidden")
	}
	p.Show()
	p.Replace(p.Begin(), nil)
	p.Fail(p.Begin(), errors.New("x"))
	if !p.Snapshot().Visible {
		t.Error("Expected panel to stay visible")
	}
}

func TestPanel_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	p := New[string](true)
	items := []string{"a"}
	p.Replace(p.Begin(), items)
	items[0] = "mutated"

	view := p.Snapshot()
	view.Items[0] = "also mutated"

	if got := p.Snapshot().Items[0]; got != "a" {
		t.Errorf("Expected panel state to be isolated from callers, got %q", got)
	}
}

func TestPanel_ConcurrentCompletions(t *testing.T) {
	t.Parallel()

	p := New[int](false)
	tickets := make([]Ticket, 50)
	for i := range tickets {
		tickets[i] = p.Begin()
	}

	var wg sync.WaitGroup
	for i, ticket := range tickets {
		wg.Add(1)
		go func(i int, ticket Ticket) {
			defer wg.Done()
			p.Replace(ticket, []int{i})
		}(i, ticket)
	}
	wg.Wait()

	// Whatever the completion order, the last issued ticket must win.
	view := p.Snapshot()
	if len(view.Items) != 1 || view.Items[0] != len(tickets)-1 {
		t.Errorf("Expected last-issued result %d, got %v", len(tickets)-1, view.Items)
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		empty bool
	}{
		{name: "nil", err: nil, empty: true},
		{name: "not found", err: apperrors.NewStatusFailure("get episodes", "u", 404, "show", "1")},
		{name: "unavailable", err: apperrors.NewRequestFailure("search shows", "u", apperrors.ReasonUnavailable, nil)},
		{name: "shape", err: apperrors.NewShapeFailure("search shows", 0, "show")},
		{name: "plain", err: errors.New("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message(tt.err)
			if (got == "") != tt.empty {
				t.Errorf("Message(%v) = %q", tt.err, got)
			}
		})
	}

	if Message(apperrors.NewStatusFailure("get episodes", "u", 404, "show", "1")) == Message(apperrors.NewStatusFailure("get episodes", "u", 500, "show", "1")) {
		t.Error("Expected not-found to have its own message")
	}
}
