package stats

import (
	"context"
	"testing"
	"time"
)

type testRepo struct {
	gotFrom time.Time
	gotTo   time.Time
	gotDest *int64

	out Summary
	err error
}

func (r *testRepo) CountCreatedBetween(ctx context.Context, from, to time.Time, destinationID *int64) (Summary, error) {
	r.gotFrom = from
	r.gotTo = to
	r.gotDest = destinationID
	return r.out, r.err
}

func TestService_Today_UsesCalendarDayBounds(t *testing.T) {
	repo := &testRepo{out: Summary{Total: 7, Pending: 3, Completed: 4}}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, 11, 3, 14, 30, 45, 0, time.UTC)
	}

	got, err := svc.Today(context.Background(), nil)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if got != (Summary{Total: 7, Pending: 3, Completed: 4}) {
		t.Fatalf("unexpected summary: %+v", got)
	}

	wantFrom := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	if !repo.gotFrom.Equal(wantFrom) {
		t.Fatalf("expected from=%v, got %v", wantFrom, repo.gotFrom)
	}
	// EndOfDay es el último instante del 3 de noviembre, nunca el día 4.
	if repo.gotTo.Before(repo.gotFrom) || repo.gotTo.Day() != 3 {
		t.Fatalf("expected to within same day, got %v", repo.gotTo)
	}
	if repo.gotDest != nil {
		t.Fatalf("expected global count (nil destination), got %v", repo.gotDest)
	}
}

func TestService_Today_ForwardsDestination(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	dest := int64(2)
	if _, err := svc.Today(context.Background(), &dest); err != nil {
		t.Fatalf("today: %v", err)
	}
	if repo.gotDest == nil || *repo.gotDest != 2 {
		t.Fatalf("expected destination 2 forwarded, got %v", repo.gotDest)
	}
}
