package analytics

import (
	"context"
	"errors"
	"testing"

	"tutorsite/internal/db"
	"tutorsite/internal/models"
)

type fakeSink struct {
	queries  []db.QueryOutcomeCount
	sessions []db.SessionActivity
	calls    int
	err      error
}

func (f *fakeSink) RecordSearchBatch(_ context.Context, queries []db.QueryOutcomeCount, sessions []db.SessionActivity) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.queries = append(f.queries, queries...)
	f.sessions = append(f.sessions, sessions...)
	return nil
}

func TestAggregator_RecordAndSummary(t *testing.T) {
	a := New(0)
	a.Record("s1", models.SearchEvent{Query: "fees", ResultCount: 2, ExecutionTime: 1})
	a.Record("s2",
		models.SearchEvent{Query: "fees", ResultCount: 2, ExecutionTime: 3, SelectedID: "fees-1"},
		models.SearchEvent{Query: "latin", ResultCount: 0, ExecutionTime: 2},
	)

	s := a.Summary()
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", s.Sessions)
	}
	if a.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", a.Pending())
	}
}

func TestAggregator_Flush(t *testing.T) {
	a := New(0)
	a.Record("s1",
		models.SearchEvent{Query: "Fees", ResultCount: 2},
		models.SearchEvent{Query: "fees", ResultCount: 1, SelectedID: "fees-1"},
		models.SearchEvent{Query: "latin", ResultCount: 0},
	)

	sink := &fakeSink{}
	n, err := a.Flush(context.Background(), sink)
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Flush() = %d, want 3", n)
	}

	want := []db.QueryOutcomeCount{
		{Query: "fees", Outcome: models.OutcomeHit, Count: 2},
		{Query: "latin", Outcome: models.OutcomeMiss, Count: 1},
	}
	if len(sink.queries) != len(want) {
		t.Fatalf("queries = %+v, want %+v", sink.queries, want)
	}
	for i := range want {
		if sink.queries[i] != want[i] {
			t.Errorf("queries[%d] = %+v, want %+v", i, sink.queries[i], want[i])
		}
	}

	wantSession := db.SessionActivity{SessionID: "s1", Searches: 3, ZeroResults: 1, Selections: 1}
	if len(sink.sessions) != 1 || sink.sessions[0] != wantSession {
		t.Errorf("sessions = %+v, want %+v", sink.sessions, wantSession)
	}

	if a.Pending() != 0 {
		t.Errorf("Pending() after flush = %d, want 0", a.Pending())
	}
}

func TestAggregator_FlushEmpty(t *testing.T) {
	sink := &fakeSink{}
	if _, err := New(0).Flush(context.Background(), sink); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if sink.calls != 0 {
		t.Errorf("sink called %d times, want 0", sink.calls)
	}
}

func TestAggregator_EmptyQueryEvents(t *testing.T) {
	tests := []struct {
		name        string
		sessionID   string
		wantPending int
		wantFlushed int
		wantCalls   int
	}{
		{"without session", "", 0, 0, 0},
		{"with session", "s1", 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(0)
			a.Record(tt.sessionID,
				models.SearchEvent{Query: "", ResultCount: 0},
				models.SearchEvent{Query: "   ", ResultCount: 3},
			)
			if got := a.Pending(); got != tt.wantPending {
				t.Errorf("Pending() = %d, want %d", got, tt.wantPending)
			}

			sink := &fakeSink{}
			n, err := a.Flush(context.Background(), sink)
			if err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if n != tt.wantFlushed {
				t.Errorf("Flush() = %d, want %d", n, tt.wantFlushed)
			}
			if sink.calls != tt.wantCalls {
				t.Errorf("sink called %d times, want %d", sink.calls, tt.wantCalls)
			}
			if len(sink.queries) != 0 {
				t.Errorf("queries = %+v, want none", sink.queries)
			}
		})
	}
}

func TestAggregator_FlushFailureKeepsCounts(t *testing.T) {
	a := New(0)
	a.Record("s1", models.SearchEvent{Query: "fees", ResultCount: 1})

	failing := &fakeSink{err: errors.New("db down")}
	if _, err := a.Flush(context.Background(), failing); err == nil {
		t.Fatal("Flush() should return the sink error")
	}

	a.Record("s1", models.SearchEvent{Query: "fees", ResultCount: 1})

	sink := &fakeSink{}
	if _, err := a.Flush(context.Background(), sink); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(sink.queries) != 1 || sink.queries[0].Count != 2 {
		t.Errorf("queries = %+v, want fees x2", sink.queries)
	}
	if len(sink.sessions) != 1 || sink.sessions[0].Searches != 2 {
		t.Errorf("sessions = %+v, want 2 searches", sink.sessions)
	}
}

func TestAggregator_TruncatesLongQueries(t *testing.T) {
	a := New(5)
	a.Record("", models.SearchEvent{Query: "oxbridge interview", ResultCount: 1})

	sink := &fakeSink{}
	if _, err := a.Flush(context.Background(), sink); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(sink.queries) != 1 || sink.queries[0].Query != "oxbri" {
		t.Errorf("queries = %+v, want truncated query", sink.queries)
	}
	if len(sink.sessions) != 0 {
		t.Errorf("sessions = %+v, want none for anonymous events", sink.sessions)
	}
}

func TestAggregator_Reset(t *testing.T) {
	a := New(0)
	a.Record("s1", models.SearchEvent{Query: "fees", ResultCount: 1})
	a.Reset()

	if s := a.Summary(); s.Count != 0 || s.Sessions != 0 {
		t.Errorf("Summary() after Reset = %+v, want empty", s)
	}
}
