package claim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func collect(ch <-chan Update) []Update {
	var out []Update
	for u := range ch {
		out = append(out, u)
	}
	return out
}

func TestSimulatedSubmitter(t *testing.T) {
	tests := []struct {
		name    string
		fail    bool
		want    Status
		wantErr error
	}{
		{"success", false, StatusSuccess, nil},
		{"rejected", true, StatusFailure, ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SimulatedSubmitter{Delay: time.Millisecond, Fail: tt.fail}
			got := collect(s.Submit(context.Background(), "r1"))

			if len(got) != 2 {
				t.Fatalf("got %d updates, want 2: %+v", len(got), got)
			}
			if got[0].Status != StatusPending {
				t.Errorf("first update = %v, want pending", got[0].Status)
			}
			if got[1].Status != tt.want || !errors.Is(got[1].Err, tt.wantErr) {
				t.Errorf("final update = %+v, want %v / %v", got[1], tt.want, tt.wantErr)
			}
			if got[1].RoundID != "r1" {
				t.Errorf("RoundID = %q", got[1].RoundID)
			}
		})
	}
}

func TestSimulatedSubmitter_Cancelled(t *testing.T) {
	s := &SimulatedSubmitter{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Submit(ctx, "r2")
	cancel()

	got := collect(ch)
	last := got[len(got)-1]
	if last.Status != StatusFailure || !errors.Is(last.Err, context.Canceled) {
		t.Errorf("final update = %+v, want cancelled failure", last)
	}
}

// TestTracker 测试帧循环中的非阻塞轮询
func TestTracker(t *testing.T) {
	tr := NewTracker(&SimulatedSubmitter{Delay: 5 * time.Millisecond})

	if !tr.Start("r3") {
		t.Fatal("Start should succeed when idle")
	}
	if tr.Poll().Status != StatusPending {
		t.Errorf("status after Start = %v, want pending", tr.Poll().Status)
	}
	if tr.Start("r4") {
		t.Error("Start should be ignored while pending")
	}

	deadline := time.Now().Add(2 * time.Second)
	for tr.Poll().Status == StatusPending {
		if time.Now().After(deadline) {
			t.Fatal("claim never resolved")
		}
		time.Sleep(time.Millisecond)
	}

	if got := tr.Poll(); got.Status != StatusSuccess || got.RoundID != "r3" {
		t.Errorf("final = %+v", got)
	}
	if !tr.Start("r5") {
		t.Error("Start should succeed after completion")
	}
	tr.Cancel()
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{StatusIdle: "idle", StatusPending: "pending", StatusSuccess: "success", StatusFailure: "failure", Status(9): "unknown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
