package resilience

import (
	"errors"
	"testing"
	"time"
)

var errSink = errors.New("sink unavailable")

func newTestBreaker(threshold int) (*Breaker, *time.Time) {
	b := NewBreaker(BreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenProbes:   1,
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func fail() error    { return errSink }
func succeed() error { return nil }

func TestBreaker_OpensAfterThresholdAndRecovers(t *testing.T) {
	b, now := newTestBreaker(2)

	var transitions []CircuitState
	b.OnStateChange(func(_, to CircuitState) { transitions = append(transitions, to) })

	if err := b.Do(fail); !errors.Is(err, errSink) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(fail)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Do(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected rejection without calling fn, err=%v called=%v", err, called)
	}
	if b.Rejected() != 1 {
		t.Fatalf("expected 1 rejected call, got %d", b.Rejected())
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Do(succeed); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", transitions)
		}
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1)

	_ = b.Do(fail)
	*now = now.Add(6 * time.Second)

	if err := b.Do(fail); !errors.Is(err, errSink) {
		t.Fatalf("expected probe to run and fail, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(2)

	_ = b.Do(fail)
	_ = b.Do(succeed)
	_ = b.Do(fail)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed when failures are not consecutive, got %s", state)
	}
}

func TestBreaker_DisabledAdmitsEverything(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		if err := b.Do(fail); !errors.Is(err, errSink) {
			t.Fatalf("call %d: expected sink error, got %v", i, err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("disabled breaker must stay closed, got %s", state)
	}
}

func TestBreakerConfig_Normalize(t *testing.T) {
	got := BreakerConfig{Enabled: true}.Normalize()
	want := DefaultBreakerConfig()
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}
