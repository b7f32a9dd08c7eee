package mcts

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := LimiterLike(NewLimiter())
	limiter.Reset()

	if !limiter.Ok(1000000) {
		t.Error("Default limiter should search infinitely")
	}

	limiter.SetLimits(DefaultLimits().SetCycles(100))
	limiter.Reset()
	if ok := limiter.Ok(100); ok {
		t.Errorf("<Cycles=%d: ok=%v, want=%v", 100, ok, !ok)
	}

	if ok := limiter.Ok(99); !ok {
		t.Errorf(">Cycles=%d: ok=%v, want=%v", 99, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(100))
	limiter.Reset()
	time.Sleep(time.Millisecond * 101)

	if ok := limiter.Ok(1); ok {
		t.Errorf("<Movetime: ok=%v, want=%v", ok, !ok)
	}

	limiter.Reset()
	if ok := limiter.Ok(1); !ok {
		t.Errorf(">Movetime: ok=%v, want=%v", ok, !ok)
	}
}

func TestLimiterCombos(t *testing.T) {
	limiter := LimiterLike(NewLimiter())

	limiter.SetLimits(DefaultLimits().SetCycles(100).SetMovetime(50))
	limiter.Reset()

	if !limiter.Ok(99) {
		t.Error(">Cycles+Time failed")
	}

	limiter.EvaluateStopReason(100)
	if reason := limiter.StopReason(); reason != StopCycles {
		t.Errorf("Cycles+Time: reason=%s, want=%s", reason, StopCycles)
	}

	time.Sleep(time.Millisecond * 51)
	limiter.EvaluateStopReason(100)
	if reason := limiter.StopReason(); reason != StopCycles|StopMovetime {
		t.Errorf("Cycles+Time: reason=%s, want=%s", reason, StopCycles|StopMovetime)
	}
	if s := limiter.StopReason().String(); s != "Movetime|Cycles" {
		t.Errorf("String()=%q", s)
	}
}

func TestLimiterStop(t *testing.T) {
	limiter := LimiterLike(NewLimiter())
	limiter.SetLimits(DefaultLimits().SetCycles(100))
	limiter.Reset()

	limiter.SetStop(true)
	if limiter.Ok(1) {
		t.Error("stopped limiter should not allow more cycles")
	}
	limiter.EvaluateStopReason(1)
	if limiter.StopReason() != StopInterrupt {
		t.Errorf("reason=%s, want=%s", limiter.StopReason(), StopInterrupt)
	}

	// Reset clears the stop signal
	limiter.Reset()
	if !limiter.Ok(1) || limiter.StopReason() != StopNone {
		t.Errorf("after reset: ok=%v reason=%s", limiter.Ok(1), limiter.StopReason())
	}
}

func TestLimiterContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	limiter := LimiterLike(NewLimiter())
	limiter.SetContext(ctx)
	limiter.Reset()

	if !limiter.Ok(1) {
		t.Fatal("limiter should run until cancelled")
	}
	cancel()
	if limiter.Ok(1) || !limiter.Stop() {
		t.Error("cancelled context should stop the limiter")
	}
}

func TestLimitsBounded(t *testing.T) {
	if DefaultLimits().Bounded() {
		t.Error("default limits are infinite")
	}
	if !DefaultLimits().SetCycles(10).Bounded() || !DefaultLimits().SetMovetime(10).Bounded() {
		t.Error("cycles or movetime should bound the search")
	}
	if DefaultLimits().SetCycles(10).SetInfinite(true).Bounded() {
		t.Error("infinite overrides the other limits")
	}
}
