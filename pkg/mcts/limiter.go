package mcts

import (
	"context"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt StopReason = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopCycles    StopReason = 4 // Cycle limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	SetLimits(*Limits)
	Limits() *Limits
	// Elapsed time in ms since the last Reset
	Elapsed() uint32
	// Set the stop signal, will cause the search to exit if set to true
	SetStop(bool)
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Whether the search may run another cycle
	Ok(cycles uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, called once after the search ends
	EvaluateStopReason(cycles uint32)
}

type Limiter struct {
	limits *Limits
	timer  *timer
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		timer:  newTimer(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.timer.Movetime(l.limits.Movetime)
	l.timer.Reset()
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.timer.Deltatime())
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

// Bit mask of the limits currently reached
func (l *Limiter) limitMask(cycles uint32) StopReason {
	reason := StopNone
	if l.Stop() {
		reason |= StopInterrupt
	}

	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return reason
	}

	if l.timer.IsEnd() {
		reason |= StopMovetime
	}
	if l.limits.Cycles <= cycles {
		reason |= StopCycles
	}
	return reason
}

func (l *Limiter) EvaluateStopReason(cycles uint32) {
	l.reason = l.limitMask(cycles)
}

func (l *Limiter) Ok(cycles uint32) bool {
	return l.limitMask(cycles) == StopNone
}
