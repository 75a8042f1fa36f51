package window

// rebuildState tracks the webview recovery heuristic. The watchdog exists
// because one platform's webview process can wedge silently; a periodic
// health probe with a two-tick debounce triggers a single destructive
// rebuild, after which the timer is canceled for good.
type rebuildState int

const (
	rebuildIdle rebuildState = iota
	rebuildArmed
	rebuildDone
)

// String returns a human-readable representation of the state.
func (s rebuildState) String() string {
	switch s {
	case rebuildIdle:
		return "idle"
	case rebuildArmed:
		return "armed"
	case rebuildDone:
		return "done"
	default:
		return "unknown"
	}
}

// rebuildWatchdog is the 3-state machine driven by timer ticks. It is owned
// by the window actor and never touched off the actor goroutine.
type rebuildWatchdog struct {
	state rebuildState
}

// observe advances the state machine with one health probe result. It
// returns true exactly once, on the armed→done transition, which is the
// caller's cue to rebuild the webview and cancel the timer. A healthy probe
// resets any non-done state to idle, so only two consecutive unhealthy
// probes reach the rebuild.
func (w *rebuildWatchdog) observe(healthy bool) bool {
	if w.state == rebuildDone {
		return false
	}

	if healthy {
		w.state = rebuildIdle
		return false
	}

	if w.state == rebuildIdle {
		w.state = rebuildArmed
		return false
	}

	w.state = rebuildDone
	return true
}

// done reports whether the watchdog has fired and retired.
func (w *rebuildWatchdog) done() bool {
	return w.state == rebuildDone
}
