package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/logging"
)

// pushStaleAfter is how long a server push stays authoritative. Past this
// window the reconciler assumes the socket went quiet and falls back to the
// schedule derived from game settings.
const pushStaleAfter = 5 * time.Second

// Reconciler merges two countdown sources into one view: authoritative
// server pushes and a locally anchored fallback schedule. It ticks once a
// second while running and notifies subscribers with each frame.
type Reconciler struct {
	clock clockwork.Clock
	log   logging.Logger

	mu sync.Mutex
	// push source
	pushRemaining time.Duration
	pushAt        time.Time
	havePush      bool
	// fallback source, anchored once per settings change
	target     time.Time
	haveTarget bool
	settings   api.GameSettings
	live       bool

	expiredFired bool
	nextSubID    int
	subscribers  []viewSub
	onExpired    []func()
}

type viewSub struct {
	id int
	fn func(View)
}

func NewReconciler(clock clockwork.Clock, log logging.Logger) *Reconciler {
	return &Reconciler{clock: clock, log: log}
}

// ApplySettings installs a game-settings schedule. The fallback target is
// anchored to now plus the configured offsets when the countdown is active;
// re-applying identical settings does not re-anchor, so the fallback keeps
// counting down instead of resetting on every settings poll.
func (r *Reconciler) ApplySettings(gs api.GameSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasLive := r.live
	sameSchedule := r.haveTarget && schedulesEqual(r.settings, gs)
	r.settings = gs
	r.live = gs.IsGameActive && gs.CountdownActive

	if !r.live {
		r.haveTarget = false
		return
	}
	if sameSchedule && wasLive {
		return
	}

	if gs.GameEndTime != nil {
		r.target = *gs.GameEndTime
	} else {
		offset := time.Duration(gs.SpinCountdownDays)*24*time.Hour +
			time.Duration(gs.SpinCountdownHours)*time.Hour +
			time.Duration(gs.SpinCountdownMinutes)*time.Minute
		r.target = r.clock.Now().Add(offset)
	}
	r.haveTarget = true
	r.expiredFired = false
}

func schedulesEqual(a, b api.GameSettings) bool {
	if a.SpinCountdownDays != b.SpinCountdownDays ||
		a.SpinCountdownHours != b.SpinCountdownHours ||
		a.SpinCountdownMinutes != b.SpinCountdownMinutes {
		return false
	}
	if (a.GameEndTime == nil) != (b.GameEndTime == nil) {
		return false
	}
	return a.GameEndTime == nil || a.GameEndTime.Equal(*b.GameEndTime)
}

// ApplyPush records a server countdown push (milliseconds remaining). The
// push becomes the authoritative source until it goes stale.
func (r *Reconciler) ApplyPush(timeRemaining int64) {
	r.mu.Lock()
	r.pushRemaining = time.Duration(timeRemaining) * time.Millisecond
	r.pushAt = r.clock.Now()
	r.havePush = true
	if timeRemaining > 0 {
		r.expiredFired = false
	}
	r.mu.Unlock()
	r.notify(r.Snapshot())
}

// Expire forces the expired state, e.g. on a countdown-expired event.
func (r *Reconciler) Expire() {
	r.mu.Lock()
	r.pushRemaining = 0
	r.pushAt = r.clock.Now()
	r.havePush = true
	r.mu.Unlock()
	r.notify(r.Snapshot())
}

// Snapshot computes the current frame. Between ticks of a fresh push the
// remaining time is extrapolated from the push timestamp.
func (r *Reconciler) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()

	if r.havePush && now.Sub(r.pushAt) < pushStaleAfter {
		left := r.pushRemaining - now.Sub(r.pushAt)
		v := Decompose(left.Milliseconds())
		v.Live = true
		return v
	}

	if !r.live || !r.haveTarget {
		// Frozen schedule: show the configured offsets without ticking.
		return View{
			Days:    r.settings.SpinCountdownDays,
			Hours:   r.settings.SpinCountdownHours,
			Minutes: r.settings.SpinCountdownMinutes,
		}
	}

	v := Decompose(r.target.Sub(now).Milliseconds())
	v.Live = true
	return v
}

// Subscribe registers a per-frame callback and returns a func that detaches
// it. Short-lived views must unsubscribe or their closures leak for the
// process lifetime.
func (r *Reconciler) Subscribe(fn func(View)) func() {
	r.mu.Lock()
	r.nextSubID++
	id := r.nextSubID
	r.subscribers = append(r.subscribers, viewSub{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subscribers {
			if s.id == id {
				r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
				return
			}
		}
	}
}

// OnExpired registers a callback fired once when a live countdown hits zero.
// It re-arms when a later push or schedule restarts the countdown.
func (r *Reconciler) OnExpired(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onExpired = append(r.onExpired, fn)
}

// Run ticks once a second until ctx is done, pushing frames to subscribers.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.notify(r.Snapshot())
		}
	}
}

func (r *Reconciler) notify(v View) {
	r.mu.Lock()
	subs := make([]viewSub, len(r.subscribers))
	copy(subs, r.subscribers)

	var expired []func()
	if v.Expired && v.Live && !r.expiredFired {
		r.expiredFired = true
		expired = make([]func(), len(r.onExpired))
		copy(expired, r.onExpired)
	}
	r.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
	for _, fn := range expired {
		fn()
	}
}
