package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/logging"
)

func liveSettings(days, hours, minutes int) api.GameSettings {
	return api.GameSettings{
		IsGameActive:         true,
		CountdownActive:      true,
		SpinCountdownDays:    days,
		SpinCountdownHours:   hours,
		SpinCountdownMinutes: minutes,
	}
}

func TestReconciler_PushIsAuthoritative(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	r.ApplySettings(liveSettings(3, 0, 0))
	r.ApplyPush(5_000)

	v := r.Snapshot()
	assert.True(t, v.Live)
	assert.Equal(t, 5, v.Seconds)
	assert.Zero(t, v.Days, "fresh push overrides the schedule")

	// Between pushes the remaining time extrapolates from the push.
	clock.Advance(2 * time.Second)
	assert.Equal(t, 3, r.Snapshot().Seconds)
}

func TestReconciler_StalePushFallsBackToSchedule(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	r.ApplySettings(liveSettings(1, 0, 0))
	r.ApplyPush(600_000)

	clock.Advance(pushStaleAfter + time.Second)

	v := r.Snapshot()
	assert.True(t, v.Live)
	assert.Equal(t, 23, v.Hours, "schedule anchored at ApplySettings takes over")
	assert.Zero(t, v.Days)
}

func TestReconciler_FrozenWhenCountdownInactive(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	gs := liveSettings(2, 5, 30)
	gs.CountdownActive = false
	r.ApplySettings(gs)

	v := r.Snapshot()
	assert.False(t, v.Live)
	assert.Equal(t, 2, v.Days)
	assert.Equal(t, 5, v.Hours)
	assert.Equal(t, 30, v.Minutes)

	// A frozen schedule does not tick.
	clock.Advance(time.Hour)
	assert.Equal(t, v, r.Snapshot())
}

func TestReconciler_InactiveGameFreezesEvenWithCountdownFlag(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	gs := liveSettings(0, 1, 0)
	gs.IsGameActive = false
	r.ApplySettings(gs)

	assert.False(t, r.Snapshot().Live)
}

func TestReconciler_ReapplyingSameScheduleDoesNotReanchor(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	r.ApplySettings(liveSettings(0, 1, 0))
	clock.Advance(10 * time.Minute)
	r.ApplySettings(liveSettings(0, 1, 0))

	v := r.Snapshot()
	assert.Equal(t, 50, v.Minutes, "settings poll must not reset the countdown")
}

func TestReconciler_ChangedScheduleReanchors(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	r.ApplySettings(liveSettings(0, 1, 0))
	clock.Advance(10 * time.Minute)
	r.ApplySettings(liveSettings(0, 2, 0))

	v := r.Snapshot()
	assert.Equal(t, 2, v.Hours)
	assert.Zero(t, v.Minutes)
}

func TestReconciler_GameEndTimeWinsOverOffsets(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	end := clock.Now().Add(30 * time.Minute)
	gs := liveSettings(5, 0, 0)
	gs.GameEndTime = &end
	r.ApplySettings(gs)

	v := r.Snapshot()
	assert.Zero(t, v.Days)
	assert.Equal(t, 30, v.Minutes)
}

func TestReconciler_ExpiredFiresOncePerCountdown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	var fired int
	r.OnExpired(func() { fired++ })

	r.ApplyPush(0)
	r.Expire()
	assert.Equal(t, 1, fired, "repeat expirations must not re-fire")

	// A restarted countdown re-arms the expiration callback.
	r.ApplyPush(5_000)
	r.Expire()
	assert.Equal(t, 2, fired)
}

func TestReconciler_RunNotifiesSubscribers(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	frames := make(chan View, 8)
	r.Subscribe(func(v View) { frames <- v })

	r.ApplyPush(10_000)
	<-frames // the ApplyPush frame

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)

	select {
	case v := <-frames:
		assert.True(t, v.Live)
		assert.Equal(t, 9, v.Seconds)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame after a tick")
	}
}

func TestReconciler_UnsubscribeDetachesCallback(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewReconciler(clock, logging.Nop())

	var kept, dropped int
	r.Subscribe(func(View) { kept++ })
	unsubscribe := r.Subscribe(func(View) { dropped++ })

	r.ApplyPush(10_000)
	unsubscribe()
	r.ApplyPush(9_000)

	assert.Equal(t, 2, kept)
	assert.Equal(t, 1, dropped, "frames must stop after unsubscribing")

	// Unsubscribing twice is harmless.
	unsubscribe()
	r.ApplyPush(8_000)
	assert.Equal(t, 3, kept)
}
