// Package countdown turns server countdown pushes and game-settings
// schedules into a single ticking view of time left until the next spin.
// Server pushes win whenever they are fresh; between pushes, and when the
// socket is down, the view is derived locally from the settings schedule.
package countdown

import (
	"fmt"
	"time"
)

// Milliseconds per unit, matching the wire format of countdown pushes.
const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// Urgency threshold: under six hours left, the UI switches to warning style.
const urgentHours = 6

// View is one rendered countdown frame.
type View struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int

	// Live reports whether the countdown is actually running. When false
	// the fields hold the configured schedule, frozen.
	Live bool

	// Expired is set once a live countdown reaches zero.
	Expired bool
}

// Decompose splits a remaining-time value in milliseconds into display
// units. Negative input clamps to zero with Expired set.
func Decompose(ms int64) View {
	if ms <= 0 {
		return View{Expired: true}
	}
	return View{
		Days:    int(ms / msPerDay),
		Hours:   int(ms % msPerDay / msPerHour),
		Minutes: int(ms % msPerHour / msPerMinute),
		Seconds: int(ms % msPerMinute / msPerSecond),
	}
}

// Remaining reassembles the view into a duration.
func (v View) Remaining() time.Duration {
	ms := int64(v.Days)*msPerDay + int64(v.Hours)*msPerHour +
		int64(v.Minutes)*msPerMinute + int64(v.Seconds)*msPerSecond
	return time.Duration(ms) * time.Millisecond
}

// Urgent reports whether the countdown is in its final stretch.
func (v View) Urgent() bool {
	return v.Live && !v.Expired && v.Days == 0 && v.Hours < urgentHours
}

func (v View) String() string {
	if v.Expired {
		return "spin time!"
	}
	if v.Days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", v.Days, v.Hours, v.Minutes, v.Seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", v.Hours, v.Minutes, v.Seconds)
}
