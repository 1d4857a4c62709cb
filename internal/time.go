package internal

import "time"

// TimeVariables publishes wall-clock and animation time into reserved slots.
type TimeVariables struct {
	clock func() time.Time

	start time.Time
	last  time.Time
}

func NewTimeVariables(clock func() time.Time) *TimeVariables {
	if clock == nil {
		clock = time.Now
	}
	return &TimeVariables{clock: clock}
}

func (t *TimeVariables) Update(ctx *Context) {
	now := t.clock()
	if t.start.IsZero() {
		t.start = now
		t.last = now
	}

	s := ctx.state
	_, offset := now.Zone()
	elapsed := float32(now.Sub(t.start).Seconds())

	s.SetFloat(IDContinuousSec, elapsed)
	s.SetFloat(IDTimeInSec, float32(now.Second()))
	s.SetFloat(IDTimeInMin, float32(now.Hour()*60+now.Minute()))
	s.SetFloat(IDTimeInHr, float32(now.Hour()))
	s.SetFloat(IDCalendarMonth, float32(now.Month()))
	s.SetFloat(IDDayOfMonth, float32(now.Day()))
	s.SetFloat(IDWeekDay, float32(now.Weekday()))
	s.SetFloat(IDOffsetToUTC, float32(offset))
	s.SetFloat(IDAnimationTime, elapsed)
	s.SetFloat(IDAnimationDeltaTime, float32(now.Sub(t.last).Seconds()))
	s.SetLong(IDEpochSecond, now.Unix())

	t.last = now
}

// Restart makes the next update the new animation origin.
func (t *TimeVariables) Restart() {
	t.start = time.Time{}
}
