package scheduler

import (
	"context"
	"time"

	"RecruitIntel/internal/ports"
)

// ClockScheduler fires the daily job every day at a fixed hour and the
// weekly job on Sundays at its own hour, both in the configured location.
// It polls once a minute; a run-key per job guards against double fires.
type ClockScheduler struct {
	location   *time.Location
	dailyHour  int
	weeklyHour int
	stop       chan struct{}
}

var _ ports.Scheduler = (*ClockScheduler)(nil)

// NewClockScheduler builds the scheduler for the given cadence.
func NewClockScheduler(loc *time.Location, dailyHour, weeklyHour int) *ClockScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &ClockScheduler{
		location:   loc,
		dailyHour:  dailyHour,
		weeklyHour: weeklyHour,
	}
}

// Start launches the polling goroutine. Calling Start twice is a no-op.
func (c *ClockScheduler) Start(ctx context.Context, daily, weekly func(time.Time)) error {
	if c.stop != nil {
		return nil
	}

	c.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		var lastDaily, lastWeekly string
		for {
			select {
			case t := <-ticker.C:
				local := t.In(c.location)
				key := local.Format("2006-01-02")

				if daily != nil && local.Hour() == c.dailyHour && local.Minute() == 0 && key != lastDaily {
					lastDaily = key
					daily(local)
				}
				if weekly != nil && local.Weekday() == time.Sunday &&
					local.Hour() == c.weeklyHour && local.Minute() == 0 && key != lastWeekly {
					lastWeekly = key
					weekly(local)
				}
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the polling goroutine.
func (c *ClockScheduler) Stop(ctx context.Context) error {
	if c.stop == nil {
		return nil
	}
	close(c.stop)
	c.stop = nil
	return nil
}
