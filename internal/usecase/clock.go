package usecase

import (
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
)

// Clock supplies "today" in the challenge time zone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return ranking.TruncateDay(now(), loc)
}
