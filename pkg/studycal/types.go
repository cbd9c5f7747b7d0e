package studycal

import (
	"context"
	"time"
)

// BookSessionRequest is the input for booking a study-session block.
type BookSessionRequest struct {
	CalendarID string
	Title      string
	Notes      string
	StartTime  time.Time
	EndTime    time.Time
	Timezone   string // e.g. "Australia/Sydney"
}

// Session is a simplified representation of a booked study session.
type Session struct {
	ID        string
	Title     string
	Notes     string
	HTMLLink  string
	StartTime time.Time
	EndTime   time.Time
}

// Scheduler books study sessions on a calendar.
type Scheduler interface {
	BookSession(ctx context.Context, req BookSessionRequest) (*Session, error)
}
