package domain

import "time"

// Assignment links a client to a membership plan for a bounded time window.
// Rows are never mutated: an assignment expires once now passes EndDate and a
// renewal is always a new row.
type Assignment struct {
	ID           int64     `db:"id"`
	MemberID     int64     `db:"member_id"`
	MembershipID int64     `db:"membership_id"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
}

func (a *Assignment) IsExpired(now time.Time) bool {
	return a.EndDate.Before(now)
}

// AssignmentDetail is an assignment joined with the names callers want to
// display alongside it.
type AssignmentDetail struct {
	Assignment
	MemberName string  `db:"member_name"`
	PlanType   string  `db:"plan_type"`
	PlanPrice  float64 `db:"plan_price"`
}
