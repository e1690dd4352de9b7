package domain

import (
	"fmt"
	"regexp"
	"time"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalReached   GoalStatus = "reached"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) Valid() bool {
	return s == GoalActive || s == GoalReached || s == GoalAbandoned
}

// Goal is a savings or purchase target. MonthlyReserveCents is the amount the
// user intends to put aside each month; the reserve worker materialises a
// MonthlyReserve row for the current month from it.
type Goal struct {
	ID                  string
	UserID              string
	Name                string
	TargetCents         int64
	MonthlyReserveCents int64 // 0 disables reserve planning for this goal
	Status              GoalStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MonthlyReserve tracks one month of saving toward a goal. One row per
// (goal, month); PlannedCents comes from the goal, SavedCents from the user.
type MonthlyReserve struct {
	ID           string
	GoalID       string
	Month        string // "YYYY-MM"
	PlannedCents int64
	SavedCents   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidateMonth checks the "YYYY-MM" month key format.
func ValidateMonth(month string) error {
	if !monthRe.MatchString(month) {
		return fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}
	return nil
}

// MonthOf formats t as a month key in UTC.
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}
