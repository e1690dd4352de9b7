package domain

import "time"

// InstallmentPlan is a credit-card purchase split over equal monthly
// payments. The per-month amount is derived from the total; any rounding
// remainder lands on the first payment so the sum always equals the total.
type InstallmentPlan struct {
	ID            string
	UserID        string
	Description   string
	TotalCents    int64
	MonthsTotal   int
	MonthsPaid    int
	FirstDueMonth string  // "YYYY-MM"
	CategoryID    *string // expense category applied to generated transactions
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Settled reports whether every installment has been paid.
func (p InstallmentPlan) Settled() bool {
	return p.MonthsPaid >= p.MonthsTotal
}

// AmountForMonth returns the cents due for the n-th payment (0-based).
func (p InstallmentPlan) AmountForMonth(n int) int64 {
	base := p.TotalCents / int64(p.MonthsTotal)
	if n == 0 {
		return base + p.TotalCents%int64(p.MonthsTotal)
	}
	return base
}

// DueMonth returns the month key of the n-th payment (0-based).
func (p InstallmentPlan) DueMonth(n int) string {
	t, err := time.Parse("2006-01", p.FirstDueMonth)
	if err != nil {
		return p.FirstDueMonth
	}
	return t.AddDate(0, n, 0).Format("2006-01")
}
