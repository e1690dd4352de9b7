package http

import (
	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

const dateLayout = "2006-01-02"

func toUserResponse(u domain.User) ledgersdk.UserResponse {
	return ledgersdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func toTokenResponse(u domain.User, pair *domain.TokenPair) ledgersdk.TokenResponse {
	return ledgersdk.TokenResponse{
		User:         toUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}

func toCategoryResponse(c domain.Category) ledgersdk.CategoryResponse {
	return ledgersdk.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTransactionResponse(t domain.Transaction) ledgersdk.TransactionResponse {
	return ledgersdk.TransactionResponse{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		AmountCents: t.AmountCents,
		Kind:        string(t.Kind),
		OccurredOn:  t.OccurredOn.Format(dateLayout),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTransactionResponses(ts []domain.Transaction) []ledgersdk.TransactionResponse {
	out := make([]ledgersdk.TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

func toGoalResponse(g service.GoalWithProgress) ledgersdk.GoalResponse {
	return ledgersdk.GoalResponse{
		ID:                  g.ID,
		Name:                g.Name,
		TargetCents:         g.TargetCents,
		MonthlyReserveCents: g.MonthlyReserveCents,
		SavedCents:          g.SavedCents,
		Status:              string(g.Status),
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func toReserveResponse(r domain.MonthlyReserve) ledgersdk.ReserveResponse {
	return ledgersdk.ReserveResponse{
		ID:           r.ID,
		GoalID:       r.GoalID,
		Month:        r.Month,
		PlannedCents: r.PlannedCents,
		SavedCents:   r.SavedCents,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toInstallmentResponse(p domain.InstallmentPlan) ledgersdk.InstallmentResponse {
	return ledgersdk.InstallmentResponse{
		ID:            p.ID,
		Description:   p.Description,
		TotalCents:    p.TotalCents,
		MonthsTotal:   p.MonthsTotal,
		MonthsPaid:    p.MonthsPaid,
		FirstDueMonth: p.FirstDueMonth,
		CategoryID:    p.CategoryID,
		Settled:       p.Settled(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toNotificationResponse(n domain.Notification) ledgersdk.NotificationResponse {
	return ledgersdk.NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
