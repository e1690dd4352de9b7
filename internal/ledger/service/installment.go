package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/idx"
)

// ErrPlanSettled rejects payments against a fully paid plan.
var ErrPlanSettled = errors.New("plan_settled")

type InstallmentService struct {
	Store store.Store
}

// InstallmentInput carries the writable plan fields.
type InstallmentInput struct {
	Description   string
	TotalCents    int64
	MonthsTotal   int
	FirstDueMonth string
	CategoryID    *string
}

func (in *InstallmentInput) validate() error {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return validationErr("description is required")
	}
	if in.TotalCents <= 0 {
		return validationErr("total must be positive")
	}
	if in.MonthsTotal <= 0 {
		return validationErr("months must be positive")
	}
	if err := domain.ValidateMonth(in.FirstDueMonth); err != nil {
		return validationErr("%s", err)
	}
	return nil
}

func (s *InstallmentService) Create(ctx context.Context, userID string, in InstallmentInput) (domain.InstallmentPlan, error) {
	if err := in.validate(); err != nil {
		return domain.InstallmentPlan{}, err
	}

	if in.CategoryID != nil {
		c, err := s.Store.Categories().GetCategory(ctx, userID, *in.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.InstallmentPlan{}, validationErr("unknown category")
			}
			return domain.InstallmentPlan{}, err
		}
		if c.Kind != domain.KindExpense {
			return domain.InstallmentPlan{}, validationErr("installment category must be an expense category")
		}
	}

	now := time.Now().UTC()
	p := domain.InstallmentPlan{
		ID:            idx.New().String(),
		UserID:        userID,
		Description:   in.Description,
		TotalCents:    in.TotalCents,
		MonthsTotal:   in.MonthsTotal,
		FirstDueMonth: in.FirstDueMonth,
		CategoryID:    in.CategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Store.Installments().CreateInstallmentPlan(ctx, p); err != nil {
		return domain.InstallmentPlan{}, err
	}
	return p, nil
}

func (s *InstallmentService) Get(ctx context.Context, userID, id string) (domain.InstallmentPlan, error) {
	return s.Store.Installments().GetInstallmentPlan(ctx, userID, id)
}

func (s *InstallmentService) List(ctx context.Context, userID string) ([]domain.InstallmentPlan, error) {
	return s.Store.Installments().ListInstallmentPlans(ctx, userID)
}

func (s *InstallmentService) Delete(ctx context.Context, userID, id string) error {
	return s.Store.Installments().DeleteInstallmentPlan(ctx, userID, id)
}

// Pay records the next installment: it books the month's expense transaction
// and bumps the paid counter in one transaction, so a crash between the two
// can never double-charge or lose a payment.
func (s *InstallmentService) Pay(ctx context.Context, userID, id string) (domain.InstallmentPlan, error) {
	var out domain.InstallmentPlan

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Installments().GetInstallmentPlan(ctx, userID, id)
		if err != nil {
			return err
		}
		if p.Settled() {
			return ErrPlanSettled
		}

		n := p.MonthsPaid
		now := time.Now().UTC()

		t := domain.Transaction{
			ID:          idx.New().String(),
			UserID:      userID,
			CategoryID:  p.CategoryID,
			Description: fmt.Sprintf("%s (%d/%d)", p.Description, n+1, p.MonthsTotal),
			AmountCents: p.AmountForMonth(n),
			Kind:        domain.KindExpense,
			OccurredOn:  now.Truncate(24 * time.Hour),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Transactions().CreateTransaction(ctx, t); err != nil {
			return err
		}

		if err := tx.Installments().SetMonthsPaid(ctx, userID, p.ID, n+1); err != nil {
			return err
		}

		p.MonthsPaid = n + 1
		p.UpdatedAt = now
		out = p
		return nil
	})
	if err != nil {
		return domain.InstallmentPlan{}, err
	}
	return out, nil
}
