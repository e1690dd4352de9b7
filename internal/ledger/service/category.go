package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/idx"
)

// ErrNameTaken signals a duplicate category name for the same user.
var ErrNameTaken = errors.New("category_name_taken")

type CategoryService struct {
	Store store.Store
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name  string
	Kind  domain.EntryKind
	Color string
}

func (in *CategoryInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationErr("name is required")
	}
	if !in.Kind.Valid() {
		return validationErr("kind must be income or expense")
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (domain.Category, error) {
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}

	now := time.Now().UTC()
	c := domain.Category{
		ID:        idx.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Kind:      in.Kind,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Categories().CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrNameTaken
		}
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (domain.Category, error) {
	return s.Store.Categories().GetCategory(ctx, userID, id)
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx, userID)
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, in CategoryInput) (domain.Category, error) {
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}

	c, err := s.Store.Categories().GetCategory(ctx, userID, id)
	if err != nil {
		return domain.Category{}, err
	}

	c.Name = in.Name
	c.Kind = in.Kind
	c.Color = in.Color
	c.UpdatedAt = time.Now().UTC()

	if err := s.Store.Categories().UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrNameTaken
		}
		return domain.Category{}, err
	}
	return c, nil
}

// Delete removes the category. Transactions and installment plans that point
// at it are kept and fall back to uncategorised via the schema.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	return s.Store.Categories().DeleteCategory(ctx, userID, id)
}
