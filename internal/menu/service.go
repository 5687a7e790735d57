package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service exposes menu browsing and staff maintenance operations.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	// GetAvailable is Get that also rejects items that cannot be ordered.
	GetAvailable(ctx context.Context, id string) (*models.MenuItem, error)
	Add(ctx context.Context, input ItemInput) (*models.MenuItem, error)
	Update(ctx context.Context, id string, input ItemInput) (*models.MenuItem, error)
	SetAvailability(ctx context.Context, id string, status enums.MenuItemStatus) (*models.MenuItem, error)
}

// ItemInput is the full writable shape of a menu item.
type ItemInput struct {
	Name        string
	Description string
	Price       int64
	Category    enums.MenuCategory
	ImageURL    string
	Ingredients []string
	Status      enums.MenuItemStatus
	PrepTime    int
	Calories    int
	Tags        []string
	Rating      float64
	TotalOrders int
}

type service struct {
	repo *Repository
	ids  ids.Generator
	logg *logger.Logger
}

// NewService constructs a menu service instance.
func NewService(repo *Repository, gen ids.Generator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if gen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, ids: gen, logg: logg}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": filter.Category})
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"status": filter.Status})
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list menu")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return item, nil
}

func (s *service) GetAvailable(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "menu item is unavailable").
			WithDetails(map[string]any{"itemId": item.ID})
	}
	return item, nil
}

func (s *service) Add(ctx context.Context, input ItemInput) (*models.MenuItem, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	item := input.toModel(s.ids.New(ids.PrefixMenuItem))
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create menu item")
	}
	s.logg.Info(s.logg.WithField(ctx, "item_id", item.ID), "menu.item_added")
	return item, nil
}

func (s *service) Update(ctx context.Context, id string, input ItemInput) (*models.MenuItem, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	item := input.toModel(strings.TrimSpace(id))
	if err := s.repo.Replace(ctx, item); err != nil {
		return nil, mapLookupError(err, id)
	}
	s.logg.Info(s.logg.WithField(ctx, "item_id", item.ID), "menu.item_updated")
	return s.Get(ctx, item.ID)
}

func (s *service) SetAvailability(ctx context.Context, id string, status enums.MenuItemStatus) (*models.MenuItem, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"status": status})
	}
	if err := s.repo.UpdateStatus(ctx, strings.TrimSpace(id), status); err != nil {
		return nil, mapLookupError(err, id)
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"item_id": id, "status": status})
	s.logg.Info(ctx, "menu.availability_changed")
	return s.Get(ctx, id)
}

func validateInput(input *ItemInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero").
			WithDetails(map[string]any{"price": input.Price})
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": input.Category})
	}
	if input.Status == "" {
		input.Status = enums.MenuItemStatusAvailable
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"status": input.Status})
	}
	if input.PrepTime < 0 || input.Calories < 0 || input.TotalOrders < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "prep time, calories and total orders cannot be negative")
	}
	return nil
}

func (in ItemInput) toModel(id string) *models.MenuItem {
	ingredients := in.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.MenuItem{
		ID:          id,
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Ingredients: ingredients,
		Status:      in.Status,
		PrepTime:    in.PrepTime,
		Calories:    in.Calories,
		Tags:        tags,
		Rating:      in.Rating,
		TotalOrders: in.TotalOrders,
	}
}

func mapLookupError(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").
			WithDetails(map[string]any{"itemId": id})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load menu item")
}
