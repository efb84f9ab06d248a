package menu

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"guarderia/internal/catalog"
	"guarderia/internal/faults"
)

type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

// SafetyChecker answers whether a menu is safe for a child. Implemented
// by the allergy validator; wired in main.
type SafetyChecker interface {
	IsSafeMenu(ctx context.Context, childID, menuID int) (bool, error)
}

type Service struct {
	repo    Repository
	catalog *catalog.Service
	storage Storage
}

func NewService(repo Repository, cat *catalog.Service, storage Storage) *Service {
	return &Service{repo: repo, catalog: cat, storage: storage}
}

// --------------------------------------------------
// Create menu
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, name, description string, price decimal.Decimal, dishIDs []int) (*Menu, error) {
	if name == "" {
		return nil, faults.Invalidf("menu name is required")
	}
	if price.IsNegative() {
		return nil, faults.Invalidf("menu price cannot be negative")
	}
	if len(dishIDs) == 0 {
		return nil, faults.Invalidf("a menu needs at least one dish")
	}

	dishes, err := s.composeDishes(ctx, dishIDs)
	if err != nil {
		return nil, err
	}

	m := &Menu{
		Name:        name,
		Description: description,
		Price:       price,
		Active:      true,
		Dishes:      dishes,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// composeDishes validates dish ids and assigns positions; position 1 is
// the main dish.
func (s *Service) composeDishes(ctx context.Context, dishIDs []int) ([]MenuDish, error) {
	seen := make(map[int]bool, len(dishIDs))
	dishes := make([]MenuDish, 0, len(dishIDs))
	for i, dishID := range dishIDs {
		if seen[dishID] {
			return nil, faults.Invalidf("duplicate dish %d in menu", dishID)
		}
		seen[dishID] = true
		if _, err := s.catalog.GetDish(ctx, dishID); err != nil {
			return nil, err
		}
		dishes = append(dishes, MenuDish{
			DishID:   dishID,
			Position: i + 1,
			IsMain:   i == 0,
		})
	}
	return dishes, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Menu, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, onlyActive bool) ([]*Menu, error) {
	return s.repo.List(ctx, onlyActive)
}

func (s *Service) Update(ctx context.Context, id int, name, description string, price decimal.Decimal) (*Menu, error) {
	if name == "" {
		return nil, faults.Invalidf("menu name is required")
	}
	if price.IsNegative() {
		return nil, faults.Invalidf("menu price cannot be negative")
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Name = name
	m.Description = description
	m.Price = price
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) SetActive(ctx context.Context, id int, active bool) (*Menu, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Active = active
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// Dish composition
// --------------------------------------------------
func (s *Service) AddDish(ctx context.Context, menuID, dishID int) (*Menu, error) {
	m, err := s.repo.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetDish(ctx, dishID); err != nil {
		return nil, err
	}
	for _, md := range m.Dishes {
		if md.DishID == dishID {
			return nil, faults.Conflictf("menu %d already contains dish %d", menuID, dishID)
		}
	}

	m.Dishes = append(m.Dishes, MenuDish{
		DishID:   dishID,
		Position: len(m.Dishes) + 1,
		IsMain:   len(m.Dishes) == 0,
	})
	if err := s.repo.ReplaceDishes(ctx, menuID, m.Dishes); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveDish rejects removing the last dish; a menu never goes empty.
// Remaining dishes are re-sequenced so position 1 stays the main dish.
func (s *Service) RemoveDish(ctx context.Context, menuID, dishID int) (*Menu, error) {
	m, err := s.repo.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if len(m.Dishes) <= 1 {
		return nil, faults.Conflictf("cannot remove the last dish of menu %d", menuID)
	}

	kept := make([]MenuDish, 0, len(m.Dishes)-1)
	found := false
	for _, md := range m.Dishes {
		if md.DishID == dishID {
			found = true
			continue
		}
		kept = append(kept, md)
	}
	if !found {
		return nil, faults.NotFoundf("menu %d has no dish %d", menuID, dishID)
	}

	for i := range kept {
		kept[i].Position = i + 1
		kept[i].IsMain = i == 0
	}

	if err := s.repo.ReplaceDishes(ctx, menuID, kept); err != nil {
		return nil, err
	}
	m.Dishes = kept
	return m, nil
}

// --------------------------------------------------
// Photo upload
// --------------------------------------------------
func (s *Service) UploadPhoto(ctx context.Context, menuID int, file multipart.File, filename string) (*Menu, error) {
	m, err := s.repo.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return nil, faults.Invalidf("invalid file")
	}

	key := fmt.Sprintf("menus/%d/%s%s", menuID, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return nil, err
	}

	m.PhotoURL = &url
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// Safe menus for a child
// --------------------------------------------------

// ListSafeForChild filters active menus through the allergy validator.
func (s *Service) ListSafeForChild(ctx context.Context, checker SafetyChecker, childID int) ([]*Menu, error) {
	menus, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	safe := make([]*Menu, 0, len(menus))
	for _, m := range menus {
		ok, err := checker.IsSafeMenu(ctx, childID, m.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			safe = append(safe, m)
		}
	}
	return safe, nil
}

// --------------------------------------------------
// Composition lookup (allergy cascade)
// --------------------------------------------------

// IngredientIDsForMenu unions ingredient ids across every dish in the
// menu, not just the main dish.
func (s *Service) IngredientIDsForMenu(ctx context.Context, menuID int) ([]int, error) {
	m, err := s.repo.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var ids []int
	for _, md := range m.Dishes {
		dishIngredients, err := s.catalog.IngredientIDsForDish(ctx, md.DishID)
		if err != nil {
			return nil, err
		}
		for _, id := range dishIngredients {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
