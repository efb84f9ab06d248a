package allergy

import (
	"context"
	"sort"
	"strings"
)

// DishResolver resolves a dish to its ingredient id set.
type DishResolver interface {
	IngredientIDsForDish(ctx context.Context, dishID int) ([]int, error)
}

// MenuResolver resolves a menu to the union of ingredient ids across
// all of its dishes.
type MenuResolver interface {
	IngredientIDsForMenu(ctx context.Context, menuID int) ([]int, error)
}

// IngredientNamer resolves ingredient ids to display names.
type IngredientNamer interface {
	IngredientName(ctx context.Context, ingredientID int) (string, error)
}

// NopResolver is the degraded-mode collaborator: it resolves everything
// to "no ingredients", which the validator reads as safe. Wiring it in
// place of a real catalog makes the fail-open policy explicit instead of
// a nil check at every call site.
type NopResolver struct{}

func (NopResolver) IngredientIDsForDish(context.Context, int) ([]int, error) { return nil, nil }
func (NopResolver) IngredientIDsForMenu(context.Context, int) ([]int, error) { return nil, nil }
func (NopResolver) IngredientName(context.Context, int) (string, error) { return "", nil }

// Validator answers whether a dish, menu or ingredient list is safe for
// a child, by intersecting the resolved ingredient set with the child's
// allergy registry.
//
// Degraded mode is deliberate: when a resolver is the NopResolver, or a
// resolver call fails, the validator answers "safe" rather than block
// meal recording. A child with no allergy records is always safe.
type Validator struct {
	registry Repository
	dishes   DishResolver
	menus    MenuResolver
	namer    IngredientNamer
}

func NewValidator(registry Repository, dishes DishResolver, menus MenuResolver, namer IngredientNamer) *Validator {
	if dishes == nil {
		dishes = NopResolver{}
	}
	if menus == nil {
		menus = NopResolver{}
	}
	if namer == nil {
		namer = NopResolver{}
	}
	return &Validator{registry: registry, dishes: dishes, menus: menus, namer: namer}
}

func (v *Validator) registrySet(ctx context.Context, childID int) (map[int]bool, error) {
	ids, err := v.registry.IngredientIDsForChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// IsSafeIngredients tests an explicit ingredient id list.
func (v *Validator) IsSafeIngredients(ctx context.Context, childID int, ingredientIDs []int) (bool, error) {
	registry, err := v.registrySet(ctx, childID)
	if err != nil {
		return false, err
	}
	if len(registry) == 0 {
		return true, nil
	}
	for _, id := range ingredientIDs {
		if registry[id] {
			return false, nil
		}
	}
	return true, nil
}

func (v *Validator) IsSafeDish(ctx context.Context, childID, dishID int) (bool, error) {
	registry, err := v.registrySet(ctx, childID)
	if err != nil {
		return false, err
	}
	if len(registry) == 0 {
		return true, nil
	}

	ids, err := v.dishes.IngredientIDsForDish(ctx, dishID)
	if err != nil {
		// fail open: an unavailable catalog must not block operation
		return true, nil
	}
	for _, id := range ids {
		if registry[id] {
			return false, nil
		}
	}
	return true, nil
}

func (v *Validator) IsSafeMenu(ctx context.Context, childID, menuID int) (bool, error) {
	registry, err := v.registrySet(ctx, childID)
	if err != nil {
		return false, err
	}
	if len(registry) == 0 {
		return true, nil
	}

	ids, err := v.menus.IngredientIDsForMenu(ctx, menuID)
	if err != nil {
		// fail open: an unavailable catalog must not block operation
		return true, nil
	}
	for _, id := range ids {
		if registry[id] {
			return false, nil
		}
	}
	return true, nil
}

// UnsafeIngredientsForDish names the dish ingredients the child is
// registered against. Names are compared case-insensitively and
// returned sorted.
func (v *Validator) UnsafeIngredientsForDish(ctx context.Context, childID, dishID int) ([]string, error) {
	ids, err := v.dishes.IngredientIDsForDish(ctx, dishID)
	if err != nil {
		return nil, nil
	}
	return v.unsafeNames(ctx, childID, ids)
}

// UnsafeIngredientsForMenu names the offending ingredients across every
// dish in the menu.
func (v *Validator) UnsafeIngredientsForMenu(ctx context.Context, childID, menuID int) ([]string, error) {
	ids, err := v.menus.IngredientIDsForMenu(ctx, menuID)
	if err != nil {
		return nil, nil
	}
	return v.unsafeNames(ctx, childID, ids)
}

func (v *Validator) unsafeNames(ctx context.Context, childID int, ingredientIDs []int) ([]string, error) {
	registry, err := v.registrySet(ctx, childID)
	if err != nil {
		return nil, err
	}
	if len(registry) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, id := range ingredientIDs {
		if !registry[id] {
			continue
		}
		name, err := v.namer.IngredientName(ctx, id)
		if err != nil || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
