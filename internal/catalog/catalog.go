// Package catalog resolves classification verdicts to persisted expense
// types, creating missing ones on demand.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
	"github.com/Garcia3528/notalfiscalIA/internal/service"
)

// Catalog maps classifier verdicts onto expense-type rows. It never fails a
// classification for lack of a row: missing types are created.
type Catalog struct {
	store  service.TypeStore
	logger *slog.Logger
}

// New builds a catalog over a type store.
func New(store service.TypeStore, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{store: store, logger: logger}
}

// ResolveOrCreate finds the expense type for a classification result. The
// subcategory name is matched case-insensitively; when the verdict carries no
// subcategory the first active type in the category is used; when nothing
// exists a type is created. Lost creation races are resolved by re-fetching
// the winner's row.
func (c *Catalog) ResolveOrCreate(ctx context.Context, result model.ClassificationResult) (*model.ExpenseType, error) {
	if !result.Category.IsValid() {
		return nil, fmt.Errorf("cannot resolve expense type: invalid category %q", result.Category)
	}

	if result.Subcategory != "" {
		return c.resolveByName(ctx, result.Subcategory, result.Category)
	}

	types, err := c.store.GetExpenseTypesByCategory(ctx, result.Category)
	if err != nil {
		return nil, fmt.Errorf("listing types for category %q: %w", result.Category, err)
	}
	if len(types) > 0 {
		return &types[0], nil
	}

	return c.resolveByName(ctx, fmt.Sprintf("Despesa - %s", result.Category), result.Category)
}

func (c *Catalog) resolveByName(ctx context.Context, name string, category model.Category) (*model.ExpenseType, error) {
	et, err := c.store.GetExpenseTypeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("looking up expense type %q: %w", name, err)
	}
	if et != nil {
		return et, nil
	}

	created, err := c.store.CreateExpenseType(ctx, &model.ExpenseType{
		Name:        name,
		Description: fmt.Sprintf("Criado automaticamente pela classificação (%s)", category),
		Category:    category,
	})
	if err == nil {
		c.logger.Info("created expense type for classification", "name", name, "category", category)
		return created, nil
	}

	// Another process may have created the same name between our lookup and
	// insert. Their row is as good as ours.
	if errors.Is(err, common.ErrDuplicateEntry) {
		et, fetchErr := c.store.GetExpenseTypeByName(ctx, name)
		if fetchErr != nil {
			return nil, fmt.Errorf("re-fetching expense type %q after duplicate: %w", name, fetchErr)
		}
		if et == nil {
			return nil, fmt.Errorf("expense type %q reported duplicate but not found", name)
		}
		return et, nil
	}

	return nil, fmt.Errorf("creating expense type %q: %w", name, err)
}

// List returns the catalog contents ordered by category then name.
func (c *Catalog) List(ctx context.Context, activeOnly bool) ([]model.ExpenseType, error) {
	return c.store.ListExpenseTypes(ctx, activeOnly)
}

// Search matches types by substring on name, description or category.
func (c *Catalog) Search(ctx context.Context, term string) ([]model.ExpenseType, error) {
	return c.store.SearchExpenseTypes(ctx, term)
}

// Categories returns the distinct categories with active types.
func (c *Catalog) Categories(ctx context.Context) ([]model.Category, error) {
	return c.store.ExpenseCategories(ctx)
}

// SetActive toggles a type's active flag.
func (c *Catalog) SetActive(ctx context.Context, id int64, active bool) error {
	return c.store.SetExpenseTypeActive(ctx, id, active)
}
