package cli

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/validate"
)

func (a *App) loadCategories(ctx context.Context) error {
	cats, err := a.api.Categories(ctx).Get()
	if err != nil {
		a.report(ctx, "load categories", err)
		return err
	}
	a.categories.SetItems(cats)
	return nil
}

func (a *App) renderCategories() {
	if q := a.categories.Filter().Query; q != "" {
		a.printf("Filter: %q\n", q)
	}

	p := a.categories.Current()
	if p.Total == 0 {
		a.println("No categories found.")
		return
	}
	for _, c := range p.Items {
		a.printf("#%d %s\n", c.ID, c.Name)
	}
	a.printf("Page %d of %d, %d category(ies)\n", p.Page, p.TotalPages, p.Total)
}

func (a *App) findCategory(id int64) (api.Category, bool) {
	for _, c := range a.categories.Items() {
		if c.ID == id {
			return c, true
		}
	}
	a.println("Category not found:", id)
	return api.Category{}, false
}

func (a *App) addCategory(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	if err := validate.Category(name); err != nil {
		a.report(ctx, "create category", err)
		return err
	}
	if _, err := a.api.CreateCategory(ctx, api.CategoryInput{Name: name}).Get(); err != nil {
		a.report(ctx, "create category", err)
		return err
	}
	a.println("Category created")
	return a.reloadCategories(ctx)
}

func (a *App) editCategory(ctx context.Context, id int64) error {
	c, ok := a.findCategory(id)
	if !ok {
		return errNotFound
	}
	name, err := getSimpleText(a.reader, "Name"+hint(c.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = c.Name
	}
	if err := validate.Category(name); err != nil {
		a.report(ctx, "update category", err)
		return err
	}
	if _, err := a.api.UpdateCategory(ctx, id, api.CategoryInput{Name: name}).Get(); err != nil {
		a.report(ctx, "update category", err)
		return err
	}
	a.println("Category updated")
	return a.reloadCategories(ctx)
}

func (a *App) deleteCategory(ctx context.Context, id int64) error {
	c, ok := a.findCategory(id)
	if !ok {
		return errNotFound
	}
	yes, err := getConfirmation(a.reader, "Delete category \""+c.Name+"\"?", a.out)
	if err != nil || !yes {
		return err
	}
	if _, err := a.api.DeleteCategory(ctx, id).Get(); err != nil {
		a.report(ctx, "delete category", err)
		return err
	}
	a.println("Category deleted")
	return a.reloadCategories(ctx)
}

// showCategory fetches the category fresh from the server.
func (a *App) showCategory(ctx context.Context, id int64) error {
	c, err := a.api.Category(ctx, id).Get()
	if err != nil {
		a.report(ctx, "show category", err)
		return err
	}
	a.printf("#%d %s\nCreated: %s\n", c.ID, c.Name, orDefault(c.CreatedAt, "unknown"))
	return nil
}

func (a *App) reloadCategories(ctx context.Context) error {
	if err := a.loadCategories(ctx); err != nil {
		return err
	}
	a.renderCategories()
	return nil
}
