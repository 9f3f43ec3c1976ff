package cli

import (
	"context"

	"github.com/angelmondragon/bikewish/internal/catalog"
)

// browseProducts lists the whole catalog or narrows it by category or brand.
func (c *CLI) browseProducts(ctx context.Context) error {
	c.printMenu("Browse products", []string{"All products", "By category", "By brand"})
	choice, err := c.ask("Choose an option: ")
	if err != nil {
		return err
	}
	switch choice {
	case "2":
		return c.productsByCategory(ctx)
	case "3":
		return c.productsByBrand(ctx)
	}
	return c.listProducts(ctx, catalog.ProductFilter{})
}

func (c *CLI) productsByCategory(ctx context.Context) error {
	categories, err := c.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	c.renderCategories(categories)
	id, err := c.askID("Category id: ", "category id")
	if err != nil {
		return err
	}
	return c.listProducts(ctx, catalog.ByCategory(id))
}

func (c *CLI) productsByBrand(ctx context.Context) error {
	brands, err := c.catalog.ListBrands(ctx)
	if err != nil {
		return err
	}
	c.renderBrands(brands)
	id, err := c.askID("Brand id: ", "brand id")
	if err != nil {
		return err
	}
	return c.listProducts(ctx, catalog.ByBrand(id))
}

func (c *CLI) listProducts(ctx context.Context, filter catalog.ProductFilter) error {
	products, err := c.catalog.ListProducts(ctx, filter)
	if err != nil {
		return err
	}
	c.renderProducts(products)
	return nil
}
