package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/angelmondragon/bikewish/internal/catalog"
	"github.com/angelmondragon/bikewish/internal/items"
	"github.com/angelmondragon/bikewish/internal/wishlists"
)

const dateLayout = "2006-01-02"

func (c *CLI) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

func (c *CLI) renderWishlists(list []wishlists.WishlistDTO) {
	if len(list) == 0 {
		fmt.Fprintln(c.out, "You have no wishlists yet.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "NAME\tITEMS\tCREATED")
	for _, wishlist := range list {
		fmt.Fprintf(w, "%s\t%d\t%s\n", wishlist.Name, wishlist.ItemCount, wishlist.CreatedAt.Local().Format(dateLayout))
	}
	_ = w.Flush()
}

func (c *CLI) renderItems(name string, list []items.ItemDTO) {
	fmt.Fprintf(c.out, "\n%s\n", name)
	if len(list) == 0 {
		fmt.Fprintln(c.out, "This wishlist is empty.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "PRODUCT ID\tNAME\tCATEGORY\tBRAND\tPRICE\tQTY\tOWNED")
	for _, item := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			item.ProductID,
			displayName(item),
			item.CategoryName,
			item.BrandName,
			item.ListPrice.StringFixed(2),
			item.Quantity,
			ownedLabel(item.Owned),
		)
	}
	_ = w.Flush()
}

func (c *CLI) renderSummary(summary items.Summary) {
	if summary.ItemCount == 0 {
		return
	}
	fmt.Fprintf(c.out, "%d item(s), %d owned, still to buy: %s\n",
		summary.ItemCount, summary.OwnedCount, summary.OutstandingValue.StringFixed(2))
}

func (c *CLI) renderProducts(products []catalog.ProductDTO) {
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products found.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tYEAR\tPRICE")
	for _, product := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			product.ID,
			product.Name,
			product.CategoryName,
			product.BrandName,
			product.ModelYear,
			product.ListPrice.StringFixed(2),
		)
	}
	_ = w.Flush()
}

func (c *CLI) renderCategories(categories []catalog.CategoryDTO) {
	w := c.table()
	fmt.Fprintln(w, "ID\tCATEGORY")
	for _, category := range categories {
		fmt.Fprintf(w, "%d\t%s\n", category.ID, category.Name)
	}
	_ = w.Flush()
}

func (c *CLI) renderBrands(brands []catalog.BrandDTO) {
	w := c.table()
	fmt.Fprintln(w, "ID\tBRAND")
	for _, brand := range brands {
		fmt.Fprintf(w, "%d\t%s\n", brand.ID, brand.Name)
	}
	_ = w.Flush()
}

func displayName(item items.ItemDTO) string {
	if !item.InCatalog {
		return fmt.Sprintf("product %d (no longer in catalog)", item.ProductID)
	}
	return item.ProductName
}

func ownedLabel(owned bool) string {
	if owned {
		return "owned"
	}
	return "not owned"
}
