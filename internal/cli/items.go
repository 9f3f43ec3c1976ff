package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/bikewish/internal/catalog"
	"github.com/angelmondragon/bikewish/internal/items"
	"github.com/angelmondragon/bikewish/internal/wishlists"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
)

// wishlistMenu loops over the actions available on one wishlist until the
// user goes back.
func (c *CLI) wishlistMenu(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	ctx = c.logg.WithWishlistID(ctx, wishlist.ID.String())
	for {
		if err := c.showWishlist(ctx, wishlist); err != nil {
			return err
		}
		c.printMenu(fmt.Sprintf("Wishlist %q", wishlist.Name), []string{
			"View products by category",
			"View products by brand",
			"Add item by product id",
			"Add item by product name",
			"Remove item",
			"Modify quantity",
			"Modify ownership",
			"Back",
		})

		choice, err := c.ask("Choose an option: ")
		if pkgerrors.Is(err, pkgerrors.CodeCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.productsByCategory(ctx)
		case "2":
			err = c.productsByBrand(ctx)
		case "3":
			err = c.addItemByID(ctx, wishlist)
		case "4":
			err = c.addItemByName(ctx, wishlist)
		case "5":
			err = c.removeItem(ctx, wishlist)
		case "6":
			err = c.modifyQuantity(ctx, wishlist)
		case "7":
			err = c.modifyOwnership(ctx, wishlist)
		case "8":
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}

		if errors.Is(err, errQuit) {
			return err
		}
		c.report(ctx, err)
	}
}

func (c *CLI) showWishlist(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	list, err := c.items.ListItems(ctx, wishlist.ID)
	if err != nil {
		return err
	}
	c.renderItems(wishlist.Name, list)
	c.renderSummary(items.Summarize(wishlist.ID, list))
	return nil
}

func (c *CLI) addItemByID(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	productID, err := c.askID("Product id: ", "product id")
	if err != nil {
		return err
	}
	return c.addProduct(ctx, wishlist, productID)
}

func (c *CLI) addItemByName(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	term, err := c.ask("Product name contains: ")
	if err != nil {
		return err
	}
	matches, err := c.catalog.SearchProducts(ctx, term)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(c.out, "No products match %q.\n", term)
		return nil
	}

	product := matches[0]
	if len(matches) > 1 {
		c.renderProducts(matches)
		productID, err := c.askID("Product id from the list: ", "product id")
		if err != nil {
			return err
		}
		found, ok := findProduct(matches, productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInvalidProduct, fmt.Sprintf("product %d is not in the search results", productID))
		}
		product = found
	}
	fmt.Fprintf(c.out, "Selected %s.\n", product.Name)
	return c.addProduct(ctx, wishlist, product.ID)
}

func (c *CLI) addProduct(ctx context.Context, wishlist wishlists.WishlistDTO, productID int64) error {
	quantity, err := c.askQuantity()
	if err != nil {
		return err
	}
	owned, err := c.askYesNo("Already owned? (y/n): ")
	if err != nil {
		return err
	}
	item, err := c.items.AddItem(ctx, items.AddItemRequest{
		WishlistID: wishlist.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Owned:      owned,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %s x%d.\n", displayName(item), item.Quantity)
	return nil
}

// pickItem asks for a product id and resolves it to the wishlist's item.
func (c *CLI) pickItem(ctx context.Context, wishlist wishlists.WishlistDTO) (items.ItemDTO, error) {
	productID, err := c.askID("Product id on this wishlist: ", "product id")
	if err != nil {
		return items.ItemDTO{}, err
	}
	return c.items.FindByProduct(ctx, wishlist.ID, productID)
}

func (c *CLI) removeItem(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	item, err := c.pickItem(ctx, wishlist)
	if err != nil {
		return err
	}
	if err := c.items.RemoveItem(ctx, item.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Removed %s.\n", displayName(item))
	return nil
}

func (c *CLI) modifyQuantity(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	item, err := c.pickItem(ctx, wishlist)
	if err != nil {
		return err
	}
	quantity, err := c.askQuantity()
	if err != nil {
		return err
	}
	updated, err := c.items.UpdateQuantity(ctx, items.UpdateQuantityRequest{ItemID: item.ID, Quantity: quantity})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s quantity is now %d.\n", displayName(updated), updated.Quantity)
	return nil
}

func (c *CLI) modifyOwnership(ctx context.Context, wishlist wishlists.WishlistDTO) error {
	item, err := c.pickItem(ctx, wishlist)
	if err != nil {
		return err
	}
	owned, err := c.askYesNo("Owned? (y/n): ")
	if err != nil {
		return err
	}
	updated, err := c.items.SetOwned(ctx, items.SetOwnedRequest{ItemID: item.ID, Owned: owned})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s marked as %s.\n", displayName(updated), ownedLabel(updated.Owned))
	return nil
}

func findProduct(products []catalog.ProductDTO, id int64) (catalog.ProductDTO, bool) {
	for _, product := range products {
		if product.ID == id {
			return product, true
		}
	}
	return catalog.ProductDTO{}, false
}
