package cli

import (
	"context"
	"fmt"

	"github.com/angelmondragon/bikewish/internal/wishlists"
)

func (c *CLI) viewWishlists(ctx context.Context) error {
	list, err := c.wishlists.List(ctx)
	if err != nil {
		return err
	}
	c.renderWishlists(list)
	return nil
}

func (c *CLI) addWishlist(ctx context.Context) error {
	name, err := c.ask("New wishlist name: ")
	if err != nil {
		return err
	}
	created, err := c.wishlists.Create(ctx, wishlists.CreateWishlistRequest{Name: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Wishlist %q created.\n", created.Name)
	return nil
}

// pickWishlist asks for a wishlist name and loads it. A missing name comes
// back as NOT_FOUND carrying suggestions.
func (c *CLI) pickWishlist(ctx context.Context, prompt string) (wishlists.WishlistDTO, error) {
	name, err := c.ask(prompt)
	if err != nil {
		return wishlists.WishlistDTO{}, err
	}
	return c.wishlists.GetByName(ctx, name)
}

func (c *CLI) renameWishlist(ctx context.Context) error {
	wishlist, err := c.pickWishlist(ctx, "Wishlist to rename: ")
	if err != nil {
		return err
	}
	name, err := c.ask("New name: ")
	if err != nil {
		return err
	}
	renamed, err := c.wishlists.Rename(ctx, wishlists.RenameWishlistRequest{ID: wishlist.ID, Name: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Wishlist %q renamed to %q.\n", wishlist.Name, renamed.Name)
	return nil
}

func (c *CLI) removeWishlist(ctx context.Context) error {
	wishlist, err := c.pickWishlist(ctx, "Wishlist to remove: ")
	if err != nil {
		return err
	}
	confirmed, err := c.askYesNo(fmt.Sprintf("Remove %q and its %d item(s)? (y/n): ", wishlist.Name, wishlist.ItemCount))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(c.out, "Nothing removed.")
		return nil
	}
	result, err := c.wishlists.Delete(ctx, wishlist.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Removed %q and %d item(s).\n", result.Name, result.ItemsRemoved)
	return nil
}

func (c *CLI) viewWishlist(ctx context.Context) error {
	wishlist, err := c.pickWishlist(ctx, "Wishlist to view: ")
	if err != nil {
		return err
	}
	return c.wishlistMenu(ctx, wishlist)
}
