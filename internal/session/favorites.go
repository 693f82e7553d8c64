package session

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/nimbus/internal/weatherapi"
)

type favoriteOp int

const (
	opAdd favoriteOp = iota
	opRemove
)

// LoadFavorites fetches the saved places.
func (c *Controller) LoadFavorites() tea.Cmd {
	if c.api == nil {
		return nil
	}
	api := c.api
	return c.request(func(ctx context.Context) tea.Msg {
		items, err := api.Favorites(ctx)
		return favoritesMsg{items: items, err: err}
	})
}

// AddFavorite saves a place and reloads the list on success.
func (c *Controller) AddFavorite(placeID, name string) tea.Cmd {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" || c.api == nil {
		return nil
	}
	api := c.api
	return c.request(func(ctx context.Context) tea.Msg {
		err := api.AddFavorite(ctx, placeID, name)
		return favoriteMutationMsg{op: opAdd, placeID: placeID, err: err}
	})
}

// RemoveFavorite deletes a place and reloads the list on success.
func (c *Controller) RemoveFavorite(placeID string) tea.Cmd {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" || c.api == nil {
		return nil
	}
	api := c.api
	return c.request(func(ctx context.Context) tea.Msg {
		err := api.RemoveFavorite(ctx, placeID)
		return favoriteMutationMsg{op: opRemove, placeID: placeID, err: err}
	})
}

// ToggleFavorite adds or removes the selected place depending on the last
// loaded membership.
func (c *Controller) ToggleFavorite() tea.Cmd {
	p := c.s.Place
	if p == nil {
		return nil
	}
	if c.s.IsFavorite() {
		return c.RemoveFavorite(p.PlaceID)
	}
	return c.AddFavorite(p.PlaceID, p.Name)
}

// SelectFavorite selects saved place i.
func (c *Controller) SelectFavorite(i int) tea.Cmd {
	f, ok := c.s.Favorite(i)
	if !ok {
		return nil
	}
	return c.SelectPlace(f.PlaceID, f.Name)
}

// RemoveFavoriteAt deletes saved place i.
func (c *Controller) RemoveFavoriteAt(i int) tea.Cmd {
	f, ok := c.s.Favorite(i)
	if !ok {
		return nil
	}
	return c.RemoveFavorite(f.PlaceID)
}

func (c *Controller) handleFavorites(msg favoritesMsg) {
	if msg.err != nil {
		c.log.Warnw("loading favorites failed", "error", msg.err)
		return
	}
	c.s.ApplyFavorites(msg.items)
	c.renderFavorites()
}

func (c *Controller) handleFavoriteMutation(msg favoriteMutationMsg) tea.Cmd {
	if msg.err != nil {
		generic := "Could not add favorite"
		if msg.op == opRemove {
			generic = "Could not remove favorite"
		}
		c.log.Warnw("favorite update failed", "place_id", msg.placeID, "error", msg.err)
		c.view.Notify(describe(msg.err, generic, generic))
		return nil
	}
	return c.LoadFavorites()
}

func (c *Controller) renderFavorites() {
	c.view.RenderFavorites(FavoritesView{
		Items:     c.s.Favorites,
		HasPlace:  c.s.Place != nil,
		Favorited: c.s.IsFavorite(),
	})
}

// Favorites messages

type favoritesMsg struct {
	items []weatherapi.Favorite
	err   error
}

type favoriteMutationMsg struct {
	op      favoriteOp
	placeID string
	err     error
}
