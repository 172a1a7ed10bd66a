// Package saves is the core of the "my library" feature: the save/unsave
// toggle, the save-status synchronizer that paints persisted state onto
// freshly rendered pages, the saved-collection loader for the library view,
// and the job deep-link resolver.
//
// The store is the single source of truth throughout. A control's visual
// state is set only after a confirmed store success, never optimistically,
// so a failed request leaves the page exactly as it was. Rapid double
// toggles are tolerated because every store operation is idempotent
// (delete-if-missing is a no-op, put replaces).
package saves

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/newteatrade/saves/pkg/auth"
	"github.com/newteatrade/saves/pkg/catalog"
	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/site"
	"github.com/newteatrade/saves/pkg/store"
	"github.com/newteatrade/saves/pkg/view"
)

var (
	// ErrNotInCatalog reports a data desync: a product's decoded URL has no
	// match in the current catalog, so a save would persist a partial
	// record.
	ErrNotInCatalog = errors.New("product not in catalog")

	// ErrJobNotFound reports a deep link naming a job that is not in the
	// rendered list.
	ErrJobNotFound = errors.New("job not in rendered list")
)

// Controller owns the save logic for one rendered page. The catalog handle
// is page-scoped and read-only; it is nil on deployments that render no
// products.
type Controller struct {
	store   store.Store
	catalog *catalog.Catalog
	page    *view.Page
	nav     view.Navigator
	cfg     *site.Config
	log     zerolog.Logger
}

func NewController(st store.Store, cat *catalog.Catalog, page *view.Page, nav view.Navigator, cfg *site.Config, log zerolog.Logger) *Controller {
	return &Controller{
		store:   st,
		catalog: cat,
		page:    page,
		nav:     nav,
		cfg:     cfg,
		log:     log.With().Str("component", "saves").Logger(),
	}
}

// HandleToggle processes a click on a save control.
//
// The control sits inside a whole-card link, so the event's default
// navigation is suppressed and propagation stopped before anything else.
// Without an authenticated user the only effect is a redirect to the login
// entry point; the store is never touched. Otherwise the store decides:
// an existing record means unsave, a missing one means save.
//
// Errors are logged and returned for the caller's benefit; none of them
// change the control's visual state.
func (c *Controller) HandleToggle(ctx context.Context, ev *view.Event, ctl *view.Control, user *auth.User) error {
	ev.PreventDefault()
	ev.StopPropagation()

	if user == nil {
		c.nav.Redirect(c.cfg.LoginURL())
		return nil
	}

	kind, err := models.ParseKind(ctl.Attr(view.AttrItemType))
	if err != nil {
		c.log.Warn().Err(err).Msg("save control with unknown kind")
		return err
	}
	key := models.EncodedKey(ctl.Attr(view.AttrItemID))

	existing, err := c.store.Get(ctx, user.ID, kind, key)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("save lookup failed")
		return fmt.Errorf("toggle save: %w", err)
	}

	if existing != nil {
		return c.unsave(ctx, user, kind, key, ctl)
	}
	return c.save(ctx, user, kind, key, ctl)
}

func (c *Controller) unsave(ctx context.Context, user *auth.User, kind models.Kind, key models.EncodedKey, ctl *view.Control) error {
	if err := c.store.Delete(ctx, user.ID, kind, key); err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("unsave failed")
		return fmt.Errorf("unsave: %w", err)
	}
	ctl.SetSaved(false)

	// On the library view the item no longer belongs in the list. This is a
	// view-consistency rule, not a store rule.
	if c.page.IsLibrary() {
		if card := ctl.Card(); card != nil {
			card.Remove()
		}
	}
	return nil
}

func (c *Controller) save(ctx context.Context, user *auth.User, kind models.Kind, key models.EncodedKey, ctl *view.Control) error {
	data, err := c.resolveDisplayFields(kind, key, ctl)
	if err != nil {
		c.log.Warn().Err(err).Str("kind", kind.String()).Msg("save aborted, display fields unresolved")
		return err
	}

	rec, err := models.NewSaveRecord(user.ID, key, data)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, rec); err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("save failed")
		return fmt.Errorf("save: %w", err)
	}
	ctl.SetSaved(true)
	return nil
}

// resolveDisplayFields builds the persisted payload for a save, dispatching
// over the closed kind set. Products resolve through the catalog by the
// decoded URL; recipes read everything off the control; jobs read the card
// fields off the control and recover their canonical ID from the key.
func (c *Controller) resolveDisplayFields(kind models.Kind, key models.EncodedKey, ctl *view.Control) (models.DisplayFields, error) {
	switch kind {
	case models.KindProducts:
		link, err := key.Decode()
		if err != nil {
			return nil, err
		}
		if c.catalog == nil {
			return nil, fmt.Errorf("product %q: %w", link, ErrNotInCatalog)
		}
		p, ok := c.catalog.ByLink(link)
		if !ok {
			return nil, fmt.Errorf("product %q: %w", link, ErrNotInCatalog)
		}
		return p.DisplayFields(), nil

	case models.KindRecipes:
		return models.RecipeFields{
			Name:        ctl.Attr(view.AttrName),
			Description: ctl.Attr(view.AttrDescription),
			Image:       ctl.Attr(view.AttrImage),
			Href:        ctl.Attr(view.AttrHref),
		}, nil

	case models.KindJobs:
		id, err := key.Decode()
		if err != nil {
			return nil, err
		}
		return models.JobFields{
			ID:       id,
			Name:     ctl.Attr(view.AttrName),
			Company:  ctl.Attr(view.AttrCompany),
			Location: ctl.Attr(view.AttrLocation),
		}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}
