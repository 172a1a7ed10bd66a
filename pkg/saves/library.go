package saves

import (
	"context"
	"fmt"

	"github.com/newteatrade/saves/pkg/auth"
	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/view"
)

// Per-kind copy shown when the library has nothing saved.
var emptyMessages = map[models.Kind]string{
	models.KindProducts: "You haven't saved any products yet.",
	models.KindRecipes:  "You haven't saved any recipes yet.",
	models.KindJobs:     "You haven't saved any jobs yet.",
}

var loadErrorMessages = map[models.Kind]string{
	models.KindProducts: "We couldn't load your saved products. Please try again later.",
	models.KindRecipes:  "We couldn't load your saved recipes. Please try again later.",
	models.KindJobs:     "We couldn't load your saved jobs. Please try again later.",
}

// LoadSaved fills the library view's list for one kind from the store: one
// card per record in store order, each control already marked saved (state
// is known by construction, no synchronizer pass needed), an explicit
// empty-state message when there is nothing, and a user-visible error
// message in place of the list when the fetch fails. Failures are not
// propagated to the caller; the rest of the page stays usable.
func (c *Controller) LoadSaved(ctx context.Context, user *auth.User, kind models.Kind) {
	list := c.page.List(kind.String())
	if list == nil || user == nil {
		return
	}

	recs, err := c.store.List(ctx, user.ID, kind)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("library load failed")
		list.ShowError(loadErrorMessages[kind])
		list.MarkRendered()
		return
	}

	if len(recs) == 0 {
		list.ShowEmpty(emptyMessages[kind])
		list.MarkRendered()
		return
	}

	for _, rec := range recs {
		card, err := renderSavedCard(rec)
		if err != nil {
			c.log.Warn().Err(err).Msg("skipping malformed save record")
			continue
		}
		card.Control().SetSaved(true)
		list.Append(card)
	}
	list.MarkRendered()
}

// renderSavedCard rebuilds a card from the persisted display fields,
// binding the same control attributes the main listings bind so the toggle
// works identically on the library view.
func renderSavedCard(rec *models.SaveRecord) (*view.Card, error) {
	attrs := map[string]string{
		view.AttrItemType: rec.Kind.String(),
		view.AttrItemID:   rec.Key.String(),
	}

	switch data := rec.Data.(type) {
	case models.ProductFields:
		attrs[view.AttrName] = data.Name
		attrs[view.AttrDescription] = data.Description
		attrs[view.AttrImage] = data.Image
		attrs[view.AttrHref] = data.Link
	case models.RecipeFields:
		attrs[view.AttrName] = data.Name
		attrs[view.AttrDescription] = data.Description
		attrs[view.AttrImage] = data.Image
		attrs[view.AttrHref] = data.Href
	case models.JobFields:
		attrs[view.AttrName] = data.Name
		attrs[view.AttrCompany] = data.Company
		attrs[view.AttrLocation] = data.Location
	default:
		return nil, fmt.Errorf("save record with unknown display fields %T", rec.Data)
	}

	return view.NewCard(view.NewControl(attrs)), nil
}
