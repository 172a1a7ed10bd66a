package saves

import (
	"context"
	"fmt"

	"github.com/newteatrade/saves/pkg/auth"
	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/view"
)

// SyncSavedState paints persisted "saved" state onto the rendered controls
// of one kind. It runs once per kind per page load, after the list's render
// signal fires; a control rendered later is silently skipped, which is an
// accepted limitation of the page lifecycle.
//
// The sync is purely additive: controls whose key is absent from the store
// are left alone (only the toggle ever clears saved state), which also
// makes repeated calls idempotent. Without an authenticated user, or on a
// page that does not render the kind, it is a no-op.
func (c *Controller) SyncSavedState(ctx context.Context, user *auth.User, kind models.Kind) error {
	if user == nil {
		return nil
	}
	list := c.page.List(kind.String())
	if list == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-list.Rendered():
	}

	keys, err := c.store.Keys(ctx, user.ID, kind)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("saved-state sync failed")
		return fmt.Errorf("sync saved state: %w", err)
	}

	saved := make(map[models.EncodedKey]struct{}, len(keys))
	for _, k := range keys {
		saved[k] = struct{}{}
	}

	for _, ctl := range list.Controls() {
		if _, ok := saved[models.EncodedKey(ctl.Attr(view.AttrItemID))]; ok {
			ctl.SetSaved(true)
		}
	}
	return nil
}
