package saves

import (
	"context"
	"fmt"
	"net/url"

	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/view"
)

// jobQueryParam is the query parameter a job detail deep link carries.
const jobQueryParam = "job"

// JobIDFromQuery extracts the requested job's natural ID from a page query
// string, or "" when the page was not deep-linked.
func JobIDFromQuery(query url.Values) string {
	return query.Get(jobQueryParam)
}

// ResolveJobDeepLink activates the rendered job card matching the given
// natural ID. The job list renders asynchronously, so the resolver waits on
// its render-completion signal instead of polling the document.
func (c *Controller) ResolveJobDeepLink(ctx context.Context, jobID string) (*view.Card, error) {
	list := c.page.List(models.KindJobs.String())
	if list == nil {
		return nil, fmt.Errorf("page renders no job list")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-list.Rendered():
	}

	for _, card := range list.Cards() {
		key := models.EncodedKey(card.Control().Attr(view.AttrItemID))
		id, err := key.Decode()
		if err != nil {
			continue
		}
		if id == jobID {
			card.Activate()
			return card, nil
		}
	}

	c.log.Warn().Str("job", jobID).Msg("deep link target not in rendered list")
	return nil, fmt.Errorf("job %q: %w", jobID, ErrJobNotFound)
}
