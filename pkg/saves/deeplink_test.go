package saves_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newteatrade/saves/pkg/saves"
	"github.com/newteatrade/saves/pkg/store/memory"
	"github.com/newteatrade/saves/pkg/view"
)

func TestJobIDFromQuery(t *testing.T) {
	q, err := url.ParseQuery("job=job1&utm_source=newsletter")
	require.NoError(t, err)
	assert.Equal(t, "job1", saves.JobIDFromQuery(q))

	empty, err := url.ParseQuery("utm_source=newsletter")
	require.NoError(t, err)
	assert.Equal(t, "", saves.JobIDFromQuery(empty))
}

func TestResolveJobDeepLinkActivatesMatchingCard(t *testing.T) {
	page := view.NewPage(false, "jobs")
	list := page.List("jobs")
	first := view.NewCard(jobControl(t, "job1"))
	second := view.NewCard(jobControl(t, "job2"))
	list.Append(first)
	list.Append(second)
	list.MarkRendered()

	ctrl, _ := newController(t, memory.New(), nil, page)
	card, err := ctrl.ResolveJobDeepLink(context.Background(), "job2")
	require.NoError(t, err)
	assert.Same(t, second, card)
	assert.True(t, second.Active())
	assert.False(t, first.Active())
}

func TestResolveJobDeepLinkUnknownJob(t *testing.T) {
	page := view.NewPage(false, "jobs")
	page.List("jobs").MarkRendered()

	ctrl, _ := newController(t, memory.New(), nil, page)
	_, err := ctrl.ResolveJobDeepLink(context.Background(), "job99")
	require.ErrorIs(t, err, saves.ErrJobNotFound)
}

func TestResolveJobDeepLinkWaitsForRender(t *testing.T) {
	page := view.NewPage(false, "jobs")
	ctrl, _ := newController(t, memory.New(), nil, page)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ctrl.ResolveJobDeepLink(ctx, "job1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolveJobDeepLinkNoJobList(t *testing.T) {
	page := view.NewPage(false, "products")
	ctrl, _ := newController(t, memory.New(), nil, page)

	_, err := ctrl.ResolveJobDeepLink(context.Background(), "job1")
	require.Error(t, err)
}
