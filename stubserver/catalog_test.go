package stubserver

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/stretchr/testify/require"
)

func TestCatalog_UpsertJobIsKeyedByExternalID(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)
	before := len(c.Jobs())

	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, isNew := c.UpsertJob(portalmodel.Job{ExternalID: "feed-x", Title: "Same job"}); isNew {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), created.Load())
	require.Len(t, c.Jobs(), before+1)

	job, isNew := c.UpsertJob(portalmodel.Job{ExternalID: "feed-x", Title: "Renamed"})
	require.False(t, isNew)
	require.Equal(t, "Renamed", job.Title)
	require.Equal(t, job, c.Jobs()[0], "an update moves the job to the front")
}

func TestCatalog_SavedAndApplications(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	_, err = c.Save("u1", 999)
	require.ErrorIs(t, err, errors.ErrNotFound)

	for _, id := range []int64{1, 2, 3} {
		isNew, err := c.Save("u1", id)
		require.NoError(t, err)
		require.True(t, isNew)
	}
	saved := c.SavedJobs("u1")
	require.Equal(t, []int64{3, 2, 1}, []int64{saved[0].ID, saved[1].ID, saved[2].ID})
	require.Empty(t, c.SavedJobs("u2"))

	app, isNew, err := c.UpsertApplication("u1", 1, "bogus", "")
	require.NoError(t, err)
	require.True(t, isNew)
	require.Equal(t, portalmodel.StatusApplied, app.Status)

	bogus := portalmodel.ApplicationStatus("bogus")
	updated, err := c.UpdateApplication("u1", app.ID, &bogus, nil)
	require.NoError(t, err)
	require.Equal(t, portalmodel.StatusApplied, updated.Status, "unknown statuses are ignored")

	_, err = c.UpdateApplication("u2", app.ID, nil, nil)
	require.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, c.DeleteApplication("u1", app.ID))
	require.Empty(t, c.Applications("u1"))
}
