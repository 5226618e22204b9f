package stubserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-student-jobs/apiclient"
	"github.com/jrsteele09/go-student-jobs/authmodel"
	"github.com/jrsteele09/go-student-jobs/credentials/filestore"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/portal"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/jrsteele09/go-student-jobs/stubserver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stack is the client side wired the way cmd/jobportal wires it, talking to
// a live stub server.
type stack struct {
	clock     *testClock
	store     *filestore.FileStore
	client    *portal.Client
	session   *portal.Session
	refreshes atomic.Int32
}

func newStack(t *testing.T, cfg testConfig) *stack {
	t.Helper()
	st := &stack{clock: fixClock(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))}

	srv := newServer(t, cfg)
	httpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == stubserver.RouteTokenRefresh {
			st.refreshes.Add(1)
		}
		srv.ServeHTTP(w, r)
	}))
	t.Cleanup(httpSrv.Close)

	st.store = filestore.New(t.TempDir() + "/credentials.json")
	dispatcher := apiclient.New(
		apiclient.NewHTTPTransport(httpSrv.URL, nil, 5*time.Second),
		st.store,
		apiclient.WithLogger(zerolog.Nop()),
	)
	st.client = portal.NewClient(dispatcher)
	st.session = portal.NewSession(st.client, st.store, zerolog.Nop())
	return st
}

func TestIntegration_StudentJourney(t *testing.T) {
	st := newStack(t, testConfig{})
	ctx := context.Background()

	profile, err := st.session.Register(ctx, authmodel.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "lovelace1815"})
	require.NoError(t, err)
	require.Equal(t, portalmodel.JobTypeGraduate, profile.PreferredJobType)
	require.True(t, st.session.IsAuthenticated())

	updated, err := st.client.UpdateProfile(ctx, portalmodel.ProfileUpdate{SkillIDs: []int64{4}, Course: utils.Ptr("Computer Science")})
	require.NoError(t, err)
	require.Equal(t, "Computer Science", updated.Course)

	jobs, err := st.client.GetJobs(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, jobs)

	saved, err := st.client.SaveJob(ctx, jobs[0].ID)
	require.NoError(t, err)
	require.True(t, saved.Saved)

	app, err := st.client.CreateApplication(ctx, portalmodel.CreateApplicationRequest{JobID: jobs[0].ID, Notes: "cover letter sent"})
	require.NoError(t, err)
	require.Equal(t, portalmodel.StatusApplied, app.Status)

	offered := portalmodel.StatusOffered
	app, err = st.client.UpdateApplication(ctx, app.ID, portalmodel.UpdateApplicationRequest{Status: &offered})
	require.NoError(t, err)
	require.Equal(t, portalmodel.StatusOffered, app.Status)

	apps, err := st.client.GetApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	require.NoError(t, st.client.DeleteApplication(ctx, app.ID))

	summary, err := st.client.GenerateCVSummary(ctx)
	require.NoError(t, err)
	require.Contains(t, summary.Summary, "Computer Science")

	require.NoError(t, st.session.Logout())
	require.False(t, st.session.IsAuthenticated())
	_, err = st.session.LoadUser(ctx)
	require.ErrorIs(t, err, errors.ErrNotAuthenticated)
}

func TestIntegration_LoginFailure(t *testing.T) {
	st := newStack(t, testConfig{})

	_, err := st.session.Login(context.Background(), demoEmail, "not-the-password")
	var authErr *portal.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "No active account found with the given credentials", authErr.Message)
	require.False(t, st.session.IsAuthenticated())
	require.Zero(t, st.refreshes.Load(), "a rejected login never refreshes")
}

func TestIntegration_ExpiredAccessTokenIsRefreshed(t *testing.T) {
	for _, rotate := range []bool{false, true} {
		t.Run(map[bool]string{false: "fixed refresh token", true: "rotating refresh token"}[rotate], func(t *testing.T) {
			st := newStack(t, testConfig{rotate: rotate})
			ctx := context.Background()

			_, err := st.session.Login(ctx, demoEmail, demoPassword)
			require.NoError(t, err)
			access, refresh := *st.store.GetAccessToken(), *st.store.GetRefreshToken()

			st.clock.Advance(10 * time.Minute)

			profile, err := st.session.LoadUser(ctx)
			require.NoError(t, err)
			require.NotNil(t, profile)
			require.Equal(t, int32(1), st.refreshes.Load())
			require.NotEqual(t, access, *st.store.GetAccessToken())
			if rotate {
				require.NotEqual(t, refresh, *st.store.GetRefreshToken())
			} else {
				require.Equal(t, refresh, *st.store.GetRefreshToken())
			}

			_, err = st.client.GetSavedJobs(ctx)
			require.NoError(t, err)
			require.Equal(t, int32(1), st.refreshes.Load(), "the fresh token is reused")
		})
	}
}

func TestIntegration_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	st := newStack(t, testConfig{rotate: true})
	ctx := context.Background()

	_, err := st.session.Login(ctx, demoEmail, demoPassword)
	require.NoError(t, err)
	st.clock.Advance(10 * time.Minute)

	const workers = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = st.client.GetProfile(ctx)
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), st.refreshes.Load())
}

func TestIntegration_ExpiredRefreshTokenEndsSession(t *testing.T) {
	st := newStack(t, testConfig{})
	ctx := context.Background()

	_, err := st.session.Login(ctx, demoEmail, demoPassword)
	require.NoError(t, err)
	require.NotNil(t, st.session.User())

	st.clock.Advance(25 * time.Hour)

	_, err = st.session.LoadUser(ctx)
	require.ErrorIs(t, err, errors.ErrSessionEnded)
	require.True(t, st.session.SessionEnded(err))
	require.Equal(t, int32(1), st.refreshes.Load())

	require.False(t, st.session.IsAuthenticated())
	require.Nil(t, st.store.GetAccessToken())
	require.Nil(t, st.store.GetRefreshToken())
	require.Nil(t, st.session.User())

	_, err = st.session.Login(ctx, demoEmail, demoPassword)
	require.NoError(t, err, "logging in again starts a new session")
}
