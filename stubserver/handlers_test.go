package stubserver_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/jrsteele09/go-student-jobs/authmodel"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/jrsteele09/go-student-jobs/stubserver"
	"github.com/stretchr/testify/require"
)

func jobPath(id int64) string {
	return "/api/jobs/" + strconv.FormatInt(id, 10) + "/"
}

func applicationPath(id int64) string {
	return stubserver.RouteApplications + strconv.FormatInt(id, 10) + "/"
}

func registerStudent(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	email := username + "@example.com"
	rec := call(t, h, http.MethodPost, stubserver.RouteRegister, "", authmodel.RegisterRequest{Username: username, Email: email, Password: "password-" + username})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return login(t, h, email, "password-"+username).Access
}

func TestProfileHandlers(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	srv := newServer(t, testConfig{})
	token := registerStudent(t, srv, "grace")

	rec := call(t, srv, http.MethodGet, stubserver.RouteProfile, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, portalmodel.Profile{
		Skills:            []portalmodel.Skill{},
		PreferredJobType:  portalmodel.JobTypeGraduate,
		PreferredLocation: "Not Specified",
		Course:            "Not Specified",
	}, decode[portalmodel.Profile](t, rec))

	t.Run("partial update", func(t *testing.T) {
		rec := call(t, srv, http.MethodPatch, stubserver.RouteProfile, token, portalmodel.ProfileUpdate{
			SkillIDs:          []int64{4, 7, 99},
			PreferredLocation: utils.Ptr(" Leeds "),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		profile := decode[portalmodel.Profile](t, rec)
		require.Equal(t, []portalmodel.Skill{{ID: 4, Name: "Go"}, {ID: 7, Name: "Python"}}, profile.Skills)
		require.Equal(t, "Leeds", profile.PreferredLocation)
		require.Equal(t, "Not Specified", profile.Course, "untouched fields stay")

		rec = call(t, srv, http.MethodGet, stubserver.RouteProfile, token, nil)
		require.Equal(t, profile, decode[portalmodel.Profile](t, rec))
	})

	t.Run("invalid job type", func(t *testing.T) {
		rec := call(t, srv, http.MethodPatch, stubserver.RouteProfile, token, portalmodel.ProfileUpdate{PreferredJobType: utils.Ptr("astronaut")})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "preferred_job_type")
	})
}

func TestCVHandlers(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	srv := newServer(t, testConfig{})
	token := registerStudent(t, srv, "linus")

	rec := call(t, srv, http.MethodGet, stubserver.RouteCV, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"linus","cv_summary":"","education":[],"experience":[]}`, rec.Body.String())

	cv := portalmodel.CV{
		Name:       "Linus T",
		Summary:    "Kernel hobbyist",
		Experience: []portalmodel.Experience{{Company: "Transmeta", Role: "Engineer"}},
	}
	rec = call(t, srv, http.MethodPut, stubserver.RouteCV, token, cv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[portalmodel.CV](t, rec)
	require.Equal(t, "Linus T", saved.Name)
	require.Empty(t, saved.Education)
	require.NotNil(t, saved.Education)

	rec = call(t, srv, http.MethodPut, stubserver.RouteCV, token, portalmodel.CV{Education: []portalmodel.Education{{Degree: "BSc"}}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "education")

	rec = call(t, srv, http.MethodPost, stubserver.RouteCVSummary, token, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[portalmodel.CVSummary](t, rec)
	require.Contains(t, summary.Summary, "Linus T")
	require.Contains(t, summary.Summary, "Engineer at Transmeta")

	rec = call(t, srv, http.MethodGet, stubserver.RouteCV, token, nil)
	require.Equal(t, "Kernel hobbyist", decode[portalmodel.CV](t, rec).Summary, "drafting does not overwrite the stored summary")
}

func TestJobHandlers(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	srv := newServer(t, testConfig{})
	token := registerStudent(t, srv, "margaret")

	rec := call(t, srv, http.MethodGet, stubserver.RouteJobs, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := decode[[]portalmodel.Job](t, rec)
	require.Len(t, jobs, 6)
	require.Equal(t, "seed-6", jobs[0].ExternalID, "newest first")
	first := jobs[len(jobs)-1]

	t.Run("save and unsave", func(t *testing.T) {
		rec := call(t, srv, http.MethodPost, jobPath(first.ID), token, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"saved":true}`, rec.Body.String())

		rec = call(t, srv, http.MethodPost, jobPath(first.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, "saving twice is idempotent")

		rec = call(t, srv, http.MethodGet, stubserver.RouteSavedJobs, token, nil)
		saved := decode[[]portalmodel.Job](t, rec)
		require.Len(t, saved, 1)
		require.Equal(t, first.ID, saved[0].ID)

		rec = call(t, srv, http.MethodGet, stubserver.RouteRecommendedJobs, token, nil)
		recommended := decode[[]portalmodel.RecommendedJob](t, rec)
		require.Len(t, recommended, 5, "saved jobs are not recommended")

		rec = call(t, srv, http.MethodDelete, jobPath(first.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"saved":false}`, rec.Body.String())

		rec = call(t, srv, http.MethodGet, stubserver.RouteSavedJobs, token, nil)
		require.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("unknown job", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, call(t, srv, http.MethodPost, jobPath(999), token, nil).Code)
		require.Equal(t, http.StatusNotFound, call(t, srv, http.MethodDelete, "/api/jobs/abc/", token, nil).Code)
	})

	t.Run("fetch needs an admin", func(t *testing.T) {
		rec := call(t, srv, http.MethodPost, stubserver.RouteFetchJobs, token, portalmodel.FetchJobsRequest{})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("fetch upserts by external id", func(t *testing.T) {
		admin := login(t, srv, demoEmail, demoPassword).Access
		req := portalmodel.FetchJobsRequest{Search: "data", Location: "York", ResultsPerPage: 3}

		rec := call(t, srv, http.MethodPost, stubserver.RouteFetchJobs, admin, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[portalmodel.FetchJobsResponse](t, rec)
		require.Equal(t, 3, resp.Created)
		require.Equal(t, 0, resp.Updated)
		require.Len(t, resp.Jobs, 3)
		require.Equal(t, "York", resp.Jobs[0].Location)

		rec = call(t, srv, http.MethodPost, stubserver.RouteFetchJobs, admin, req)
		resp = decode[portalmodel.FetchJobsResponse](t, rec)
		require.Equal(t, 0, resp.Created)
		require.Equal(t, 3, resp.Updated)

		rec = call(t, srv, http.MethodGet, stubserver.RouteJobs, "", nil)
		require.Len(t, decode[[]portalmodel.Job](t, rec), 9)
	})
}

func TestApplicationHandlers(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	srv := newServer(t, testConfig{})
	token := registerStudent(t, srv, "barbara")
	other := registerStudent(t, srv, "edsger")

	t.Run("job_id is required", func(t *testing.T) {
		rec := call(t, srv, http.MethodPost, stubserver.RouteApplications, token, `{"status":"applied"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"job_id":"This field is required."}`, rec.Body.String())
	})

	rec := call(t, srv, http.MethodPost, stubserver.RouteApplications, token, `{"job_id":"2","notes":" first try "}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	app := decode[portalmodel.Application](t, rec)
	require.Equal(t, int64(2), app.Job.ID)
	require.Equal(t, portalmodel.StatusApplied, app.Status, "no status means applied")
	require.Equal(t, "first try", app.Notes)

	t.Run("applying again updates", func(t *testing.T) {
		rec := call(t, srv, http.MethodPost, stubserver.RouteApplications, token, portalmodel.CreateApplicationRequest{JobID: 2, Status: portalmodel.StatusSaved})
		require.Equal(t, http.StatusOK, rec.Code)
		again := decode[portalmodel.Application](t, rec)
		require.Equal(t, app.ID, again.ID)
		require.Equal(t, portalmodel.StatusSaved, again.Status)
	})

	t.Run("update", func(t *testing.T) {
		status := portalmodel.StatusInterviewing
		rec := call(t, srv, http.MethodPatch, applicationPath(app.ID), token, portalmodel.UpdateApplicationRequest{Status: &status})
		require.Equal(t, http.StatusOK, rec.Code)
		updated := decode[portalmodel.Application](t, rec)
		require.Equal(t, portalmodel.StatusInterviewing, updated.Status)
		require.Equal(t, "", updated.Notes, "notes were replaced by the repeated create")
	})

	t.Run("other students cannot see it", func(t *testing.T) {
		rec := call(t, srv, http.MethodGet, stubserver.RouteApplications, other, nil)
		require.JSONEq(t, `[]`, rec.Body.String())
		require.Equal(t, http.StatusNotFound, call(t, srv, http.MethodDelete, applicationPath(app.ID), other, nil).Code)
	})

	t.Run("list and delete", func(t *testing.T) {
		rec := call(t, srv, http.MethodPost, stubserver.RouteApplications, token, portalmodel.CreateApplicationRequest{JobID: 3})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = call(t, srv, http.MethodGet, stubserver.RouteApplications, token, nil)
		apps := decode[[]portalmodel.Application](t, rec)
		require.Len(t, apps, 2)
		require.Equal(t, int64(3), apps[0].Job.ID, "most recently updated first")

		rec = call(t, srv, http.MethodDelete, applicationPath(app.ID), token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Body.String())
		require.Equal(t, http.StatusNotFound, call(t, srv, http.MethodDelete, applicationPath(app.ID), token, nil).Code)
	})

	t.Run("unknown job", func(t *testing.T) {
		rec := call(t, srv, http.MethodPost, stubserver.RouteApplications, token, portalmodel.CreateApplicationRequest{JobID: 404})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
