package stubserver

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/jrsteele09/go-student-jobs/users"
	"github.com/tidwall/gjson"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) JobListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.catalog.Jobs())
	}
}

// FetchJobsHandler imports a page of listings from the job feed. The stub
// feed makes listings up from the search terms; importing the same page
// again updates instead of duplicating.
func (s *Server) FetchJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req portalmodel.FetchJobsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}
		if req.Search == "" {
			req.Search = "graduate"
		}
		if req.Location == "" {
			req.Location = "London"
		}
		if req.ResultsPerPage <= 0 || req.ResultsPerPage > 50 {
			req.ResultsPerPage = 20
		}
		if req.Page <= 0 {
			req.Page = 1
		}

		resp := portalmodel.FetchJobsResponse{SourceCount: req.ResultsPerPage * 5, Jobs: []portalmodel.Job{}}
		for i := 1; i <= req.ResultsPerPage; i++ {
			job, created := s.catalog.UpsertJob(feedJob(req, i))
			if created {
				resp.Created++
			} else {
				resp.Updated++
			}
			resp.Jobs = append(resp.Jobs, job)
		}
		resp.Saved = len(resp.Jobs)

		s.logger.Info().Str("search", req.Search).Str("location", req.Location).Int("created", resp.Created).Int("updated", resp.Updated).Msg("imported jobs")
		writeJSON(w, http.StatusOK, resp)
	}
}

func feedJob(req portalmodel.FetchJobsRequest, n int) portalmodel.Job {
	slug := strings.ToLower(strings.Join(strings.Fields(req.Search+" "+req.Location), "-"))
	externalID := fmt.Sprintf("feed-%s-%d-%d", slug, req.Page, n)
	return portalmodel.Job{
		ExternalID:  externalID,
		Source:      "feed",
		Title:       fmt.Sprintf("%s opportunity #%d", capitalise(req.Search), (req.Page-1)*req.ResultsPerPage+n),
		Company:     "Feed Employer",
		Location:    req.Location,
		Description: fmt.Sprintf("Imported listing for %q in %s.", req.Search, req.Location),
		JobType:     portalmodel.JobTypeGraduate,
		URL:         "https://jobs.example.com/" + externalID,
		PostedDate:  NowTimeFunc().UTC().Format("2006-01-02"),
	}
}

func (s *Server) SavedJobsHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		writeJSON(w, http.StatusOK, s.catalog.SavedJobs(user.ID))
	})
}

func (s *Server) SaveJobHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		jobID, ok := pathID(r, "job_id")
		if !ok {
			writeNotFound(w)
			return
		}
		created, err := s.catalog.Save(user.ID, jobID)
		if err != nil {
			writeNotFound(w)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, portalmodel.SaveResult{Saved: true})
	})
}

func (s *Server) UnsaveJobHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		jobID, ok := pathID(r, "job_id")
		if !ok {
			writeNotFound(w)
			return
		}
		if err := s.catalog.Unsave(user.ID, jobID); err != nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, portalmodel.SaveResult{Saved: false})
	})
}

func (s *Server) ApplicationListHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		writeJSON(w, http.StatusOK, s.catalog.Applications(user.ID))
	})
}

// ApplicationCreateHandler creates or updates the application for a job.
// job_id may arrive as a number or a numeric string.
func (s *Server) ApplicationCreateHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil || (len(body) > 0 && !gjson.ValidBytes(body)) {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}

		jobID := gjson.GetBytes(body, "job_id").Int()
		if jobID <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"job_id": msgFieldRequired})
			return
		}
		status := portalmodel.ApplicationStatus(gjson.GetBytes(body, "status").String())
		notes := strings.TrimSpace(gjson.GetBytes(body, "notes").String())

		app, created, err := s.catalog.UpsertApplication(user.ID, jobID, status, notes)
		if err != nil {
			writeNotFound(w)
			return
		}
		code := http.StatusOK
		if created {
			code = http.StatusCreated
		}
		writeJSON(w, code, app)
	})
}

func (s *Server) ApplicationUpdateHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		id, ok := pathID(r, "id")
		if !ok {
			writeNotFound(w)
			return
		}
		var req portalmodel.UpdateApplicationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}
		if req.Notes != nil {
			trimmed := strings.TrimSpace(*req.Notes)
			req.Notes = &trimmed
		}

		app, err := s.catalog.UpdateApplication(user.ID, id, req.Status, req.Notes)
		if err != nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, app)
	})
}

func (s *Server) ApplicationDeleteHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		id, ok := pathID(r, "id")
		if !ok {
			writeNotFound(w)
			return
		}
		if err := s.catalog.DeleteApplication(user.ID, id); err != nil {
			if !errors.Is(err, errors.ErrNotFound) {
				s.logger.Error().Err(err).Msg("failed to delete application")
			}
			writeNotFound(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) RecommendationsHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		writeJSON(w, http.StatusOK, s.catalog.Recommendations(user.ID))
	})
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
