package stubserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/jrsteele09/go-student-jobs/users"
)

var validJobTypes = map[string]bool{
	portalmodel.JobTypeInternship: true,
	portalmodel.JobTypePartTime:   true,
	portalmodel.JobTypeGraduate:   true,
	portalmodel.JobTypeFullTime:   true,
}

// withUser hands the authenticated user to handler. RequireAuth guarantees
// it is present.
func withUser(handler func(w http.ResponseWriter, r *http.Request, user *users.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := userFromContext(r.Context())
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, detailNoCredentials, "")
			return
		}
		handler(w, r, user)
	}
}

func (s *Server) saveUser(w http.ResponseWriter, user *users.User) bool {
	if err := s.users.Upsert(user); err != nil {
		s.logger.Error().Err(err).Str("user", user.ID).Msg("failed to store user")
		writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
		return false
	}
	return true
}

func (s *Server) ProfileHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		writeJSON(w, http.StatusOK, user.Profile)
	})
}

// ProfileUpdateHandler applies a partial update. skills_ids replaces the
// skill set; unknown skill ids are ignored.
func (s *Server) ProfileUpdateHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		var update portalmodel.ProfileUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}

		if update.PreferredJobType != nil {
			if !validJobTypes[*update.PreferredJobType] {
				writeFieldErrors(w, "preferred_job_type", fmt.Sprintf("%q is not a valid choice.", *update.PreferredJobType))
				return
			}
			user.Profile.PreferredJobType = *update.PreferredJobType
		}
		if update.PreferredLocation != nil {
			user.Profile.PreferredLocation = strings.TrimSpace(*update.PreferredLocation)
		}
		if update.Course != nil {
			user.Profile.Course = strings.TrimSpace(*update.Course)
		}
		if update.SkillIDs != nil {
			user.Profile.Skills = s.catalog.SkillsByID(update.SkillIDs)
		}

		if !s.saveUser(w, user) {
			return
		}
		writeJSON(w, http.StatusOK, user.Profile)
	})
}

func (s *Server) SkillsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.catalog.Skills())
	}
}

func (s *Server) CoursesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.catalog.Courses())
	}
}

func (s *Server) CVHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		writeJSON(w, http.StatusOK, user.CV)
	})
}

// CVUpdateHandler replaces the whole CV. Entries without an institution or
// company are rejected.
func (s *Server) CVUpdateHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		var cv portalmodel.CV
		if err := decodeJSON(r, &cv); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}
		for _, e := range cv.Education {
			if strings.TrimSpace(e.Institution) == "" {
				writeFieldErrors(w, "education", "Each education entry needs an institution.")
				return
			}
		}
		for _, e := range cv.Experience {
			if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Role) == "" {
				writeFieldErrors(w, "experience", "Each experience entry needs a company and a role.")
				return
			}
		}
		if cv.Education == nil {
			cv.Education = []portalmodel.Education{}
		}
		if cv.Experience == nil {
			cv.Experience = []portalmodel.Experience{}
		}

		user.CV = cv
		if !s.saveUser(w, user) {
			return
		}
		writeJSON(w, http.StatusOK, user.CV)
	})
}

// CVSummaryHandler drafts a personal statement from the profile and CV. The
// draft is returned, not stored.
func (s *Server) CVSummaryHandler() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, user *users.User) {
		writeJSON(w, http.StatusOK, portalmodel.CVSummary{Summary: draftSummary(user)})
	})
}

func draftSummary(user *users.User) string {
	name := user.CV.Name
	if name == "" {
		name = user.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a %s student", name, user.Profile.Course)
	if jobType := strings.ReplaceAll(user.Profile.PreferredJobType, "_", "-"); jobType != "" {
		fmt.Fprintf(&b, " looking for %s roles", jobType)
	}
	if user.Profile.PreferredLocation != "" {
		fmt.Fprintf(&b, " in %s", user.Profile.PreferredLocation)
	}
	b.WriteString(".")

	if len(user.Profile.Skills) > 0 {
		names := make([]string, 0, len(user.Profile.Skills))
		for _, skill := range user.Profile.Skills {
			names = append(names, skill.Name)
		}
		fmt.Fprintf(&b, " Skills include %s.", strings.Join(names, ", "))
	}
	if len(user.CV.Experience) > 0 {
		latest := user.CV.Experience[0]
		fmt.Fprintf(&b, " Most recently worked as %s at %s.", latest.Role, latest.Company)
	}
	return b.String()
}
