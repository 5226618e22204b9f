package stubserver

import (
	_ "embed"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
	pkgerrors "github.com/pkg/errors"
)

//go:embed seed.json
var seedData []byte

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type seed struct {
	Skills  []string          `json:"skills"`
	Courses []string          `json:"courses"`
	Jobs    []portalmodel.Job `json:"jobs"`
}

type application struct {
	portalmodel.Application
	userID string
	jobID  int64
	seq    int64
}

// Catalog holds the jobs, the lookup lists and every student's saved jobs and
// applications. Ordering uses a sequence number so equal timestamps still
// sort deterministically.
type Catalog struct {
	lock sync.RWMutex
	seq  int64

	jobs       map[int64]*portalmodel.Job
	jobSeq     map[int64]int64
	externalID map[string]int64
	nextJobID  int64

	skills  []portalmodel.Skill
	courses []string

	saved        map[string]map[int64]int64 // user ID to job ID to sequence
	applications map[int64]*application
	nextAppID    int64
}

func NewCatalog() (*Catalog, error) {
	var data seed
	if err := json.Unmarshal(seedData, &data); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse seed data")
	}

	c := &Catalog{
		jobs:         make(map[int64]*portalmodel.Job),
		jobSeq:       make(map[int64]int64),
		externalID:   make(map[string]int64),
		saved:        make(map[string]map[int64]int64),
		applications: make(map[int64]*application),
		courses:      data.Courses,
	}
	for i, name := range data.Skills {
		c.skills = append(c.skills, portalmodel.Skill{ID: int64(i + 1), Name: name})
	}
	for _, job := range data.Jobs {
		c.UpsertJob(job)
	}
	return c, nil
}

func (c *Catalog) next() int64 {
	c.seq++
	return c.seq
}

func timestamp() string {
	return NowTimeFunc().UTC().Format(time.RFC3339)
}

// UpsertJob stores job keyed by its external ID and reports whether it was new.
func (c *Catalog) UpsertJob(job portalmodel.Job) (portalmodel.Job, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	id, exists := c.externalID[job.ExternalID]
	if !exists {
		c.nextJobID++
		id = c.nextJobID
		c.externalID[job.ExternalID] = id
	}
	job.ID = id
	job.CachedAt = timestamp()
	c.jobs[id] = &job
	c.jobSeq[id] = c.next()
	return job, !exists
}

// Jobs returns every job, most recently cached first.
func (c *Catalog) Jobs() []portalmodel.Job {
	c.lock.RLock()
	defer c.lock.RUnlock()

	jobs := make([]portalmodel.Job, 0, len(c.jobs))
	for _, job := range c.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return c.jobSeq[jobs[i].ID] > c.jobSeq[jobs[j].ID]
	})
	return jobs
}

func (c *Catalog) Job(id int64) (portalmodel.Job, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	job, ok := c.jobs[id]
	if !ok {
		return portalmodel.Job{}, pkgerrors.Wrapf(errors.ErrNotFound, "job %d", id)
	}
	return *job, nil
}

func (c *Catalog) Skills() []portalmodel.Skill {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return append([]portalmodel.Skill{}, c.skills...)
}

// SkillsByID resolves ids against the skill list, ignoring unknown ones.
func (c *Catalog) SkillsByID(ids []int64) []portalmodel.Skill {
	c.lock.RLock()
	defer c.lock.RUnlock()

	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	skills := []portalmodel.Skill{}
	for _, skill := range c.skills {
		if wanted[skill.ID] {
			skills = append(skills, skill)
		}
	}
	return skills
}

func (c *Catalog) Courses() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return append([]string{}, c.courses...)
}

// Save marks a job as saved by userID and reports whether it was new.
func (c *Catalog) Save(userID string, jobID int64) (bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.jobs[jobID]; !ok {
		return false, pkgerrors.Wrapf(errors.ErrNotFound, "job %d", jobID)
	}
	saved, ok := c.saved[userID]
	if !ok {
		saved = make(map[int64]int64)
		c.saved[userID] = saved
	}
	if _, exists := saved[jobID]; exists {
		return false, nil
	}
	saved[jobID] = c.next()
	return true, nil
}

func (c *Catalog) Unsave(userID string, jobID int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.jobs[jobID]; !ok {
		return pkgerrors.Wrapf(errors.ErrNotFound, "job %d", jobID)
	}
	delete(c.saved[userID], jobID)
	return nil
}

// SavedJobs returns the jobs userID saved, most recent first.
func (c *Catalog) SavedJobs(userID string) []portalmodel.Job {
	c.lock.RLock()
	defer c.lock.RUnlock()

	saved := c.saved[userID]
	jobs := make([]portalmodel.Job, 0, len(saved))
	for jobID := range saved {
		jobs = append(jobs, *c.jobs[jobID])
	}
	sort.Slice(jobs, func(i, j int) bool {
		return saved[jobs[i].ID] > saved[jobs[j].ID]
	})
	return jobs
}

// Recommendations lists the jobs userID has not saved. Matching and scoring
// belong to the real backend; here every job scores zero.
func (c *Catalog) Recommendations(userID string) []portalmodel.RecommendedJob {
	saved := make(map[int64]bool)
	for _, job := range c.SavedJobs(userID) {
		saved[job.ID] = true
	}

	recommended := []portalmodel.RecommendedJob{}
	for _, job := range c.Jobs() {
		if saved[job.ID] {
			continue
		}
		recommended = append(recommended, portalmodel.RecommendedJob{Job: job, RecommendedReason: []string{}})
	}
	return recommended
}

// UpsertApplication creates or updates the application of userID for jobID.
// An unknown status falls back to "applied".
func (c *Catalog) UpsertApplication(userID string, jobID int64, status portalmodel.ApplicationStatus, notes string) (portalmodel.Application, bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	job, ok := c.jobs[jobID]
	if !ok {
		return portalmodel.Application{}, false, pkgerrors.Wrapf(errors.ErrNotFound, "job %d", jobID)
	}
	if !status.Valid() {
		status = portalmodel.StatusApplied
	}

	now := timestamp()
	for _, app := range c.applications {
		if app.userID == userID && app.jobID == jobID {
			app.Status = status
			app.Notes = notes
			app.UpdatedAt = now
			app.seq = c.next()
			return c.view(app), false, nil
		}
	}

	c.nextAppID++
	app := &application{
		Application: portalmodel.Application{
			ID:        c.nextAppID,
			Job:       *job,
			Status:    status,
			Notes:     notes,
			AppliedAt: now,
			UpdatedAt: now,
		},
		userID: userID,
		jobID:  jobID,
		seq:    c.next(),
	}
	c.applications[app.ID] = app
	return c.view(app), true, nil
}

// UpdateApplication applies a partial update. An unknown status is ignored.
func (c *Catalog) UpdateApplication(userID string, id int64, status *portalmodel.ApplicationStatus, notes *string) (portalmodel.Application, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	app, ok := c.applications[id]
	if !ok || app.userID != userID {
		return portalmodel.Application{}, pkgerrors.Wrapf(errors.ErrNotFound, "application %d", id)
	}
	if status != nil && status.Valid() {
		app.Status = *status
	}
	if notes != nil {
		app.Notes = *notes
	}
	app.UpdatedAt = timestamp()
	app.seq = c.next()
	return c.view(app), nil
}

func (c *Catalog) DeleteApplication(userID string, id int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	app, ok := c.applications[id]
	if !ok || app.userID != userID {
		return pkgerrors.Wrapf(errors.ErrNotFound, "application %d", id)
	}
	delete(c.applications, id)
	return nil
}

// Applications returns the applications of userID, most recently updated first.
func (c *Catalog) Applications(userID string) []portalmodel.Application {
	c.lock.RLock()
	defer c.lock.RUnlock()

	owned := make([]*application, 0)
	for _, app := range c.applications {
		if app.userID == userID {
			owned = append(owned, app)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].seq > owned[j].seq
	})

	apps := make([]portalmodel.Application, 0, len(owned))
	for _, app := range owned {
		apps = append(apps, c.view(app))
	}
	return apps
}

// view returns the application with the current job details. Callers hold
// the lock.
func (c *Catalog) view(app *application) portalmodel.Application {
	out := app.Application
	if job, ok := c.jobs[app.jobID]; ok {
		out.Job = *job
	}
	return out
}
