package stubserver

import (
	"fmt"

	"github.com/jrsteele09/go-student-jobs/users"
)

const DefaultDemoUsername = "demo"

// InitialiseSystem creates the demo account if one is configured. The demo
// user is an admin so it can import jobs from the feed.
func (s *Server) InitialiseSystem() error {
	email := s.config.GetDemoEmail()
	if email == "" {
		return nil
	}

	created, err := s.createDemoUser(email, s.config.GetDemoPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap demo user: %w", err)
	}

	if created {
		s.logger.Info().
			Str("email", users.NormaliseEmail(email)).
			Str("password", s.config.GetDemoPassword()).
			Msg("demo account created")
	}
	return nil
}

// createDemoUser creates the demo user unless one with that email exists.
func (s *Server) createDemoUser(email, password string) (bool, error) {
	if existing, err := s.users.GetByEmail(email); err == nil && existing != nil {
		s.logger.Debug().Str("email", existing.Email).Msg("demo user already exists")
		return false, nil
	}

	demo := users.NewStudent(email, DefaultDemoUsername)
	demo.Admin = true
	demo.DateJoined = NowTimeFunc()
	if err := demo.SetPassword(password); err != nil {
		return false, fmt.Errorf("[server createDemoUser] failed to hash password: %w", err)
	}
	if err := s.users.Upsert(demo); err != nil {
		return false, fmt.Errorf("[server createDemoUser] failed to create demo user: %w", err)
	}
	return true, nil
}
