package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jrsteele09/go-student-jobs/apiclient"
	"github.com/jrsteele09/go-student-jobs/credentials/filestore"
	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/internal/logging"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/portal"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const msgSessionExpired = "session expired, please log in again"

// app is the wired client: one credentials file, one dispatcher and the
// session on top of it.
type app struct {
	config  config.Config
	logger  zerolog.Logger
	closer  io.Closer
	store   *filestore.FileStore
	client  *portal.Client
	session *portal.Session
}

func newApp(cfg config.Config, verbose bool) (*app, error) {
	if err := os.MkdirAll(cfg.GetDataFolder(), 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", cfg.GetDataFolder(), err)
	}

	level := cfg.GetLogLevel()
	if verbose {
		level = "debug"
	}
	logger, closer := logging.New(logging.Options{
		Env:   cfg.GetEnv(),
		Level: level,
		File:  cfg.GetLogFile(),
		Quiet: !verbose,
	})

	store := filestore.New(cfg.GetCredentialsFile(), filestore.WithLogger(logger))
	endpoints := apiclient.EndpointsFromConfig(cfg)
	dispatcher := apiclient.New(
		apiclient.NewHTTPTransport(cfg.GetBaseURL(), nil, cfg.GetRequestTimeout()),
		store,
		apiclient.WithLogger(logger),
		apiclient.WithEndpoints(endpoints),
		apiclient.WithObserver(func(id string, req *apiclient.Request, state apiclient.State) {
			logger.Trace().Str("request", id).Str("target", req.Target()).Stringer("state", state).Msg("request state")
		}),
	)
	client := portal.NewClient(dispatcher, portal.WithAuthEndpoints(endpoints))

	logger.Debug().Str("base_url", cfg.GetBaseURL()).Str("credentials", store.Path()).Msg("client ready")
	return &app{
		config:  cfg,
		logger:  logger,
		closer:  closer,
		store:   store,
		client:  client,
		session: portal.NewSession(client, store, logger),
	}, nil
}

func (a *app) Close() error {
	return a.closer.Close()
}

// call runs fn and turns its failure into something a person can act on. A
// failure that ended the session logs the user out first.
func (a *app) call(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	err = a.session.Check(err)
	a.logger.Debug().Err(err).Msg("command failed")

	var apiErr *portal.APIError
	var authErr *portal.AuthError
	var netErr *apiclient.NetworkError
	switch {
	case errors.Is(err, errors.ErrSessionEnded):
		return pkgerrors.New(msgSessionExpired)
	case errors.Is(err, errors.ErrNotAuthenticated):
		return pkgerrors.New("not logged in, run 'jobportal login' first")
	case errors.As(err, &authErr):
		return pkgerrors.New(authErr.Message)
	case errors.As(err, &apiErr):
		return fmt.Errorf("%s (HTTP %d)", apiErr.MessageOr("request failed"), apiErr.Status)
	case errors.As(err, &netErr):
		return fmt.Errorf("could not reach %s: %v", a.config.GetBaseURL(), netErr.Err)
	}
	return err
}

// requireLogin fails early when there is no access token, so no request is
// sent that can only be rejected.
func (a *app) requireLogin() error {
	if !utils.IsSet(a.store.GetAccessToken()) {
		return pkgerrors.New("not logged in, run 'jobportal login' first")
	}
	return nil
}
