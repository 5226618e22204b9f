package apiclient

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-student-jobs/authmodel"
	"github.com/jrsteele09/go-student-jobs/credentials"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "refresh"

// Dispatcher is the single choke point for API calls. It attaches the stored
// access token to outgoing requests and, on an authentication rejection,
// refreshes the token once and retries the request once.
type Dispatcher struct {
	transport Transport
	store     credentials.Store
	endpoints Endpoints
	logger    zerolog.Logger
	observer  Observer
	refreshes singleflight.Group
}

type Option func(*Dispatcher)

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithEndpoints(endpoints Endpoints) Option {
	return func(d *Dispatcher) {
		d.endpoints = endpoints
	}
}

func WithObserver(observer Observer) Option {
	return func(d *Dispatcher) {
		d.observer = observer
	}
}

func New(transport Transport, store credentials.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		store:     store,
		endpoints: DefaultEndpoints(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Store() credentials.Store {
	return d.store
}

func (d *Dispatcher) Endpoints() Endpoints {
	return d.endpoints
}

// Send dispatches req and returns the final outcome. A non-2xx answer is
// returned as a *StatusError, a transport failure as a *NetworkError and an
// unrecoverable authentication failure as a *SessionEndedError.
func (d *Dispatcher) Send(ctx context.Context, req *Request) (*Response, error) {
	at := &attempt{
		id:           uuid.New().String(),
		authEndpoint: d.endpoints.IsAuthEndpoint(req.Path),
	}
	d.observe(at, req, StateInitial)

	prepared := d.prepare(req, d.store.GetAccessToken(), at)
	d.observe(at, req, StateSent)

	resp, err := d.transport.Send(ctx, prepared)
	return d.handle(ctx, req, at, resp, err)
}

// prepare is the outbound phase. The bearer credential is attached only when
// a token is present and the target is not an auth endpoint; nothing else
// about the request changes.
func (d *Dispatcher) prepare(req *Request, token *string, at *attempt) *Request {
	out := req.Clone()
	if utils.IsSet(token) && !at.authEndpoint {
		out.setBearer(*token)
		at.sentToken = *token
	}
	return out
}

// handle is the inbound phase.
func (d *Dispatcher) handle(ctx context.Context, req *Request, at *attempt, resp *Response, err error) (*Response, error) {
	if err != nil {
		d.finish(at, req, StateFailedNonAuth)
		return nil, asNetworkError(req, err)
	}
	if resp.OK() {
		d.finish(at, req, StateSucceeded)
		return resp, nil
	}

	statusErr := newStatusError(req, resp, false)
	if !statusErr.IsAuthRejection() {
		d.finish(at, req, StateFailedNonAuth)
		return nil, statusErr
	}
	if at.authEndpoint || at.retried {
		d.finish(at, req, StateFailedAuthNoRetry)
		return nil, statusErr
	}

	at.retried = true
	d.observe(at, req, StateAwaitingRefresh)

	if !utils.IsSet(d.store.GetRefreshToken()) {
		d.endSession(at, req, "no refresh token")
		d.finish(at, req, StateRetriedFailed)
		return nil, &SessionEndedError{Cause: statusErr}
	}

	access, err := d.awaitRefresh(ctx, at)
	if err != nil {
		d.finish(at, req, StateRetriedFailed)

		var refreshErr *RefreshError
		switch {
		case errors.As(err, &refreshErr):
			return nil, &SessionEndedError{Cause: refreshErr}
		case errors.Is(err, errors.ErrNoRefreshToken):
			// cleared by a concurrent failure while this request was in flight
			d.endSession(at, req, "refresh token disappeared")
			return nil, &SessionEndedError{Cause: statusErr}
		default:
			return nil, asNetworkError(req, err)
		}
	}

	retry := req.Clone()
	retry.setBearer(access)
	d.logger.Debug().Str("request_id", at.id).Str("target", req.Target()).Str("token", utils.Fingerprint(access)).Msg("retrying after refresh")

	resp, err = d.transport.Send(ctx, retry)
	if err != nil {
		d.finish(at, req, StateRetriedFailed)
		return nil, asNetworkError(req, err)
	}
	if !resp.OK() {
		d.finish(at, req, StateRetriedFailed)
		return nil, newStatusError(req, resp, true)
	}
	d.finish(at, req, StateRetriedSucceeded)
	return resp, nil
}

// awaitRefresh returns a fresh access token, sharing one refresh call between
// every request that is waiting for it at the same time.
func (d *Dispatcher) awaitRefresh(ctx context.Context, at *attempt) (string, error) {
	// The refresh outlives the caller that started it; other waiters depend on it.
	ch := d.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		// A refresh that finished after this request was sent has already
		// replaced the rejected token.
		if current := d.store.GetAccessToken(); at.sentToken != "" && utils.IsSet(current) && *current != at.sentToken {
			d.logger.Debug().Str("request_id", at.id).Msg("access token already rotated, skipping refresh")
			return *current, nil
		}
		return d.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			d.logger.Debug().Str("request_id", at.id).Msg("shared in-flight refresh")
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refresh calls the refresh endpoint directly on the transport so it never
// receives the stale bearer credential and is never itself retried.
func (d *Dispatcher) refresh(ctx context.Context) (string, error) {
	refresh := d.store.GetRefreshToken()
	if !utils.IsSet(refresh) {
		return "", errors.ErrNoRefreshToken
	}

	body, err := json.Marshal(authmodel.RefreshRequest{Refresh: *refresh})
	if err != nil {
		return "", d.refreshFailed(errors.Wrapf(err, "failed to encode refresh request"))
	}
	req := NewRequest(http.MethodPost, d.endpoints.Refresh, body)
	req.Header.Set(headerContentType, contentTypeJSON)

	d.logger.Debug().Str("refresh_token", utils.Fingerprint(*refresh)).Msg("refreshing access token")

	resp, err := d.transport.Send(ctx, req)
	if err != nil {
		return "", d.refreshFailed(asNetworkError(req, err))
	}
	if !resp.OK() {
		return "", d.refreshFailed(newStatusError(req, resp, false))
	}

	access := gjson.GetBytes(resp.Body, "access").String()
	if access == "" {
		return "", d.refreshFailed(errors.Wrapf(errors.ErrInvalidToken, "refresh response has no access token"))
	}

	// Prefer a rotated refresh token, fall back to the one we sent.
	next := *refresh
	if rotated := gjson.GetBytes(resp.Body, "refresh").String(); rotated != "" {
		next = rotated
	}
	if err := d.store.SetTokens(access, &next); err != nil {
		return "", d.refreshFailed(errors.Wrapf(err, "failed to store refreshed tokens"))
	}

	d.logger.Info().Str("token", utils.Fingerprint(access)).Bool("rotated", next != *refresh).Msg("access token refreshed")
	return access, nil
}

func (d *Dispatcher) refreshFailed(cause error) error {
	d.logger.Warn().Err(cause).Msg("token refresh failed, clearing credentials")
	if err := d.store.ClearTokens(); err != nil {
		d.logger.Error().Err(err).Msg("failed to clear credentials")
	}
	return &RefreshError{Err: cause}
}

func (d *Dispatcher) endSession(at *attempt, req *Request, reason string) {
	d.logger.Warn().Str("request_id", at.id).Str("target", req.Target()).Str("reason", reason).Msg("session ended, clearing credentials")
	if err := d.store.ClearTokens(); err != nil {
		d.logger.Error().Err(err).Msg("failed to clear credentials")
	}
}

func (d *Dispatcher) observe(at *attempt, req *Request, state State) {
	if d.observer != nil {
		d.observer(at.id, req, state)
	}
}

func (d *Dispatcher) finish(at *attempt, req *Request, state State) {
	d.logger.Debug().Str("request_id", at.id).Str("target", req.Target()).Str("state", state.String()).Msg("request finished")
	d.observe(at, req, state)
}

func asNetworkError(req *Request, err error) error {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr
	}
	return &NetworkError{Method: req.Method, Path: req.Path, Err: err}
}
