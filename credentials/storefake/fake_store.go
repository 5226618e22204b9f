package storefake

import (
	"sync"

	"github.com/jrsteele09/go-student-jobs/credentials"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credentials.Store for tests. It counts writes and
// can be told to fail them.
type FakeStore struct {
	cred     credentials.Credential
	sets     int
	clears   int
	writeErr error
	lock     sync.RWMutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// NewFakeStoreWith returns a store already holding the given tokens. Empty
// strings mean "absent".
func NewFakeStoreWith(access, refresh string) *FakeStore {
	return &FakeStore{
		cred: credentials.Credential{
			AccessToken:  utils.NonEmpty(access),
			RefreshToken: utils.NonEmpty(refresh),
		},
	}
}

func (s *FakeStore) GetAccessToken() *string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred.Copy().AccessToken
}

func (s *FakeStore) GetRefreshToken() *string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred.Copy().RefreshToken
}

func (s *FakeStore) SetTokens(access string, refresh *string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.sets++
	s.cred.Set(access, refresh)
	return nil
}

func (s *FakeStore) ClearTokens() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.clears++
	s.cred.Clear()
	return nil
}

func (s *FakeStore) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cred.IsAuthenticated()
}

// FailWrites makes every following SetTokens/ClearTokens return err. Pass nil
// to restore normal behaviour.
func (s *FakeStore) FailWrites(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.writeErr = err
}

// Writes returns how many successful SetTokens and ClearTokens calls were made.
func (s *FakeStore) Writes() (sets, clears int) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.sets, s.clears
}
