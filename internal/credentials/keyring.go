// Package credentials stores blog passwords in the operating system keychain.
//
// A missing keychain backend is a normal runtime state: the store then turns
// every call into a no-op and lookups report StatusBackendAbsent.
package credentials

import (
	"errors"

	"github.com/99designs/keyring"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/metrics"
)

// Status describes the outcome of a lookup.
type Status int

const (
	StatusFound Status = iota
	StatusNotStored
	StatusBackendAbsent
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotStored:
		return "not_stored"
	case StatusBackendAbsent:
		return "backend_absent"
	default:
		return "failed"
	}
}

// Lookup is the result of Get. Value is only meaningful for StatusFound.
type Lookup struct {
	Value  string
	Status Status
	Err    error
}

// Found reports whether a value was retrieved.
func (l Lookup) Found() bool { return l.Status == StatusFound }

// Store reads and writes blog passwords.
type Store struct {
	ring    keyring.Keyring
	logger  logger.Logger
	metrics metrics.Recorder
}

// Open opens the default keychain for service. When no backend is available
// the returned store is still usable.
func Open(service string, log logger.Logger, rec metrics.Recorder) *Store {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
		// Only OS keychains; the encrypted file backend would prompt for a password.
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.WinCredBackend,
		},
		KeychainTrustApplication: true,
		LibSecretCollectionName:  "login",
		KWalletAppID:             service,
		KWalletFolder:            service,
		WinCredPrefix:            service,
	})
	if err != nil {
		log.Warn("keychain backend unavailable, credentials disabled",
			logger.Error(err))
		ring = nil
	}
	return New(ring, log, rec)
}

// New wraps an already opened keyring. ring may be nil.
func New(ring keyring.Keyring, log logger.Logger, rec metrics.Recorder) *Store {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Store{ring: ring, logger: log, metrics: rec}
}

// Available reports whether a keychain backend is present.
func (s *Store) Available() bool { return s.ring != nil }

// Get returns the password stored for the blog url and account.
func (s *Store) Get(url, identification string) Lookup {
	if url == "" || identification == "" {
		return Lookup{Status: StatusNotStored}
	}

	s.logger.Debug("getting password",
		logger.String("url", url),
		logger.Bool("keychain_present", s.Available()))

	if s.ring == nil {
		s.metrics.RecordCredentialOp("get", StatusBackendAbsent.String())
		return Lookup{Status: StatusBackendAbsent}
	}

	item, err := s.ring.Get(itemKey(url, identification))
	switch {
	case errors.Is(err, keyring.ErrKeyNotFound):
		s.metrics.RecordCredentialOp("get", StatusNotStored.String())
		return Lookup{Status: StatusNotStored}
	case err != nil:
		s.logger.Debug("unable to retrieve password",
			logger.String("url", url),
			logger.Error(err))
		s.metrics.RecordCredentialOp("get", StatusFailed.String())
		return Lookup{Status: StatusFailed, Err: err}
	}

	s.metrics.RecordCredentialOp("get", StatusFound.String())
	return Lookup{Value: string(item.Data), Status: StatusFound}
}

// Set stores a password. Failures are logged, never returned.
func (s *Store) Set(url, identification, value string) {
	s.logger.Debug("updating password",
		logger.String("url", url),
		logger.Bool("keychain_present", s.Available()))

	if s.ring == nil {
		return
	}

	err := s.ring.Set(keyring.Item{
		Key:         itemKey(url, identification),
		Data:        []byte(value),
		Label:       url,
		Description: "Blog password for " + identification,
	})
	if err != nil {
		s.logger.Debug("unable to store password",
			logger.String("url", url),
			logger.Error(err))
		s.metrics.RecordCredentialOp("set", "failed")
		return
	}
	s.metrics.RecordCredentialOp("set", "ok")
}

// Delete removes a password. A missing entry is not an error.
func (s *Store) Delete(url, identification string) {
	s.logger.Debug("deleting password",
		logger.String("url", url),
		logger.Bool("keychain_present", s.Available()))

	if s.ring == nil || url == "" || identification == "" {
		return
	}

	err := s.ring.Remove(itemKey(url, identification))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		s.logger.Info("unable to delete password",
			logger.String("url", url),
			logger.Error(err))
		s.metrics.RecordCredentialOp("delete", "failed")
		return
	}
	s.metrics.RecordCredentialOp("delete", "ok")
}

func itemKey(url, identification string) string {
	return url + "|" + identification
}
