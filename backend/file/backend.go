package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/utils"
	"github.com/rs/zerolog/log"
)

func (s *Backend) Init(_ context.Context, appConfig config.ApplicationConfiguration) error {
	s.Config = appConfig.File
	if s.Config.Path == "" {
		return backend.Failure(backend.ErrConfigurationMissing, nil, "file backend has no path")
	}
	log.Debug().Msgf("Storing data in %s", utils.FriendlyFileName(s.Config.Path))
	return nil
}

func (s *Backend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Config.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, backend.ErrNotFound
	} else if err != nil {
		return nil, backend.Failure(backend.ErrLocalIO, err, "read %s", s.Config.Path)
	}
	return data, nil
}

// Write replaces the file atomically: readers see either the old or the new document
func (s *Backend) Write(_ context.Context, payload []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	dir := filepath.Dir(s.Config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.Path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op after a successful rename

	if _, err = tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.Path)
	}
	if err = tmp.Close(); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.Path)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.Path)
	}
	if err = os.Rename(tmp.Name(), s.Config.Path); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.Path)
	}
	return nil
}

func (s *Backend) Close() {
	// NOOP
}
