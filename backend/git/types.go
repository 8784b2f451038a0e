package git

import (
	"sync"

	"codnect.io/chrono"
	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

type Backend struct {
	Config      config.GitConfig
	Repo        *goGit.Repository
	Auth        transport.AuthMethod
	EnableTrace bool

	// go-git worktrees are not safe for concurrent use
	lock      sync.Mutex
	scheduler chrono.TaskScheduler
}

func (s *Backend) Order() int {
	return s.Config.Order
}

func (s *Backend) Name() string {
	return "git"
}

func (s *Backend) Kind() backend.Kind {
	if s.Config.Uri == "" {
		return backend.LocalFile
	}
	return backend.RemoteDocument
}
