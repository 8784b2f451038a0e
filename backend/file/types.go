package file

import (
	"sync"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
)

type Backend struct {
	Config config.FileConfig
	lock   sync.Mutex
}

func (s *Backend) Order() int {
	return s.Config.Order
}

func (s *Backend) Name() string {
	return "file"
}

func (s *Backend) Kind() backend.Kind {
	return backend.LocalFile
}
