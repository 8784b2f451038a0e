package postgres

import (
	"database/sql"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
)

type Backend struct {
	Config config.PostgresConfig
	DB     *sql.DB
}

func (s *Backend) Order() int {
	return s.Config.Order
}

func (s *Backend) Name() string {
	return "postgres"
}

func (s *Backend) Kind() backend.Kind {
	return backend.KeyValue
}
