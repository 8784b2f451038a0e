package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    data JSONB NOT NULL,
    updated_at TIMESTAMPTZ DEFAULT NOW()
)`

func (s *Backend) Init(ctxt context.Context, appConfig config.ApplicationConfiguration) error {
	s.Config = appConfig.Postgres
	if !s.Config.IsConfigured() {
		return backend.Failure(backend.ErrConfigurationMissing, nil, "postgres backend needs a url")
	}

	if s.DB == nil {
		db, err := sql.Open("pgx", s.Config.Url)
		if err != nil {
			return backend.Failure(backend.ErrConfigurationMissing, err, "open db")
		}
		s.DB = db
	}

	if _, err := s.DB.ExecContext(ctxt, fmt.Sprintf(schemaSQL, s.table())); err != nil {
		// an unreachable database at startup still leaves the backend in the chain
		log.Warn().Err(err).Msgf("Could not ensure table %s", s.table())
	}
	return nil
}

func (s *Backend) Read(ctxt context.Context) ([]byte, error) {
	var data []byte
	err := s.DB.QueryRowContext(ctxt, fmt.Sprintf(`SELECT data FROM %s WHERE key = $1`, s.table()), s.Config.Key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return nil, backend.ErrNotFound
	} else if err != nil {
		return nil, backend.Failure(backend.ErrRemoteUnavailable, err, "select %s", s.Config.Key)
	}
	return data, nil
}

func (s *Backend) Write(ctxt context.Context, payload []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, data, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`, s.table())

	if _, err := s.DB.ExecContext(ctxt, query, s.Config.Key, string(payload)); err != nil {
		return backend.Failure(backend.ErrRemoteUnavailable, err, "upsert %s", s.Config.Key)
	}
	return nil
}

func (s *Backend) Check(ctxt context.Context) error {
	if err := s.DB.PingContext(ctxt); err != nil {
		return backend.Failure(backend.ErrRemoteUnavailable, err, "ping")
	}
	return nil
}

func (s *Backend) Close() {
	if s.DB == nil {
		return
	}
	if err := s.DB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close DB")
	}
}

func (s *Backend) table() string {
	return pgx.Identifier{s.Config.Table}.Sanitize()
}
