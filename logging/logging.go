package logging

import (
	"io"
	"net/http"

	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func Setup(w io.Writer) {
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.000"
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
}

// RequestLogger logs one structured line per request, in the same JSON shape as the rest of the service
func RequestLogger(serviceName string) func(next http.Handler) http.Handler {
	logger := httplog.NewLogger(serviceName, httplog.Options{
		JSON:    true,
		Concise: true,
	})
	return httplog.RequestLogger(logger)
}
