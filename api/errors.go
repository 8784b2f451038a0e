package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlintPay/storefront/catalog"
	"github.com/GlintPay/storefront/gateway"
	"github.com/GlintPay/storefront/orders"
	"github.com/GlintPay/storefront/store"
	"github.com/GlintPay/storefront/upload"
	"github.com/rs/zerolog/log"
)

var errBadRequestBody = errors.New("request body is not valid JSON")

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, store.ErrEmptyDocument),
		errors.Is(err, store.ErrInvalidDocument),
		errors.Is(err, orders.ErrValidation),
		errors.Is(err, upload.ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, orders.ErrOrderNotFound), errors.Is(err, catalog.ErrNotFound), errors.Is(err, ErrLoginDisabled):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrUnreadable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorAs(w, "message", err)
}

// writeErrorAs writes {key: message}, with a status that depends on the kind of error
func writeErrorAs(w http.ResponseWriter, key string, err error) {
	status := statusFor(err)

	w.Header().Set("Content-Type", applicationJSON)
	w.WriteHeader(status)

	info := map[string]interface{}{key: err.Error()}
	_ = json.NewEncoder(w).Encode(info)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Stack().Msg("Response error")
	} else {
		log.Debug().Err(err).Msgf("Rejected with %d", status)
	}
}

func writeJson(w http.ResponseWriter, status int, val interface{}) {
	bytes, err := json.Marshal(val)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", applicationJSON)
	w.WriteHeader(status)
	_, _ = w.Write(bytes)
}
