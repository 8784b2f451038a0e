package api

import (
	"errors"
	"net/http"

	"github.com/GlintPay/storefront/upload"
	"github.com/rs/zerolog/log"
)

// multipartOverhead covers boundaries and part headers around the file itself
const multipartOverhead = 64 << 10

func (rtr *Routing) uploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxSize := rtr.AppConfig.Upload.MaxSizeBytes
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

		if err := r.ParseMultipartForm(maxSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeErrorAs(w, "error", upload.ErrTooLarge)
				return
			}
			log.Debug().Err(err).Msg("Unreadable multipart body")
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeErrorAs(w, "error", upload.ErrNoFile)
			return
		}
		defer file.Close()

		if header.Size > maxSize {
			writeErrorAs(w, "error", upload.ErrTooLarge)
			return
		}

		url, err := rtr.Uploads.Store(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			writeErrorAs(w, "error", err)
			return
		}

		writeJson(w, http.StatusOK, map[string]string{"url": url})
	}
}
