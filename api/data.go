package api

import (
	"io"
	"net/http"

	"github.com/GlintPay/storefront/store"
	"github.com/rs/zerolog/log"
)

func (rtr *Routing) getDataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := rtr.Gateway.GetData(r.Context())

		bytes, err := store.Encode(doc)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", applicationJSON)
		_, _ = w.Write(bytes)
	}
}

// saveDataHandler replaces the whole document
func (rtr *Routing) saveDataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bs, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, err)
			return
		}

		doc, err := store.DecodeStrict(bs)
		if err != nil {
			writeError(w, err)
			return
		}
		if err = doc.Validate(); err != nil {
			writeError(w, err)
			return
		}

		result := rtr.Gateway.SaveData(r.Context(), doc)
		if !result.Success {
			log.Error().Msgf("Document not saved: %s", result.Message)
			writeJson(w, http.StatusInternalServerError, map[string]string{"message": result.Message})
			return
		}

		if rtr.AppConfig.Server.LogRequests {
			log.Debug().Msgf("Saved document: %s", string(bs))
		}
		writeJson(w, http.StatusOK, map[string]string{"message": result.Message})
	}
}

func (rtr *Routing) storeStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := rtr.Gateway.GetData(r.Context())
		now := rtr.Orders.Now().In(rtr.Orders.Location)

		writeJson(w, http.StatusOK, map[string]interface{}{
			"open":         doc.Store.OpeningHours.IsOpen(now),
			"deliveryTime": doc.Store.DeliveryTime,
		})
	}
}
