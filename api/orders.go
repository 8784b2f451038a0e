package api

import (
	"net/http"

	"github.com/GlintPay/storefront/orders"
	"github.com/GlintPay/storefront/store"
)

func (rtr *Routing) checkoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orders.CheckoutRequest
		if err := decodeBody(r.Body, &req); err != nil {
			writeError(w, err)
			return
		}

		receipt, err := rtr.Orders.Checkout(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJson(w, http.StatusCreated, receipt)
	}
}

func (rtr *Routing) listOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, http.StatusOK, rtr.Orders.List(r.Context()))
	}
}

func (rtr *Routing) getOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := rtr.Orders.Get(r.Context(), routeParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJson(w, http.StatusOK, order)
	}
}

func (rtr *Routing) orderStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status store.Status `json:"status"`
		}
		if err := decodeBody(r.Body, &req); err != nil {
			writeError(w, err)
			return
		}

		transition, err := rtr.Orders.SetStatus(r.Context(), routeParam(r, "id"), req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJson(w, http.StatusOK, transition)
	}
}

func (rtr *Routing) reviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := rtr.Orders.RequestReview(r.Context(), routeParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJson(w, http.StatusOK, map[string]string{"whatsappUrl": link})
	}
}

func (rtr *Routing) deleteOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rtr.Orders.Delete(r.Context(), routeParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
