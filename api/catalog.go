package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/GlintPay/storefront/catalog"
	"github.com/GlintPay/storefront/store"
)

func (rtr *Routing) putCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category store.Category
		if err := decodeBody(r.Body, &category); err != nil {
			writeError(w, err)
			return
		}
		category.ID = routeParam(r, "id")

		saved, created, err := rtr.Catalog.PutCategory(r.Context(), category)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJson(w, upsertStatus(created), saved)
	}
}

func (rtr *Routing) deleteCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeDeletion(w, rtr.Catalog.DeleteCategory(r.Context(), routeParam(r, "id")))
	}
}

// putProductHandler accepts loosely typed fields, as typed into an admin form
func (rtr *Routing) putProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bs, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, err)
			return
		}

		product, err := store.DecodeProduct(bs)
		if err != nil {
			writeError(w, err)
			return
		}
		product.ID = routeParam(r, "id")

		saved, created, err := rtr.Catalog.PutProduct(r.Context(), product)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJson(w, upsertStatus(created), saved)
	}
}

func (rtr *Routing) deleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeDeletion(w, rtr.Catalog.DeleteProduct(r.Context(), routeParam(r, "id")))
	}
}

func (rtr *Routing) addBannerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Url string `json:"url"`
		}
		if err := decodeBody(r.Body, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.Url == "" {
			writeError(w, errBadRequestBody)
			return
		}

		if err := rtr.Catalog.AddBanner(r.Context(), req.Url); err != nil {
			writeError(w, err)
			return
		}
		writeJson(w, http.StatusCreated, map[string]string{"url": req.Url})
	}
}

func (rtr *Routing) removeBannerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(routeParam(r, "index"))
		if err != nil {
			writeError(w, catalog.ErrNotFound)
			return
		}
		writeDeletion(w, rtr.Catalog.RemoveBanner(r.Context(), index))
	}
}

func upsertStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func writeDeletion(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
