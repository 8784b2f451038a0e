package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/GlintPay/storefront/catalog"
	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/gateway"
	"github.com/GlintPay/storefront/orders"
	"github.com/GlintPay/storefront/upload"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	"github.com/rs/zerolog/log"
)

const (
	applicationJSON = "application/json"
)

type Routing struct {
	ServerName   string
	ParentRouter chi.Router

	AppConfig config.ApplicationConfiguration
	Gateway   *gateway.Gateway
	Orders    *orders.Service
	Catalog   *catalog.Service
	Uploads   *upload.Service
	Auth      *Auth
}

func (rtr *Routing) SetupFunctionalRoutes(r chi.Router) error {
	if e := rtr.enableOTelForRouter(r); e != nil {
		return e
	}
	if rtr.Gateway == nil || rtr.Orders == nil || rtr.Catalog == nil || rtr.Uploads == nil || rtr.Auth == nil {
		return errors.New("routing is missing a service")
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rtr.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/data", rtr.getDataHandler())
		r.Get("/store/status", rtr.storeStatusHandler())
		r.Post("/orders", rtr.checkoutHandler())
		r.Post("/admin/login", rtr.loginHandler())

		r.Group(func(r chi.Router) {
			r.Use(rtr.Auth.Require)

			r.Post("/data", rtr.saveDataHandler())
			r.Post("/upload", rtr.uploadHandler())

			r.Get("/orders", rtr.listOrdersHandler())
			r.Get("/orders/{id}", rtr.getOrderHandler())
			r.Put("/orders/{id}/status", rtr.orderStatusHandler())
			r.Post("/orders/{id}/review", rtr.reviewHandler())
			r.Delete("/orders/{id}", rtr.deleteOrderHandler())

			r.Put("/categories/{id}", rtr.putCategoryHandler())
			r.Delete("/categories/{id}", rtr.deleteCategoryHandler())
			r.Put("/products/{id}", rtr.putProductHandler())
			r.Delete("/products/{id}", rtr.deleteProductHandler())
			r.Post("/banners", rtr.addBannerHandler())
			r.Delete("/banners/{index}", rtr.removeBannerHandler())
		})
	})

	if _, isLocal := rtr.Uploads.Uploader.(*upload.LocalUploader); isLocal {
		dir := rtr.AppConfig.Upload.LocalDir
		prefix := "/" + upload.KeyPrefix + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(filesOnly{http.Dir(dir)})))
	}

	return nil
}

func (rtr *Routing) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := decodeBody(r.Body, &req); err != nil {
			writeError(w, err)
			return
		}

		token, expires, err := rtr.Auth.Login(req.Password)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				log.Warn().Msg("Failed admin login")
			}
			writeError(w, err)
			return
		}

		writeJson(w, http.StatusOK, map[string]interface{}{"token": token, "expiresAt": expires})
	}
}

func (rtr *Routing) allowedOrigins() []string {
	if len(rtr.AppConfig.Server.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return rtr.AppConfig.Server.AllowedOrigins
}

func (rtr *Routing) enableOTelForRouter(r chi.Router) error {
	if !rtr.AppConfig.Tracing.Enabled {
		return nil
	}

	if rtr.ServerName == "" || rtr.ParentRouter == nil {
		return errors.New("OTel not configured")
	}

	r.Use(otelchi.Middleware(rtr.ServerName, otelchi.WithChiRoutes(rtr.ParentRouter)))

	log.Info().Msgf("OpenTelemetry trace is enabled")
	return nil
}

// filesOnly hides directories, so no listing of uploads is ever served
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

func decodeBody(body io.Reader, val interface{}) error {
	if err := json.NewDecoder(body).Decode(val); err != nil {
		if errors.Is(err, io.EOF) {
			return errBadRequestBody
		}
		return errors.Join(errBadRequestBody, err)
	}
	return nil
}

func routeParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
