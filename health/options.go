package health

import (
	"github.com/go-chi/chi/v5"
	"github.com/heptiolabs/healthcheck"
)

type namedCheck struct {
	name  string
	check healthcheck.Check
}

type opts struct {
	ChiMux    *chi.Mux
	readiness []namedCheck
}

type Opt func(*opts)

func WithChiMux(mux *chi.Mux) Opt {
	return func(o *opts) {
		o.ChiMux = mux
	}
}

// WithReadinessCheck adds an upstream dependency check to /readiness only
func WithReadinessCheck(name string, check healthcheck.Check) Opt {
	return func(o *opts) {
		o.readiness = append(o.readiness, namedCheck{name: name, check: check})
	}
}
