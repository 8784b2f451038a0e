package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/metrics"
	gotel "github.com/GlintPay/storefront/otel"
	"github.com/GlintPay/storefront/store"
	"github.com/rs/zerolog/log"
)

// Result is what a save reports back to the operator. Backend errors never travel further than this.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Gateway struct {
	Backends    backend.Backends
	WriteMode   string
	Metrics     *metrics.Metrics
	EnableTrace bool
}

func New(backends backend.Backends, appConfig config.ApplicationConfiguration, m *metrics.Metrics) *Gateway {
	return &Gateway{
		Backends:    backends.Sorted(),
		WriteMode:   appConfig.Persistence.WriteMode,
		Metrics:     m,
		EnableTrace: appConfig.Tracing.Enabled,
	}
}

// ErrUnreadable means a backend holds a document that could not be read, so the defaults standing
// in for it must not be saved over it
var ErrUnreadable = errors.New("stored document could not be read")

// GetData returns the document held by the highest-priority backend that has a usable one, or the
// built-in document when none has
func (g *Gateway) GetData(ctx context.Context) store.Document {
	doc, _ := g.LoadData(ctx)
	return doc
}

// LoadData is GetData for callers about to save a modified document. When no backend yielded a
// document and at least one failed for a reason other than holding nothing, the defaults are
// returned together with ErrUnreadable.
func (g *Gateway) LoadData(ctx context.Context) (store.Document, error) {
	var failures []string

	for _, each := range g.Backends {
		data, err := g.read(ctx, each)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				log.Debug().Msgf("No document in %s backend", each.Name())
			} else {
				log.Error().Err(err).Stack().Msgf("Reading from %s backend failed", each.Name())
				failures = append(failures, fmt.Sprintf("%s: %s", each.Name(), backend.Classify(err)))
			}
			continue
		}

		doc, err := store.Decode(data)
		if errors.Is(err, store.ErrEmptyDocument) {
			log.Debug().Msgf("Empty document in %s backend", each.Name())
			continue
		} else if err != nil {
			log.Warn().Err(err).Msgf("Skipping unusable document from %s backend", each.Name())
			failures = append(failures, each.Name()+": invalid document")
			continue
		}

		log.Debug().Msgf("Document loaded from %s backend", each.Name())
		return doc, nil
	}

	g.Metrics.DefaultServed()

	if len(failures) > 0 {
		log.Warn().Msgf("Serving defaults, stored document unreadable (%s)", strings.Join(failures, "; "))
		return store.Defaults(), fmt.Errorf("%w (%s)", ErrUnreadable, strings.Join(failures, "; "))
	}

	log.Info().Msg("No stored document, serving defaults")
	return store.Defaults(), nil
}

func (g *Gateway) SaveData(ctx context.Context, doc store.Document) Result {
	if len(g.Backends) == 0 {
		log.Error().Msg("Cannot save: no storage backend is configured")
		return Result{Message: "Save failed: " + backend.Classify(backend.ErrConfigurationMissing)}
	}

	payload, err := store.Encode(doc)
	if err != nil {
		log.Error().Err(err).Stack().Msg("Cannot encode document")
		return Result{Message: "Save failed: document could not be encoded"}
	}

	var saved []string
	var failures []string

	for _, each := range g.Backends {
		if err = g.write(ctx, each, payload); err != nil {
			log.Error().Err(err).Stack().Msgf("Writing to %s backend failed", each.Name())
			failures = append(failures, fmt.Sprintf("%s: %s", each.Name(), backend.Classify(err)))
			continue
		}

		saved = append(saved, each.Name())
		if g.WriteMode != config.WriteModeAll {
			break
		}
	}

	if len(saved) == 0 {
		return Result{Message: "Save failed (" + strings.Join(failures, "; ") + ")"}
	}

	msg := "Saved to " + strings.Join(saved, ", ")
	if len(failures) > 0 {
		msg += " (" + strings.Join(failures, "; ") + ")"
	}
	return Result{Success: true, Message: msg}
}

// Check fails when backends are configured but none of them is reachable
func (g *Gateway) Check(ctx context.Context) error {
	var errs []error
	for _, each := range g.Backends {
		checker, ok := each.(backend.Checker)
		if !ok {
			return nil
		}
		err := checker.Check(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", each.Name(), err))
	}
	return errors.Join(errs...)
}

func (g *Gateway) read(ctx context.Context, b backend.Backend) ([]byte, error) {
	spanCtx, end := gotel.StartBackendSpan(ctx, g.EnableTrace, metrics.OpRead, b.Name())
	start := time.Now()

	data, err := b.Read(spanCtx)

	g.Metrics.BackendCall(b.Name(), metrics.OpRead, err, time.Since(start))
	end(err)
	return data, err
}

func (g *Gateway) write(ctx context.Context, b backend.Backend, payload []byte) error {
	spanCtx, end := gotel.StartBackendSpan(ctx, g.EnableTrace, metrics.OpWrite, b.Name())
	start := time.Now()

	err := b.Write(spanCtx, payload)

	g.Metrics.BackendCall(b.Name(), metrics.OpWrite, err, time.Since(start))
	end(err)
	return err
}
