package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlintPay/storefront/gateway"
	"github.com/GlintPay/storefront/store"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound = errors.New("not in catalog")
	ErrNotSaved = errors.New("changes were not saved")
)

type Documents interface {
	// LoadData fails with gateway.ErrUnreadable rather than hand out defaults that would overwrite
	// a stored document
	LoadData(ctx context.Context) (store.Document, error)
	SaveData(ctx context.Context, doc store.Document) gateway.Result
}

// Service edits categories and products. Every change loads and saves the whole document.
type Service struct {
	Documents Documents
}

func (s *Service) PutCategory(ctx context.Context, c store.Category) (store.Category, bool, error) {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return store.Category{}, false, err
	}

	saved, created := doc.UpsertCategory(c)
	if err = s.save(ctx, doc); err != nil {
		return store.Category{}, false, err
	}

	log.Info().Msgf("Category %s saved", saved.ID)
	return saved, created, nil
}

// DeleteCategory leaves products of the category in place
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return err
	}

	if !doc.DeleteCategory(id) {
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	if orphans := doc.ProductsInCategory(id); len(orphans) > 0 {
		log.Warn().Msgf("Category %s deleted, %d products still refer to it", id, len(orphans))
	}
	return s.save(ctx, doc)
}

func (s *Service) PutProduct(ctx context.Context, p store.Product) (store.Product, bool, error) {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return store.Product{}, false, err
	}

	saved, created, err := doc.UpsertProduct(p)
	if err != nil {
		return store.Product{}, false, err
	}
	if err = s.save(ctx, doc); err != nil {
		return store.Product{}, false, err
	}

	log.Info().Msgf("Product %s saved", saved.ID)
	return saved, created, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return err
	}

	if !doc.DeleteProduct(id) {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return s.save(ctx, doc)
}

func (s *Service) AddBanner(ctx context.Context, url string) error {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return err
	}

	doc.AddBanner(url)
	return s.save(ctx, doc)
}

func (s *Service) RemoveBanner(ctx context.Context, index int) error {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return err
	}

	if !doc.RemoveBanner(index) {
		return fmt.Errorf("%w: banner %d", ErrNotFound, index)
	}
	return s.save(ctx, doc)
}

func (s *Service) save(ctx context.Context, doc store.Document) error {
	if result := s.Documents.SaveData(ctx, doc); !result.Success {
		return fmt.Errorf("%w: %s", ErrNotSaved, result.Message)
	}
	return nil
}
