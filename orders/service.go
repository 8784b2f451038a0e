package orders

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/metrics"
	"github.com/GlintPay/storefront/notify"
	"github.com/GlintPay/storefront/store"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Service struct {
	Documents Documents
	Metrics   *metrics.Metrics
	Location  *time.Location
	Now       func() time.Time
}

func New(docs Documents, appConfig config.ApplicationConfiguration, m *metrics.Metrics) (*Service, error) {
	loc, err := time.LoadLocation(appConfig.Store.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("store time zone %q: %w", appConfig.Store.TimeZone, err)
	}
	return &Service{Documents: docs, Metrics: m, Location: loc, Now: time.Now}, nil
}

// Checkout places a new order at the head of the order list and saves the document. A failed save
// is reported in the receipt, not as an error.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (Receipt, error) {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return Receipt{}, err
	}

	order, err := s.buildOrder(doc, req)
	if err != nil {
		return Receipt{}, err
	}

	doc.Orders = append([]store.Order{order}, doc.Orders...)
	result := s.Documents.SaveData(ctx, doc)

	if result.Success {
		log.Info().Msgf("Order %s placed, total %s", order.ID, order.Total.StringFixed(2))
	} else {
		log.Warn().Msgf("Order %s placed but not saved: %s", order.ID, result.Message)
	}
	s.Metrics.OrderPlaced(result.Success)

	link, err := notify.OrderSummaryLink(doc.Store, order)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{
		Order:       order,
		Persisted:   result.Success,
		Message:     result.Message,
		WhatsAppUrl: link,
	}, nil
}

func (s *Service) buildOrder(doc store.Document, req CheckoutRequest) (store.Order, error) {
	if len(req.Items) == 0 {
		return store.Order{}, invalid("cart is empty")
	}

	switch req.Payment {
	case store.PaymentPix, store.PaymentCard, store.PaymentCash:
		if !doc.Store.Accepts(req.Payment) {
			return store.Order{}, invalid("the store does not accept %s", req.Payment.Label())
		}
	case "":
		return store.Order{}, invalid("a payment method is required")
	default:
		return store.Order{}, invalid("unknown payment method %q", req.Payment)
	}

	items := make([]store.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero

	for i, line := range req.Items {
		if line.Quantity < 1 {
			return store.Order{}, invalid("item %d has quantity %d", i+1, line.Quantity)
		}

		item := store.OrderItem{Name: line.Name, Quantity: line.Quantity, Price: line.Price}
		if product, ok := doc.FindProduct(line.ProductID); ok && line.ProductID != "" {
			if !product.Available {
				return store.Order{}, invalid("%s is not available", product.Name)
			}
			item.Name = product.Name
			item.Price = product.Price
		}

		if strings.TrimSpace(item.Name) == "" {
			return store.Order{}, invalid("item %d has no product", i+1)
		}
		if item.Price.IsNegative() {
			return store.Order{}, invalid("%s has a negative price", item.Name)
		}

		items = append(items, item)
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := store.Order{
		ID:          store.NewID(),
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: decimal.Zero,
		Payment:     req.Payment,
		Observation: strings.TrimSpace(req.Observation),
		Location:    req.Location,
		Date:        s.Now().In(s.Location).Format(DateLayout),
		Status:      store.StatusPending,
	}

	if req.NeighborhoodID != "" {
		fee, ok := doc.Store.FindDeliveryFee(req.NeighborhoodID)
		if !ok {
			return store.Order{}, invalid("unknown neighborhood %q", req.NeighborhoodID)
		}
		order.Neighborhood = fee.Name
		order.DeliveryFee = fee.Fee
	}

	order.Total = order.Subtotal.Add(order.DeliveryFee)
	return order, nil
}

// SetStatus changes one order's status and saves the document. Any status may follow any other.
func (s *Service) SetStatus(ctx context.Context, id string, status store.Status) (Transition, error) {
	if !status.IsValid() {
		return Transition{}, invalid("unknown status %q", status)
	}

	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return Transition{}, err
	}

	idx := doc.FindOrder(id)
	if idx < 0 {
		return Transition{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}

	doc.Orders[idx].Status = status
	if err := s.save(ctx, doc); err != nil {
		return Transition{}, err
	}

	s.Metrics.StatusChanged(string(status))
	log.Info().Msgf("Order %s is now %s", id, status)

	transition := Transition{Order: doc.Orders[idx]}

	switch status {
	case store.StatusOutForDelivery:
		link, err := notify.OutForDeliveryLink(doc.Store)
		if err != nil {
			return Transition{}, err
		}
		transition.NotificationUrl = link
	case store.StatusDone:
		transition.ReviewAvailable = doc.Store.ReviewLink != ""
	}

	return transition, nil
}

// RequestReview returns the review request link for a completed order
func (s *Service) RequestReview(ctx context.Context, id string) (string, error) {
	doc := s.Documents.GetData(ctx)

	idx := doc.FindOrder(id)
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if doc.Orders[idx].Status != store.StatusDone {
		return "", invalid("order %s is not %s yet", id, store.StatusDone)
	}
	if doc.Store.ReviewLink == "" {
		return "", invalid("the store has no review link")
	}

	return notify.ReviewRequestLink(doc.Store)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.Documents.LoadData(ctx)
	if err != nil {
		return err
	}

	idx := doc.FindOrder(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}

	doc.Orders = append(doc.Orders[:idx], doc.Orders[idx+1:]...)
	if err := s.save(ctx, doc); err != nil {
		return err
	}

	log.Info().Msgf("Order %s deleted", id)
	return nil
}

// List returns the orders newest first
func (s *Service) List(ctx context.Context) []store.Order {
	return s.Documents.GetData(ctx).Orders
}

func (s *Service) Get(ctx context.Context, id string) (store.Order, error) {
	doc := s.Documents.GetData(ctx)

	idx := doc.FindOrder(id)
	if idx < 0 {
		return store.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return doc.Orders[idx], nil
}

func (s *Service) save(ctx context.Context, doc store.Document) error {
	if result := s.Documents.SaveData(ctx, doc); !result.Success {
		return fmt.Errorf("%w: %s", ErrNotSaved, result.Message)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
