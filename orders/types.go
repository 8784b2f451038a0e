package orders

import (
	"context"
	"errors"

	"github.com/GlintPay/storefront/gateway"
	"github.com/GlintPay/storefront/store"
	"github.com/shopspring/decimal"
)

var (
	ErrValidation    = errors.New("invalid order")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotSaved      = errors.New("changes were not saved")
)

// DateLayout is how order dates are shown to the store: dd/mm/yyyy, HH:MM:SS
const DateLayout = "02/01/2006, 15:04:05"

// Documents loads and saves the whole store document
type Documents interface {
	GetData(ctx context.Context) store.Document
	// LoadData fails with gateway.ErrUnreadable rather than hand out defaults that would overwrite
	// a stored document
	LoadData(ctx context.Context) (store.Document, error)
	SaveData(ctx context.Context, doc store.Document) gateway.Result
}

// CartLine is one line of a customer's cart. When ProductID names a catalog product, the catalog's
// name and price are used instead of the ones sent.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutRequest struct {
	Items          []CartLine          `json:"items"`
	Payment        store.PaymentMethod `json:"payment"`
	NeighborhoodID string              `json:"neighborhoodId"`
	Observation    string              `json:"observation"`
	Location       *store.GeoPoint     `json:"location"`
}

// Receipt is returned whether or not the order could be saved: the WhatsApp link still lets the
// customer send it.
type Receipt struct {
	Order       store.Order `json:"order"`
	Persisted   bool        `json:"persisted"`
	Message     string      `json:"message"`
	WhatsAppUrl string      `json:"whatsappUrl"`
}

type Transition struct {
	Order           store.Order `json:"order"`
	NotificationUrl string      `json:"notificationUrl,omitempty"`
	ReviewAvailable bool        `json:"reviewAvailable"`
}
