// Package store holds the storefront document: the single aggregate with the store settings,
// the catalog (categories, products, banners) and the orders. It is always read and written whole.
package store

import (
	"github.com/shopspring/decimal"
)

func init() {
	// money is exchanged with the front end as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Document struct {
	Store      StoreConfig `json:"store"`
	Categories []Category  `json:"categories"`
	Products   []Product   `json:"products"`
	Banners    []string    `json:"banners"`
	Orders     []Order     `json:"orders"`
}

type StoreConfig struct {
	Name         string        `json:"name"`
	Logo         string        `json:"logo"`
	WhatsApp     string        `json:"whatsapp"`
	Address      string        `json:"address"`
	PixKey       string        `json:"pixKey,omitempty"`
	PixQrCode    string        `json:"pixQrCode,omitempty"`
	AcceptsCard  bool          `json:"acceptsCard"`
	AcceptsCash  bool          `json:"acceptsCash"`
	OpeningHours OpeningHours  `json:"openingHours"`
	DeliveryFees []DeliveryFee `json:"deliveryFees"`
	DeliveryTime string        `json:"deliveryTime,omitempty"`
	ReviewLink   string        `json:"reviewLink,omitempty"`
}

// OpeningHours is keyed by lower-case English weekday name, e.g. "monday"
type OpeningHours map[string]DayHours

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

type DeliveryFee struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Fee  decimal.Decimal `json:"fee"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Available   bool            `json:"available"`
}

type Order struct {
	ID           string          `json:"id"`
	Items        []OrderItem     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Neighborhood string          `json:"neighborhood"`
	Payment      PaymentMethod   `json:"payment"`
	Observation  string          `json:"observation"`
	Location     *GeoPoint       `json:"location"`
	Date         string          `json:"date"`
	Status       Status          `json:"status"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Status string

const (
	StatusPending        Status = "Pendente"
	StatusPreparing      Status = "Preparando"
	StatusOutForDelivery Status = "Saindo para Entrega"
	StatusDone           Status = "Pronto"
)

// Statuses in their usual order. Any status may follow any other.
var Statuses = []Status{StatusPending, StatusPreparing, StatusOutForDelivery, StatusDone}

func (s Status) IsValid() bool {
	for _, each := range Statuses {
		if s == each {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "PIX"
	PaymentCard PaymentMethod = "CARD"
	PaymentCash PaymentMethod = "CASH"
)

// Label is how the payment method is shown to the store
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentPix:
		return "PIX"
	case PaymentCard:
		return "Cartão (Levar Maquininha)"
	default:
		return "Dinheiro"
	}
}

// Accepts reports whether the store takes this payment method. PIX is always offered.
func (s StoreConfig) Accepts(p PaymentMethod) bool {
	switch p {
	case PaymentPix:
		return true
	case PaymentCard:
		return s.AcceptsCard
	case PaymentCash:
		return s.AcceptsCash
	default:
		return false
	}
}
