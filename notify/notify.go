package notify

import (
	"net/url"
	"strings"

	"github.com/GlintPay/storefront/store"
	"github.com/GlintPay/storefront/utils"
)

// Link builds a wa.me deep link that opens a chat with phone, pre-filled with text
func Link(phone string, text string) string {
	return "https://wa.me/" + utils.DigitsOnly(phone) + "?text=" + Escape(text)
}

// Escape percent-encodes text for a query value, with spaces as %20
func Escape(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

type message struct {
	Store store.StoreConfig
	Order store.Order
}

func OrderSummary(cfg store.StoreConfig, order store.Order) (string, error) {
	return render(orderSummaryTemplate, message{Store: cfg, Order: order})
}

// OrderSummaryLink is the link a customer follows to send a new order to the store
func OrderSummaryLink(cfg store.StoreConfig, order store.Order) (string, error) {
	text, err := OrderSummary(cfg, order)
	if err != nil {
		return "", err
	}
	return Link(cfg.WhatsApp, text), nil
}

func OutForDeliveryLink(cfg store.StoreConfig) (string, error) {
	text, err := render(outForDeliveryTemplate, message{Store: cfg})
	if err != nil {
		return "", err
	}
	return Link(cfg.WhatsApp, text), nil
}

func ReviewRequestLink(cfg store.StoreConfig) (string, error) {
	text, err := render(reviewRequestTemplate, message{Store: cfg})
	if err != nil {
		return "", err
	}
	return Link(cfg.WhatsApp, text), nil
}

func render(name string, data message) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
