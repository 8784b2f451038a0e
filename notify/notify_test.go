package notify

import (
	"net/url"
	"strings"
	"testing"

	"github.com/GlintPay/storefront/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	tests := []struct {
		phone string
		text  string
		want  string
	}{
		{"(11) 99999-0000", "a b&c", "https://wa.me/11999990000?text=a%20b%26c"},
		{"+55 11 98888 7777", "Olá!\n", "https://wa.me/5511988887777?text=Ol%C3%A1%21%0A"},
		{"", "", "https://wa.me/?text="},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Link(tt.phone, tt.text))
		})
	}
}

func TestOrderSummaryMinimal(t *testing.T) {
	order := store.Order{
		Items:       []store.OrderItem{{Name: "X", Quantity: 2, Price: decimal.NewFromInt(10)}},
		Subtotal:    decimal.NewFromInt(20),
		DeliveryFee: decimal.Zero,
		Total:       decimal.NewFromInt(20),
		Payment:     store.PaymentCash,
	}

	text, err := OrderSummary(store.StoreConfig{Name: " Burguer "}, order)
	require.NoError(t, err)

	assert.Equal(t, "*Pedido - Burguer*\n\n"+
		"• 2x X - R$ 20.00\n"+
		"\n*Subtotal: R$ 20.00*"+
		"\n*Total: R$ 20.00*\n\n"+
		"*Endereço:* (Cliente não enviou GPS)\n"+
		"*Forma de Pagamento:* Dinheiro\n", text)
}

func TestOrderSummaryComplete(t *testing.T) {
	order := store.Order{
		Items: []store.OrderItem{
			{Name: "X", Quantity: 2, Price: decimal.NewFromInt(10)},
			{Name: "Y", Quantity: 1, Price: decimal.RequireFromString("5.5")},
		},
		Subtotal:     decimal.RequireFromString("25.5"),
		DeliveryFee:  decimal.NewFromInt(5),
		Total:        decimal.RequireFromString("30.5"),
		Neighborhood: "Centro",
		Payment:      store.PaymentPix,
		Observation:  "Mesa 4",
		Location:     &store.GeoPoint{Lat: -23.5, Lng: -46.6},
	}

	text, err := OrderSummary(store.StoreConfig{Name: "Burguer"}, order)
	require.NoError(t, err)

	assert.Equal(t, "*Pedido - Burguer*\n\n"+
		"• 2x X - R$ 20.00\n"+
		"• 1x Y - R$ 5.50\n"+
		"\n*Subtotal: R$ 25.50*"+
		"\n*Entrega (Centro): R$ 5.00*"+
		"\n*Total: R$ 30.50*\n\n"+
		"*Localização GPS:* https://maps.google.com/?q=-23.5,-46.6\n"+
		"*Bairro:* Centro\n"+
		"\n*Observação / Mesa:* Mesa 4\n"+
		"*Forma de Pagamento:* PIX\n"+
		"\n🚨 *Atenção:* Por favor, envie o *COMPROVANTE DO PIX* logo abaixo para podermos preparar o seu pedido!", text)
}

func TestOrderSummaryLinkGoesToStore(t *testing.T) {
	order := store.Order{
		Items:   []store.OrderItem{{Name: "X", Quantity: 1, Price: decimal.NewFromInt(10)}},
		Payment: store.PaymentCard,
	}

	link, err := OrderSummaryLink(store.StoreConfig{Name: "Burguer", WhatsApp: "+55 (11) 99999-9999"}, order)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999999999?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "*Forma de Pagamento:* Cartão (Levar Maquininha)")
}

func TestStatusLinks(t *testing.T) {
	cfg := store.StoreConfig{Name: "Burguer", WhatsApp: "11 99999-9999", ReviewLink: "https://g.page/r/abc"}

	link, err := OutForDeliveryLink(cfg)
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*Olá! Seu pedido do Burguer está saindo para entrega agora!* 🛵🍔", u.Query().Get("text"))

	link, err = ReviewRequestLink(cfg)
	require.NoError(t, err)
	u, err = url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*Oi! Esperamos que tenha gostado do seu pedido!* 😍\n\n"+
		"Se puder nos avaliar no Google, ajuda muito o nosso trabalho: \n"+
		"https://g.page/r/abc", u.Query().Get("text"))
}
