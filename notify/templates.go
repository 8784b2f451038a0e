package notify

import (
	"text/template"

	"github.com/GlintPay/storefront/store"
	"github.com/Masterminds/sprig"
	"github.com/shopspring/decimal"
)

const (
	orderSummaryTemplate   = "order-summary"
	outForDeliveryTemplate = "out-for-delivery"
	reviewRequestTemplate  = "review-request"
)

const orderSummary = `*Pedido - {{ .Store.Name | trim }}*

{{ range .Order.Items }}• {{ .Quantity }}x {{ .Name }} - R$ {{ lineTotal . }}
{{ end }}
*Subtotal: R$ {{ money .Order.Subtotal }}*
{{- if .Order.Neighborhood }}
*Entrega ({{ .Order.Neighborhood }}): R$ {{ money .Order.DeliveryFee }}*
{{- end }}
*Total: R$ {{ money .Order.Total }}*

{{ with .Order.Location }}*Localização GPS:* https://maps.google.com/?q={{ .Lat }},{{ .Lng }}{{ else }}*Endereço:* (Cliente não enviou GPS){{ end }}
{{ with .Order.Neighborhood }}*Bairro:* {{ . }}
{{ end }}{{ with .Order.Observation | trim }}
*Observação / Mesa:* {{ . }}
{{ end }}*Forma de Pagamento:* {{ .Order.Payment.Label }}
{{ if eq (toString .Order.Payment) "PIX" }}
🚨 *Atenção:* Por favor, envie o *COMPROVANTE DO PIX* logo abaixo para podermos preparar o seu pedido!{{ end }}`

const outForDelivery = `*Olá! Seu pedido do {{ .Store.Name | trim }} está saindo para entrega agora!* 🛵🍔`

const reviewRequest = `*Oi! Esperamos que tenha gostado do seu pedido!* 😍

Se puder nos avaliar no Google, ajuda muito o nosso trabalho: 
{{ .Store.ReviewLink }}`

var templates = template.Must(template.New(orderSummaryTemplate).Funcs(funcMap()).Parse(orderSummary))

func init() {
	template.Must(templates.New(outForDeliveryTemplate).Parse(outForDelivery))
	template.Must(templates.New(reviewRequestTemplate).Parse(reviewRequest))
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["money"] = func(d decimal.Decimal) string {
		return d.StringFixed(2)
	}
	funcs["lineTotal"] = func(item store.OrderItem) string {
		return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
	}
	return funcs
}
