package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategoryLeavesProductsDangling(t *testing.T) {
	doc := Defaults()
	before := len(doc.Products)

	assert.True(t, doc.DeleteCategory("1"))
	assert.False(t, doc.DeleteCategory("1"))

	assert.Len(t, doc.Products, before)
	dangling := doc.ProductsInCategory("1")
	assert.Len(t, dangling, 2)
	for _, c := range doc.Categories {
		assert.NotEqual(t, "1", c.ID)
	}
}

func TestUpsertCategory(t *testing.T) {
	doc := Defaults()

	created, isNew := doc.UpsertCategory(Category{Name: "Porções", Icon: "Utensils"})
	assert.True(t, isNew)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, doc.Categories, 5)

	_, isNew = doc.UpsertCategory(Category{ID: "2", Name: "Pizzas Especiais"})
	assert.False(t, isNew)
	assert.Equal(t, "Pizzas Especiais", doc.Categories[1].Name)
}

func TestUpsertProduct(t *testing.T) {
	doc := Defaults()

	_, _, err := doc.UpsertProduct(Product{Name: "Free lunch", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidDocument)

	p, isNew, err := doc.UpsertProduct(Product{Name: "Novo Produto", Price: decimal.Zero, Category: "9", Available: true})
	require.NoError(t, err)
	assert.True(t, isNew)

	found, ok := doc.FindProduct(p.ID)
	assert.True(t, ok)
	assert.Equal(t, "9", found.Category)

	p.Price = decimal.NewFromInt(12)
	_, isNew, err = doc.UpsertProduct(p)
	require.NoError(t, err)
	assert.False(t, isNew)

	assert.True(t, doc.DeleteProduct(p.ID))
	_, ok = doc.FindProduct(p.ID)
	assert.False(t, ok)
}

func TestBanners(t *testing.T) {
	doc := Defaults()
	doc.AddBanner("https://example.com/b.jpg")
	assert.Len(t, doc.Banners, 3)
	assert.False(t, doc.RemoveBanner(3))
	assert.True(t, doc.RemoveBanner(0))
	assert.Equal(t, "https://example.com/b.jpg", doc.Banners[1])
}

func TestFindDeliveryFeeAndOrder(t *testing.T) {
	doc := Defaults()
	fee, ok := doc.Store.FindDeliveryFee("2")
	assert.True(t, ok)
	assert.Equal(t, "Bairro Exemplo 1", fee.Name)

	_, ok = doc.Store.FindDeliveryFee("x")
	assert.False(t, ok)

	doc.Orders = []Order{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, doc.FindOrder("b"))
	assert.Equal(t, -1, doc.FindOrder("c"))
}

func TestAccepts(t *testing.T) {
	cfg := StoreConfig{AcceptsCard: false, AcceptsCash: true}
	assert.True(t, cfg.Accepts(PaymentPix))
	assert.False(t, cfg.Accepts(PaymentCard))
	assert.True(t, cfg.Accepts(PaymentCash))
	assert.False(t, cfg.Accepts("BITCOIN"))
}

func TestIsOpen(t *testing.T) {
	// 2026-10-19 is a Monday
	at := func(hhmm string) time.Time {
		tm, err := time.Parse("2006-01-02 15:04", "2026-10-19 "+hhmm)
		require.NoError(t, err)
		return tm
	}

	tests := []struct {
		name  string
		hours OpeningHours
		now   time.Time
		want  bool
	}{
		{name: "no hours", hours: nil, now: at("03:00"), want: true},
		{name: "inside", hours: OpeningHours{"monday": {Open: "18:00", Close: "23:00"}}, now: at("19:30"), want: true},
		{name: "open bound", hours: OpeningHours{"monday": {Open: "18:00", Close: "23:00"}}, now: at("18:00"), want: true},
		{name: "close bound", hours: OpeningHours{"monday": {Open: "18:00", Close: "23:00"}}, now: at("23:00"), want: true},
		{name: "before", hours: OpeningHours{"monday": {Open: "18:00", Close: "23:00"}}, now: at("17:59"), want: false},
		{name: "closed flag", hours: OpeningHours{"monday": {Open: "00:00", Close: "23:59", Closed: true}}, now: at("12:00"), want: false},
		{name: "day missing", hours: OpeningHours{"tuesday": {Open: "00:00", Close: "23:59"}}, now: at("12:00"), want: false},
		{name: "past midnight late", hours: OpeningHours{"monday": {Open: "18:00", Close: "02:00"}}, now: at("23:30"), want: true},
		{name: "past midnight early", hours: OpeningHours{"monday": {Open: "18:00", Close: "02:00"}}, now: at("01:00"), want: true},
		{name: "past midnight gap", hours: OpeningHours{"monday": {Open: "18:00", Close: "02:00"}}, now: at("10:00"), want: false},
		{name: "garbage", hours: OpeningHours{"monday": {Open: "six", Close: "23:00"}}, now: at("19:00"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hours.IsOpen(tt.now))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusOutForDelivery.IsValid())
	assert.False(t, Status("Cancelado").IsValid())
	assert.Equal(t, "Cartão (Levar Maquininha)", PaymentCard.Label())
	assert.Equal(t, "Dinheiro", PaymentCash.Label())
}
