package store

import "github.com/shopspring/decimal"

// Defaults returns the built-in document served when no backend holds any data.
// Each call returns a fresh copy.
func Defaults() Document {
	return Document{
		Store: StoreConfig{
			Name:         "Burguer Master",
			Logo:         "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?w=500&q=80",
			WhatsApp:     "5511999999999",
			Address:      "Rua Exemplo, 123 - Centro",
			PixKey:       "seu-email@pix.com",
			AcceptsCard:  true,
			AcceptsCash:  true,
			OpeningHours: DefaultOpeningHours(),
			DeliveryFees: []DeliveryFee{
				{ID: "1", Name: "Centro", Fee: decimal.NewFromInt(5)},
				{ID: "2", Name: "Bairro Exemplo 1", Fee: decimal.NewFromInt(7)},
				{ID: "3", Name: "Bairro Exemplo 2", Fee: decimal.NewFromInt(10)},
			},
			DeliveryTime: "40-60 min",
			ReviewLink:   "https://g.page/sua-loja/review",
		},
		Categories: []Category{
			{ID: "1", Name: "Burgers", Icon: "Pizza"},
			{ID: "2", Name: "Pizzas", Icon: "Pizza"},
			{ID: "3", Name: "Bebidas", Icon: "Coffee"},
			{ID: "4", Name: "Sobremesas", Icon: "Cake"},
		},
		Products: []Product{
			{
				ID:          "p1",
				Name:        "Classic Burger",
				Description: "Hambúrguer de 150g, queijo, alface, tomate e maionese especial.",
				Price:       decimal.RequireFromString("25.90"),
				Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=500&auto=format&fit=crop&q=60",
				Category:    "1",
				Available:   true,
			},
			{
				ID:          "p2",
				Name:        "Cheeseburger Duplo",
				Description: "Dois hambúrgueres, queijo dobro e molho especial.",
				Price:       decimal.RequireFromString("35.00"),
				Image:       "https://images.unsplash.com/photo-1550547660-d9450f859349?w=500&auto=format&fit=crop&q=60",
				Category:    "1",
				Available:   true,
			},
			{
				ID:          "p3",
				Name:        "Pizza Margherita",
				Description: "Molho de tomate, mussarela e manjericão fresco.",
				Price:       decimal.RequireFromString("49.90"),
				Image:       "https://images.unsplash.com/photo-1604382354936-07c5d9983bd3?w=500&auto=format&fit=crop&q=60",
				Category:    "2",
				Available:   true,
			},
		},
		Banners: []string{
			"https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=1000&auto=format&fit=crop&q=60",
			"https://images.unsplash.com/photo-1513104890138-7c749659a591?w=1000&auto=format&fit=crop&q=60",
		},
		Orders: []Order{},
	}
}

func DefaultOpeningHours() OpeningHours {
	weekday := DayHours{Open: "18:00", Close: "23:00"}
	weekend := DayHours{Open: "18:00", Close: "23:59"}
	return OpeningHours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekend,
		"saturday":  weekend,
		"sunday":    weekday,
	}
}
