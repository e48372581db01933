// Package shop models the ingredient market: a priced catalog and a
// planner that picks the best purchase under a coin budget. Purchases
// land in the bag's permanent pool between rounds.
package shop

import "github.com/quacksim/quacksim/internal/bag"

// Offer is one purchasable ingredient chip.
type Offer struct {
	Color      bag.Color `json:"color"`
	Value      int       `json:"value"`
	PriceCoins int       `json:"price_coins"`
}

// Catalog lists every offer the market carries.
type Catalog struct {
	Offers []Offer
}

// DefaultCatalog returns the standard ingredient price list.
func DefaultCatalog() Catalog {
	return Catalog{Offers: []Offer{
		{Color: bag.Orange, Value: 1, PriceCoins: 3},
		{Color: bag.Green, Value: 1, PriceCoins: 4},
		{Color: bag.Green, Value: 2, PriceCoins: 8},
		{Color: bag.Blue, Value: 1, PriceCoins: 5},
		{Color: bag.Blue, Value: 2, PriceCoins: 10},
		{Color: bag.Blue, Value: 4, PriceCoins: 19},
		{Color: bag.Red, Value: 1, PriceCoins: 6},
		{Color: bag.Red, Value: 2, PriceCoins: 10},
		{Color: bag.Red, Value: 4, PriceCoins: 16},
		{Color: bag.Yellow, Value: 1, PriceCoins: 8},
		{Color: bag.Yellow, Value: 2, PriceCoins: 12},
		{Color: bag.Yellow, Value: 4, PriceCoins: 18},
		{Color: bag.Purple, Value: 1, PriceCoins: 9},
		{Color: bag.Black, Value: 1, PriceCoins: 10},
	}}
}
