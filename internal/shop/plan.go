package shop

import "github.com/quacksim/quacksim/internal/bag"

// Plan is a purchase recommendation: at most two offers, colors
// distinct, within budget.
type Plan struct {
	Purchases  []Offer `json:"purchases"`
	TotalCoins int     `json:"total_coins"`
	TotalValue int     `json:"total_value"`
}

// BestSpend picks the purchase maximizing total token value under the
// coin budget, subject to the market rule: at most two chips per
// visit and their colors must differ. Value ties break toward the
// cheaper purchase. An unaffordable budget yields an empty plan.
//
// The catalog is small enough that enumerating singles and pairs beats
// a knapsack formulation; the two-chip cap rules out unbounded
// quantities anyway.
func BestSpend(cat Catalog, coins int) Plan {
	best := Plan{}
	better := func(p Plan) bool {
		if p.TotalValue != best.TotalValue {
			return p.TotalValue > best.TotalValue
		}
		return len(best.Purchases) > 0 && p.TotalCoins < best.TotalCoins
	}

	for i, a := range cat.Offers {
		if a.PriceCoins > coins {
			continue
		}
		single := Plan{
			Purchases:  []Offer{a},
			TotalCoins: a.PriceCoins,
			TotalValue: a.Value,
		}
		if better(single) {
			best = single
		}
		for _, b := range cat.Offers[i+1:] {
			if a.Color == b.Color || a.PriceCoins+b.PriceCoins > coins {
				continue
			}
			pair := Plan{
				Purchases:  []Offer{a, b},
				TotalCoins: a.PriceCoins + b.PriceCoins,
				TotalValue: a.Value + b.Value,
			}
			if better(pair) {
				best = pair
			}
		}
	}
	return best
}

// Apply adds the planned chips to the bag's permanent pool. Takes
// effect on the next round reset.
func Apply(p Plan, b *bag.Bag) {
	for _, o := range p.Purchases {
		b.AddPermanent(o.Color, o.Value)
	}
}
