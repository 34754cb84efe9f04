package usecase

import (
	"sort"
	"strings"
	"time"

	"campusmarket/internal/domain/entity"
)

const (
	SortPopular   = "popular"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

const (
	topRatedThreshold = 4.8
	newSellerWindow   = 90 * 24 * time.Hour
)

// BrowseQuery is everything the browse view filters and sorts on.
// Filters maps a filter category to its selected values.
type BrowseQuery struct {
	Query   string
	Filters map[string][]string
	Sort    string
}

// categoryLabels maps filter values onto display categories.
var categoryLabels = map[string][]string{
	"textbooks":   {"Textbooks"},
	"dorm":        {"Dorm Essentials"},
	"electronics": {"Electronics"},
	"sports":      {"Sports & Recreation", "Sports"},
	"uniforms":    {"School Uniforms", "Uniforms"},
	"arts":        {"Art & Music", "Arts"},
}

type priceRange struct {
	min, max float64 // max < 0 means unbounded
}

var priceRanges = map[string]priceRange{
	"0-25":    {0, 25},
	"25-50":   {25, 50},
	"50-100":  {50, 100},
	"100-200": {100, 200},
	"200+":    {200, -1},
}

var locationLabels = map[string]string{
	"north":   "north campus",
	"south":   "south campus",
	"east":    "east campus",
	"west":    "west campus",
	"central": "central campus",
}

type listingPredicate func(l *entity.Listing, value string) bool

// Project filters and sorts listings. It never mutates its input and keeps
// insertion order for ties. sellers resolves seller ids for the seller filter.
func Project(listings []*entity.Listing, sellers map[string]*entity.User, q BrowseQuery, now time.Time) []*entity.Listing {
	predicates := map[string]listingPredicate{
		"category":  matchCategory,
		"condition": matchCondition,
		"price":     matchPrice,
		"location":  matchLocation,
		"seller": func(l *entity.Listing, value string) bool {
			return matchSeller(sellers[l.SellerID], value, now)
		},
	}

	query := strings.ToLower(strings.TrimSpace(q.Query))
	out := make([]*entity.Listing, 0, len(listings))

	for _, l := range listings {
		if query != "" && !matchText(l, query) {
			continue
		}
		if !matchFilters(l, q.Filters, predicates) {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, q.Sort)
	return out
}

func matchText(l *entity.Listing, query string) bool {
	for _, field := range []string{l.Name, l.Description, l.Category, l.Seller, l.Dorm} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// matchFilters ANDs across categories and ORs within one.
// Filter categories this view does not know are ignored.
func matchFilters(l *entity.Listing, filters map[string][]string, predicates map[string]listingPredicate) bool {
	for name, values := range filters {
		if len(values) == 0 {
			continue
		}
		match, ok := predicates[name]
		if !ok {
			continue
		}
		matched := false
		for _, v := range values {
			if match(l, v) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func matchCategory(l *entity.Listing, value string) bool {
	for _, label := range categoryLabels[strings.ToLower(value)] {
		if strings.EqualFold(l.Category, label) {
			return true
		}
	}
	return false
}

func matchCondition(l *entity.Listing, value string) bool {
	for _, c := range entity.Conditions {
		if strings.EqualFold(c.Value, value) {
			return strings.EqualFold(l.Condition, c.Label)
		}
	}
	return false
}

func matchPrice(l *entity.Listing, value string) bool {
	r, ok := priceRanges[value]
	if !ok {
		return false
	}
	price, ok := entity.ParsePrice(l.Price)
	if !ok {
		return false
	}
	return price >= r.min && (r.max < 0 || price < r.max)
}

func matchLocation(l *entity.Listing, value string) bool {
	label, ok := locationLabels[strings.ToLower(value)]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(l.MeetupLocation), label) ||
		strings.Contains(strings.ToLower(l.Dorm), label)
}

func matchSeller(seller *entity.User, value string, now time.Time) bool {
	if seller == nil {
		return false
	}
	switch value {
	case "verified":
		return seller.Verified
	case "top-rated":
		return seller.Rating >= topRatedThreshold
	case "new":
		return !seller.JoinedAt.IsZero() && now.Sub(seller.JoinedAt) <= newSellerWindow
	}
	return false
}

// sortListings sorts in place. Listings without a parseable price go last
// in both price orders.
func sortListings(listings []*entity.Listing, key string) {
	switch key {
	case SortPriceAsc, SortPriceDesc:
		desc := key == SortPriceDesc
		sort.SliceStable(listings, func(i, j int) bool {
			pi, oki := entity.ParsePrice(listings[i].Price)
			pj, okj := entity.ParsePrice(listings[j].Price)
			if oki != okj {
				return oki
			}
			if desc {
				return pi > pj
			}
			return pi < pj
		})
	case SortNewest:
		sort.SliceStable(listings, func(i, j int) bool {
			a, b := listings[i], listings[j]
			if !a.PostedAt.Equal(b.PostedAt) {
				return a.PostedAt.After(b.PostedAt)
			}
			return a.ID > b.ID
		})
	}
}
