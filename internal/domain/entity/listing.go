package entity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ListingFields are the user-supplied parts of a listing, shared by the
// create form and the draft.
type ListingFields struct {
	Name           string `json:"name" yaml:"name"`
	Category       string `json:"category" yaml:"category"`
	Condition      string `json:"condition" yaml:"condition"`
	Price          string `json:"price" yaml:"price"`
	OriginalPrice  string `json:"original_price,omitempty" yaml:"original_price"`
	Description    string `json:"description" yaml:"description"`
	MeetupLocation string `json:"meetup_location" yaml:"meetup_location"`
	ImageSrc       string `json:"image_src,omitempty" yaml:"image_src"`
	ImageAlt       string `json:"image_alt,omitempty" yaml:"image_alt"`
}

type Listing struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Condition      string    `json:"condition"`
	ConditionColor string    `json:"condition_color"`
	Price          string    `json:"price"`
	OriginalPrice  string    `json:"original_price,omitempty"`
	Description    string    `json:"description"`
	ImageSrc       string    `json:"image_src"`
	ImageAlt       string    `json:"image_alt"`
	MeetupLocation string    `json:"meetup_location"`
	Dorm           string    `json:"dorm"`
	Seller         string    `json:"seller"`
	SellerID       string    `json:"seller_id"`
	Badge          string    `json:"badge,omitempty"`
	PostedAt       time.Time `json:"posted_at"`
}

// Condition describes one selectable listing condition.
type Condition struct {
	Value string
	Label string
	Color string
}

var Conditions = []Condition{
	{Value: "new", Label: "New", Color: "bg-blue-100 text-blue-800"},
	{Value: "like-new", Label: "Like New", Color: "bg-green-100 text-green-800"},
	{Value: "good", Label: "Good", Color: "bg-yellow-100 text-yellow-800"},
	{Value: "fair", Label: "Fair", Color: "bg-orange-100 text-orange-800"},
}

// LookupCondition resolves a condition by value or label. Unknown input
// falls back to Good.
func LookupCondition(s string) Condition {
	for _, c := range Conditions {
		if strings.EqualFold(c.Value, s) || strings.EqualFold(c.Label, s) {
			return c
		}
	}
	return Conditions[2]
}

var decimalAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)

// FormatPrice adds the currency prefix when it is missing. Empty stays empty.
func FormatPrice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "$") {
		return s
	}
	return "$" + s
}

// ParsePrice reads the amount out of a currency-prefixed string like "$1,200.50".
// Only plain decimal amounts are accepted.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$ ")
	s = strings.ReplaceAll(s, ",", "")
	if !decimalAmount.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
