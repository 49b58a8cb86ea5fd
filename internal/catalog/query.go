package catalog

import (
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/shopfront/shopfront-backend/pkg/errors"
	"github.com/shopfront/shopfront-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SortOrder enumerates the recognized catalog sort keys.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	// SortNatural means no explicit ORDER BY clause is applied.
	SortNatural SortOrder = ""
)

var centsPerDollar = decimal.NewFromInt(100)

// ListInput is the sanitized catalog query. Price bounds are inclusive
// integer cents; nil means unbounded on that side.
type ListInput struct {
	NameQuery     string
	Categories    []string
	MinPriceCents *int64
	MaxPriceCents *int64
	Sort          SortOrder
	Page          pagination.Params
}

// ParseListInput sanitizes raw query values into a ListInput.
//
// Bounds arrive as decimal dollar strings. The minimum rounds up and the
// maximum rounds down to whole cents, keeping both bounds inclusive over the
// stored integer-cent prices.
func ParseListInput(values url.Values) (*ListInput, error) {
	input := &ListInput{
		NameQuery: strings.TrimSpace(values.Get("q")),
	}

	input.Categories = parseCategories(values)

	minCents, err := parsePriceBound(values.Get("minPrice"), "minPrice", true)
	if err != nil {
		return nil, err
	}
	input.MinPriceCents = minCents

	maxCents, err := parsePriceBound(values.Get("maxPrice"), "maxPrice", false)
	if err != nil {
		return nil, err
	}
	input.MaxPriceCents = maxCents

	switch values.Get("sort") {
	case string(SortNewest):
		input.Sort = SortNewest
	case string(SortPriceAsc):
		input.Sort = SortPriceAsc
	case string(SortPriceDesc):
		input.Sort = SortPriceDesc
	default:
		// unrecognized or absent sort keys fall back to natural order
		input.Sort = SortNatural
	}

	input.Page = pagination.Normalize(pagination.Params{
		Page:  lenientInt(values.Get("page")),
		Limit: lenientInt(values.Get("limit")),
	})

	return input, nil
}

func parseCategories(values url.Values) []string {
	raw := values.Get("categories")
	if raw == "" {
		raw = values.Get("category")
	}
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cats := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cats = append(cats, trimmed)
		}
	}
	return cats
}

func parsePriceBound(raw, field string, roundUp bool) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a decimal number")
	}
	cents := amount.Mul(centsPerDollar)
	if roundUp {
		cents = cents.RoundCeil(0)
	} else {
		cents = cents.RoundFloor(0)
	}
	value := cents.IntPart()
	return &value, nil
}

// lenientInt mirrors loose numeric coercion for page/limit: anything that is
// not a positive integer string yields 0, which Normalize maps to defaults.
func lenientInt(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
