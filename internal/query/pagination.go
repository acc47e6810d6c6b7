package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortOrder is the direction of the single ordering field.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder recognises "asc" and "desc"; anything else yields def.
func ParseSortOrder(s string, def SortOrder) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc
	case "desc":
		return Desc
	}
	return def
}

// PageParams are the caller's raw paging inputs.
type PageParams struct {
	Page  string
	Limit string
	Sort  string
}

// PageConfig carries the per-resource defaults.
type PageConfig struct {
	DefaultLimit int
	MaxLimit     int
	SortField    string
	DefaultOrder SortOrder
}

// Directive is the normalized fetch plan.
type Directive struct {
	Page      int
	Offset    int
	Limit     int
	SortField string
	SortOrder SortOrder
}

// Paginate normalizes paging input. Invalid numbers fall back to defaults,
// so the result always has Page >= 1, Limit >= 1 and Offset >= 0.
func Paginate(p PageParams, cfg PageConfig) Directive {
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	defLimit := cfg.DefaultLimit
	if defLimit <= 0 {
		defLimit = DefaultLimit
	}
	if defLimit > maxLimit {
		defLimit = maxLimit
	}
	defOrder := cfg.DefaultOrder
	if defOrder != Asc {
		defOrder = Desc
	}

	limit := positiveInt(p.Limit, defLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	page := positiveInt(p.Page, DefaultPage)
	// offset must stay representable
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}

	return Directive{
		Page:      page,
		Offset:    (page - 1) * limit,
		Limit:     limit,
		SortField: cfg.SortField,
		SortOrder: ParseSortOrder(p.Sort, defOrder),
	}
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
