package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
}

// Parse reads page/limit query values. Missing values take the defaults;
// malformed, zero or negative values clamp to 1 instead of being rejected.
// Limit is capped at MaxLimit.
func Parse(page, limit string) Params {
	return Params{
		Page:  parse(page, DefaultPage),
		Limit: min(parse(limit, DefaultLimit), MaxLimit),
	}
}

func parse(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset is (Page-1)*Limit, saturated at math.MaxInt so a page past the
// end of any table yields no rows.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}
