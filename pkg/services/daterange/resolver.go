package daterange

import (
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
)

const DefaultToken = "30d"

type window struct {
	label string
	shift func(end time.Time) time.Time
}

var windows = map[string]window{
	"7d": {
		label: "Últimos 7 días",
		shift: func(end time.Time) time.Time { return end.AddDate(0, 0, -7) },
	},
	"30d": {
		label: "Últimos 30 días",
		shift: func(end time.Time) time.Time { return end.AddDate(0, 0, -30) },
	},
	"90d": {
		label: "Últimos 90 días",
		shift: func(end time.Time) time.Time { return end.AddDate(0, 0, -90) },
	},
	"1y": {
		label: "Último año",
		shift: func(end time.Time) time.Time { return end.AddDate(-1, 0, 0) },
	},
}

// Tokens lists the supported symbolic ranges, shortest first
var Tokens = []string{"7d", "30d", "90d", "1y"}

// Resolver turns a symbolic token into a concrete window ending now
type Resolver interface {
	Resolve(token string) domain.DateRange
	IsSupported(token string) bool
}

type resolver struct {
	now func() time.Time
}

// NewResolver creates a resolver. A nil clock uses time.Now.
func NewResolver(now func() time.Time) Resolver {
	if now == nil {
		now = time.Now
	}
	return &resolver{now: now}
}

// Resolve never fails: a missing or unknown token resolves as the 30 day window
func (r *resolver) Resolve(token string) domain.DateRange {
	w, ok := windows[token]
	if !ok {
		token = DefaultToken
		w = windows[DefaultToken]
	}

	end := r.now()
	return domain.DateRange{
		Token: token,
		Start: w.shift(end),
		End:   end,
		Label: w.label,
	}
}

func (r *resolver) IsSupported(token string) bool {
	_, ok := windows[token]
	return ok
}
