package services

import (
	"time"

	"bytebazaar/internal/cache"
	applog "bytebazaar/internal/log"
	"bytebazaar/internal/rates"
)

// FallbackRate is the hardcoded last resort when every provider is down.
// Display data only; a full day of staleness is acceptable here.
const FallbackRate = 0.92

// RateService caches the base->quote exchange rate per calendar day
// (server-local). Miss path: primary provider, then secondary, then the
// constant. Whatever it resolves is cached for the rest of the day, so a
// provider outage costs at most one fallback per day.
type RateService struct {
	Base      string
	Quote     string
	Primary   rates.Provider
	Secondary rates.Provider
	Now       func() time.Time

	cache *cache.TTL[float64]
}

func NewRateService(base, quote string, primary, secondary rates.Provider) *RateService {
	s := &RateService{
		Base:      base,
		Quote:     quote,
		Primary:   primary,
		Secondary: secondary,
		Now:       time.Now,
	}
	// Day-keyed entries; the TTL is a backstop, freshness comes from the key.
	s.cache = cache.NewTTL[float64](48*time.Hour, func() time.Time { return s.Now() })
	return s
}

// Rate never fails: it always has the constant to fall back on.
func (s *RateService) Rate() float64 {
	day := s.Now().Format("2006-01-02")
	if r, ok := s.cache.Get(day); ok {
		return r
	}

	r, err := s.Primary.Rate(s.Base, s.Quote)
	if err != nil {
		applog.Warn(nil, "rates.primary.fail", err, map[string]any{"base": s.Base, "quote": s.Quote})
		r, err = s.Secondary.Rate(s.Base, s.Quote)
	}
	if err != nil {
		applog.Warn(nil, "rates.secondary.fail", err, map[string]any{"base": s.Base, "quote": s.Quote})
		r = FallbackRate
	}

	s.cache.Set(day, r)
	return r
}
