// Package rates fetches currency exchange rates from third-party providers.
package rates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider returns the base->quote exchange rate.
type Provider interface {
	Rate(base, quote string) (float64, error)
}

var httpClient = &http.Client{Timeout: 5 * time.Second}

// ERAPI queries open.er-api.com.
type ERAPI struct {
	BaseURL string // override in tests; defaults to the public endpoint
}

func (p ERAPI) Rate(base, quote string) (float64, error) {
	u := p.BaseURL
	if u == "" {
		u = "https://open.er-api.com/v6/latest"
	}
	resp, err := httpClient.Get(fmt.Sprintf("%s/%s", u, base))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("er-api: status %d", resp.StatusCode)
	}
	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	r, ok := body.Rates[quote]
	if !ok || r <= 0 {
		return 0, fmt.Errorf("er-api: no rate for %s", quote)
	}
	return r, nil
}

// Frankfurter queries api.frankfurter.app.
type Frankfurter struct {
	BaseURL string
}

func (p Frankfurter) Rate(base, quote string) (float64, error) {
	u := p.BaseURL
	if u == "" {
		u = "https://api.frankfurter.app"
	}
	resp, err := httpClient.Get(fmt.Sprintf("%s/latest?from=%s&to=%s", u, base, quote))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("frankfurter: status %d", resp.StatusCode)
	}
	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	r, ok := body.Rates[quote]
	if !ok || r <= 0 {
		return 0, fmt.Errorf("frankfurter: no rate for %s", quote)
	}
	return r, nil
}
