// Package yahoo resolves security prices from the Yahoo Finance v8 chart API.
//
// A Source keeps one contiguous daily-close window per symbol, so valuing a
// whole portfolio over a period costs one chart request per symbol instead of
// one per day. Non-trading days resolve to the most recent close before them.
package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ssppooff/analysiolo"
)

const defaultBaseURL = "https://query2.finance.yahoo.com"

// markets close for weekends and holidays; scanning back this many days from
// a requested date is always enough to hit a trading day.
const maxClosedStreak = 10

// Source fetches prices from Yahoo and caches daily closes per symbol.
type Source struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger

	mu      sync.Mutex
	windows map[string]*closeWindow
}

// closeWindow is a contiguous span of cached daily closes from `from` to the
// day the window was last fetched.
type closeWindow struct {
	from   analysiolo.Date
	closes map[analysiolo.Date]decimal.Decimal
}

// New returns a Source backed by the public Yahoo endpoint.
func New(log zerolog.Logger) *Source {
	return NewWithClient(&http.Client{Timeout: 8 * time.Second}, defaultBaseURL, log)
}

// NewWithClient returns a Source using the given client and base URL.
func NewWithClient(client *http.Client, baseURL string, log zerolog.Logger) *Source {
	return &Source{
		client:  client,
		baseURL: baseURL,
		log:     log.With().Str("component", "yahoo").Logger(),
		windows: make(map[string]*closeWindow),
	}
}

// CurrentPrice returns the regular market price of symbol.
func (s *Source) CurrentPrice(symbol string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", s.baseURL, url.PathEscape(symbol))
	var jobj any
	if err := s.jwget(addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error retrieving quote for %q: %w", symbol, err)
	}
	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing quote for %q: %q %w", symbol, path, err)
	}
	// jsonpath sometimes wraps a single answer in a list; keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return decimal.Zero, fmt.Errorf("error parsing quote for %q: %q not a positive price: %v", symbol, path, jval)
	}
	return decimal.NewFromFloat(val), nil
}

// PriceOn returns the closing price of symbol on the given date, falling back
// to the most recent close before it on non-trading days.
func (s *Source) PriceOn(symbol string, on analysiolo.Date) (decimal.Decimal, error) {
	if on.IsToday() {
		return s.CurrentPrice(symbol)
	}
	if err := s.extendTo(symbol, on); err != nil {
		return decimal.Zero, err
	}
	if close, ok := s.lookBack(symbol, on); ok {
		return close, nil
	}
	// The date may sit in a closed streak at the very start of the window.
	// Extend the window backwards once and retry.
	if err := s.extendTo(symbol, on.Add(-maxClosedStreak)); err != nil {
		return decimal.Zero, err
	}
	if close, ok := s.lookBack(symbol, on); ok {
		return close, nil
	}
	return decimal.Zero, fmt.Errorf("no %s close on or before %s", symbol, on)
}

// PreloadHistory fetches the daily closes of symbol from `from` to today in
// one request, so later PriceOn calls are served from the cache.
func (s *Source) PreloadHistory(symbol string, from analysiolo.Date) error {
	return s.extendTo(symbol, from)
}

// lookBack returns the cached close on the given date, or the most recent one
// before it within the cached window.
func (s *Source) lookBack(symbol string, on analysiolo.Date) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[symbol]
	if w == nil {
		return decimal.Zero, false
	}
	for d := on; !d.Before(w.from); d = d.Add(-1) {
		if close, ok := w.closes[d]; ok {
			return close, true
		}
	}
	return decimal.Zero, false
}

// extendTo makes sure the cached window of symbol starts no later than `from`.
func (s *Source) extendTo(symbol string, from analysiolo.Date) error {
	s.mu.Lock()
	w := s.windows[symbol]
	if w != nil && !from.Before(w.from) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		s.baseURL, url.PathEscape(symbol), from.Unix(), analysiolo.Today().Add(1).Unix())
	var raw chartResponse
	if err := s.jwget(addr, &raw); err != nil {
		return fmt.Errorf("error retrieving history for %q: %w", symbol, err)
	}
	if len(raw.Chart.Result) == 0 {
		return fmt.Errorf("no chart result for %q", symbol)
	}
	r := raw.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 || len(r.Indicators.Quote[0].Close) != len(r.Timestamp) {
		return fmt.Errorf("malformed chart result for %q", symbol)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w = s.windows[symbol]
	if w == nil {
		w = &closeWindow{closes: make(map[analysiolo.Date]decimal.Decimal)}
		s.windows[symbol] = w
	}
	for i, ts := range r.Timestamp {
		close := r.Indicators.Quote[0].Close[i]
		if close <= 0 {
			continue
		}
		t := time.Unix(ts, 0).UTC()
		w.closes[analysiolo.NewDate(t.Date())] = decimal.NewFromFloat(close)
	}
	w.from = from
	s.log.Debug().Str("symbol", symbol).Stringer("from", from).Int("closes", len(w.closes)).Msg("extended close window")
	return nil
}

// chartResponse is the subset of the v8 chart payload used for history.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (s *Source) jwget(addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "analysiolo/1.0")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
