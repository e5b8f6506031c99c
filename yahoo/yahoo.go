package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	marketbot "github.com/queen94340-spec/us-market-bot"
	"github.com/queen94340-spec/us-market-bot/httprate"
	"github.com/queen94340-spec/us-market-bot/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Yahoo serves the default Go user agent an error page.
const defaultUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/90.0.4430.93 Safari/537.36"

type options struct {
	baseURL     string
	userAgent   string
	interval    string
	chartRange  string
	timeout     time.Duration
	rateLimiter *rate.Limiter
	logger      logger.Logger
}

var defaultOptions = options{
	baseURL:    defaultBaseURL,
	userAgent:  defaultUA,
	interval:   "2m",
	chartRange: "1d",
	timeout:    10 * time.Second,
}

type Option func(o options) options

func BaseURL(u string) Option {
	return func(o options) options {
		o.baseURL = u
		return o
	}
}

func UserAgent(ua string) Option {
	return func(o options) options {
		o.userAgent = ua
		return o
	}
}

func Interval(v string) Option {
	return func(o options) options {
		o.interval = v
		return o
	}
}

func Range(v string) Option {
	return func(o options) options {
		o.chartRange = v
		return o
	}
}

func Timeout(d time.Duration) Option {
	return func(o options) options {
		o.timeout = d
		return o
	}
}

func RateLimiter(l *rate.Limiter) Option {
	return func(o options) options {
		o.rateLimiter = l
		return o
	}
}

func Logger(v logger.Logger) Option {
	return func(o options) options {
		o.logger = v
		return o
	}
}

// NewQuoteService returns a QuoteService backed by the
// Yahoo Finance chart API.
func NewQuoteService(os ...Option) marketbot.QuoteService {
	opts := defaultOptions
	for _, o := range os {
		opts = o(opts)
	}

	return &quoteService{
		opts: opts,
		client: &httprate.RLClient{
			Client: &http.Client{
				Timeout: opts.timeout,
			},
			Ratelimiter: opts.rateLimiter,
			UserAgent:   opts.userAgent,
		},
	}
}

type quoteService struct {
	opts   options
	client *httprate.RLClient
}

func (s *quoteService) Fetch(
	ctx context.Context,
	in *marketbot.QuoteFetchInput,
) (*marketbot.QuoteFetchOutput, error) {
	u := s.chartURL(in.Symbol)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		u,
		nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	s.logf("%v: %v %v", in.Symbol, resp.StatusCode, u)

	if resp.StatusCode < 200 || 299 < resp.StatusCode {
		return nil, fmt.Errorf("http error: %d", resp.StatusCode)
	}

	quote, err := s.parseQuote(resp.Body, in)
	if err != nil {
		return nil, err
	}

	return &marketbot.QuoteFetchOutput{Quote: quote}, nil
}

func (s *quoteService) chartURL(symbol string) string {
	return s.opts.baseURL +
		"/v8/finance/chart/" + url.PathEscape(symbol) +
		"?interval=" + url.QueryEscape(s.opts.interval) +
		"&range=" + url.QueryEscape(s.opts.chartRange)
}

func (s *quoteService) parseQuote(
	r io.Reader,
	in *marketbot.QuoteFetchInput,
) (*marketbot.Quote, error) {
	var body chartResponse
	dec := json.NewDecoder(r)
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %s", err)
	}

	if body.Chart.Error != nil {
		return nil, fmt.Errorf(
			"%s: %s",
			body.Chart.Error.Code,
			body.Chart.Error.Description,
		)
	}

	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf(
			"%s: %w",
			in.Symbol,
			marketbot.ErrNoQuoteData,
		)
	}

	meta := body.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil ||
		meta.PreviousClose == nil {
		return nil, fmt.Errorf(
			"%s: %w",
			in.Symbol,
			marketbot.ErrMissingPrice,
		)
	}

	currency := meta.Currency
	if currency == "" {
		currency = "USD"
	}

	return &marketbot.Quote{
		Name:      in.Name,
		Symbol:    in.Symbol,
		Price:     *meta.RegularMarketPrice,
		PrevClose: *meta.PreviousClose,
		Currency:  currency,
		Time:      time.Unix(meta.RegularMarketTime, 0),
	}, nil
}

func (s *quoteService) logf(
	format string,
	v ...interface{},
) {
	if s.opts.logger != nil {
		s.opts.logger.Logf(format, v...)
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta chartMeta `json:"meta"`
}

type chartMeta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	PreviousClose      *float64 `json:"previousClose"`
	RegularMarketTime  int64    `json:"regularMarketTime"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
