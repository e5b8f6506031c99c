package marketbot

import (
	"context"
	"errors"
	"time"
)

// Command is a runnable CLI command.
type Command interface {
	Execute(ctx context.Context) error
}

// Ticker pairs a display name with the symbol
// used by the quote API.
type Ticker struct {
	Name   string
	Symbol string
}

// DefaultTickers returns the watched instruments:
// the S&P 500 index, the VOO ETF and NVIDIA.
func DefaultTickers() []Ticker {
	return []Ticker{
		{Name: "S&P 500", Symbol: "^GSPC"},
		{Name: "VOO", Symbol: "VOO"},
		{Name: "NVIDIA", Symbol: "NVDA"},
	}
}

type QuoteService interface {
	Fetch(
		ctx context.Context,
		in *QuoteFetchInput,
	) (*QuoteFetchOutput, error)
}

type QuoteFetchInput struct {
	Name   string
	Symbol string
}

type QuoteFetchOutput struct {
	Quote *Quote
}

type Quote struct {
	Name      string
	Symbol    string
	Price     float64
	PrevClose float64
	Currency  string
	Time      time.Time
}

// Change returns the price change since the previous close.
func (q *Quote) Change() float64 {
	return q.Price - q.PrevClose
}

// ChangePercent returns the percentage change since
// the previous close. A zero previous close yields 0.
func (q *Quote) ChangePercent() float64 {
	if q.PrevClose == 0 {
		return 0
	}
	return (q.Price - q.PrevClose) / q.PrevClose * 100
}

var ErrNoQuoteData = errors.New("no quote data")

var ErrMissingPrice = errors.New("missing price data")
