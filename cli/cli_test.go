package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	marketbot "github.com/queen94340-spec/us-market-bot"
	"github.com/queen94340-spec/us-market-bot/cli"
)

type stubQuoteService struct {
	quotes  map[string]*marketbot.Quote
	err     error
	fetched []string
}

func (s *stubQuoteService) Fetch(
	ctx context.Context,
	in *marketbot.QuoteFetchInput,
) (*marketbot.QuoteFetchOutput, error) {
	s.fetched = append(s.fetched, in.Symbol)
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quotes[in.Symbol]
	q.Name = in.Name
	q.Symbol = in.Symbol
	return &marketbot.QuoteFetchOutput{Quote: &q}, nil
}

func TestQuoteCommand(t *testing.T) {
	srv := &stubQuoteService{
		quotes: map[string]*marketbot.Quote{
			"NVDA": {
				Price:     181.5,
				PrevClose: 179.4,
				Currency:  "USD",
			},
		},
	}

	buf := &bytes.Buffer{}
	cmd := cli.NewCommand(
		"quote",
		nil,
		cli.QuoteService(srv),
		cli.Tickers([]marketbot.Ticker{
			{Name: "NVIDIA", Symbol: "NVDA"},
		}),
		cli.Writer(buf),
	)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Symbol") {
		t.Errorf("missing table header in:\n%s", out)
	}
	if !strings.Contains(out, "NVDA") {
		t.Errorf("missing NVDA row in:\n%s", out)
	}
	if !strings.Contains(out, "181.50 USD") {
		t.Errorf("missing price in:\n%s", out)
	}
	if !strings.Contains(out, "+1.17%") {
		t.Errorf("missing change percent in:\n%s", out)
	}
}

func TestQuoteCommandArgsOverrideTickers(t *testing.T) {
	srv := &stubQuoteService{
		quotes: map[string]*marketbot.Quote{
			"AAPL": {
				Price:     230.0,
				PrevClose: 229.0,
				Currency:  "USD",
			},
		},
	}

	cmd := cli.NewCommand(
		"quote",
		[]string{"AAPL"},
		cli.QuoteService(srv),
		cli.Tickers(marketbot.DefaultTickers()),
		cli.Writer(&bytes.Buffer{}),
	)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(srv.fetched) != 1 || srv.fetched[0] != "AAPL" {
		t.Errorf("fetched = %v, want [AAPL]", srv.fetched)
	}
}

func TestQuoteCommandFetchError(t *testing.T) {
	srv := &stubQuoteService{
		err: errors.New("http error: 500"),
	}

	cmd := cli.NewCommand(
		"quote",
		[]string{"NVDA"},
		cli.QuoteService(srv),
		cli.Writer(&bytes.Buffer{}),
	)

	err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestWatchCommandOnce(t *testing.T) {
	srv := &stubQuoteService{
		quotes: map[string]*marketbot.Quote{
			"NVDA": {
				Price:     185.0,
				PrevClose: 179.4,
				Currency:  "USD",
			},
		},
	}

	buf := &bytes.Buffer{}
	cmd := cli.NewCommand(
		"watch",
		nil,
		cli.QuoteService(srv),
		cli.Tickers([]marketbot.Ticker{
			{Name: "NVIDIA", Symbol: "NVDA"},
		}),
		cli.Threshold(1.0),
		cli.Once(true),
		cli.Writer(buf),
	)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(buf.String(), "[ALERT] NVIDIA (NVDA)") {
		t.Errorf("missing alert line in:\n%s", buf.String())
	}
}

func TestInvalidCommand(t *testing.T) {
	cmd := cli.NewCommand("charts", nil)

	err := cmd.Execute(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid command") {
		t.Errorf("err = %v, want invalid command", err)
	}
}
