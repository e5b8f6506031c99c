package watch

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	marketbot "github.com/queen94340-spec/us-market-bot"
	"github.com/queen94340-spec/us-market-bot/logger"
)

type options struct {
	tickers      []marketbot.Ticker
	quoteService marketbot.QuoteService
	interval     time.Duration
	threshold    float64
	once         bool
	writer       io.Writer
	logger       logger.Logger
}

var defaultOptions = options{
	interval:  60 * time.Second,
	threshold: 1.0,
}

type Option func(o options) options

func Tickers(t []marketbot.Ticker) Option {
	return func(o options) options {
		o.tickers = t
		return o
	}
}

func QuoteService(s marketbot.QuoteService) Option {
	return func(o options) options {
		o.quoteService = s
		return o
	}
}

func Interval(d time.Duration) Option {
	return func(o options) options {
		o.interval = d
		return o
	}
}

func Threshold(v float64) Option {
	return func(o options) options {
		o.threshold = v
		return o
	}
}

func Once(v bool) Option {
	return func(o options) options {
		o.once = v
		return o
	}
}

func Writer(w io.Writer) Option {
	return func(o options) options {
		o.writer = w
		return o
	}
}

func Logger(v logger.Logger) Option {
	return func(o options) options {
		o.logger = v
		return o
	}
}

// Watcher polls quotes at a fixed interval and writes an
// alert line for every move at or beyond the threshold.
type Watcher struct {
	opts    options
	printer *message.Printer
}

func NewWatcher(os ...Option) *Watcher {
	opts := defaultOptions
	for _, o := range os {
		opts = o(opts)
	}

	if opts.tickers == nil {
		opts.tickers = marketbot.DefaultTickers()
	}

	return &Watcher{
		opts:    opts,
		printer: message.NewPrinter(language.English),
	}
}

// Watch runs the first cycle immediately and then one
// cycle per interval until ctx is cancelled. In once mode
// it returns after the first cycle. Fetch failures are
// reported on the writer and never stop the loop.
func (w *Watcher) Watch(ctx context.Context) error {
	w.cycle(ctx)
	if w.opts.once {
		return nil
	}

	t := time.NewTicker(w.opts.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.cycle(ctx)
		}
	}
}

func (w *Watcher) cycle(ctx context.Context) {
	quotes := make([]*marketbot.Quote, 0, len(w.opts.tickers))
	errs := make([]string, 0)

	for _, t := range w.opts.tickers {
		out, err := w.opts.quoteService.Fetch(
			ctx,
			&marketbot.QuoteFetchInput{
				Name:   t.Name,
				Symbol: t.Symbol,
			},
		)
		if err != nil {
			errs = append(errs, fmt.Sprintf(
				"%s (%s): %s",
				t.Name, t.Symbol, err,
			))
			continue
		}
		quotes = append(quotes, out.Quote)
	}

	if len(errs) > 0 {
		w.writef("[WARN] Failed to fetch some quotes:")
		for _, e := range errs {
			w.writef("  - %s", e)
		}
	}

	for _, q := range quotes {
		line := w.FormatQuote(q)
		if ShouldAlert(q, w.opts.threshold) {
			w.writef("[ALERT] %s", line)
		} else {
			w.writef("[INFO]  %s", line)
		}
	}

	w.logf(
		"cycle done: %d quotes, %d errors",
		len(quotes),
		len(errs),
	)
}

func (w *Watcher) logf(format string, v ...interface{}) {
	if w.opts.logger != nil {
		w.opts.logger.Logf(format, v...)
	}
}

// ShouldAlert reports whether the quote moved at least
// threshold percent in either direction since the
// previous close.
func ShouldAlert(q *marketbot.Quote, threshold float64) bool {
	return math.Abs(q.ChangePercent()) >= threshold
}

// FormatQuote renders a quote as a single console line,
// e.g. "NVIDIA (NVDA) 181.50 USD (+2.10, +1.17%)".
func (w *Watcher) FormatQuote(q *marketbot.Quote) string {
	return w.printer.Sprintf(
		"%s (%s) %.2f %s (%+.2f, %+.2f%%)",
		q.Name,
		q.Symbol,
		q.Price,
		q.Currency,
		q.Change(),
		q.ChangePercent(),
	)
}

func (w *Watcher) writef(format string, v ...interface{}) {
	out := w.opts.writer
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, v...)
	fmt.Fprintln(out)
}
