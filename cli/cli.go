package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	marketbot "github.com/queen94340-spec/us-market-bot"
	"github.com/queen94340-spec/us-market-bot/logger"
	"github.com/queen94340-spec/us-market-bot/watch"
)

type options struct {
	quoteService marketbot.QuoteService
	tickers      []marketbot.Ticker
	interval     time.Duration
	threshold    float64
	once         bool
	writer       io.Writer
	logger       logger.Logger
}

var defaultOptions = options{
	interval:  60 * time.Second,
	threshold: 1.0,
	writer:    os.Stdout,
}

type Option func(o options) options

func QuoteService(s marketbot.QuoteService) Option {
	return func(o options) options {
		o.quoteService = s
		return o
	}
}

func Tickers(t []marketbot.Ticker) Option {
	return func(o options) options {
		o.tickers = t
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

type Command struct {
	name string
	args []string
	opts options
}

func NewCommand(
	name string,
	args []string,
	os ...Option,
) *Command {
	opts := defaultOptions
	for _, o := range os {
		opts = o(opts)
	}

	return &Command{
		name: name,
		args: args,
		opts: opts,
	}
}

func (c *Command) Execute(ctx context.Context) error {
	switch c.name {
	case "watch":
		return c.watch(ctx)
	case "quote":
		return c.quote(ctx)
	default:
		return fmt.Errorf("invalid command: %v", c.name)
	}
}

func (c *Command) watch(ctx context.Context) error {
	w := watch.NewWatcher(
		watch.Tickers(c.tickers()),
		watch.QuoteService(c.opts.quoteService),
		watch.Interval(c.opts.interval),
		watch.Threshold(c.opts.threshold),
		watch.Once(c.opts.once),
		watch.Writer(c.opts.writer),
		watch.Logger(c.opts.logger),
	)
	return w.Watch(ctx)
}

func (c *Command) quote(ctx context.Context) error {
	tickers := c.tickers()

	quotes := make([]*marketbot.Quote, 0, len(tickers))
	for _, t := range tickers {
		out, err := c.opts.quoteService.Fetch(
			ctx,
			&marketbot.QuoteFetchInput{
				Name:   t.Name,
				Symbol: t.Symbol,
			},
		)
		if err != nil {
			return err
		}
		quotes = append(quotes, out.Quote)
	}

	c.writeQuotes(quotes)
	return nil
}

func (c *Command) writeQuotes(quotes []*marketbot.Quote) {
	out := &bytes.Buffer{}
	w := tabwriter.NewWriter(
		out, 0, 0, 2, ' ', tabwriter.AlignRight)

	p := message.NewPrinter(language.English)

	b := &bytes.Buffer{}
	b.WriteString(fmt.Sprintf("%-10v", "Name"))
	b.WriteByte('\t')
	b.WriteString("Symbol")
	b.WriteByte('\t')
	b.WriteString("Price")
	b.WriteByte('\t')
	b.WriteString("Prev close")
	b.WriteByte('\t')
	b.WriteString("Change")
	b.WriteByte('\t')
	b.WriteString("Change%")
	b.WriteByte('\t')
	fmt.Fprintln(w, b.String())

	for _, q := range quotes {
		b.Reset()
		b.WriteString(fmt.Sprintf("%-10v", q.Name))
		b.WriteByte('\t')
		b.WriteString(q.Symbol)
		b.WriteByte('\t')
		b.WriteString(p.Sprintf("%.2f %s", q.Price, q.Currency))
		b.WriteByte('\t')
		b.WriteString(p.Sprintf("%.2f", q.PrevClose))
		b.WriteByte('\t')
		b.WriteString(p.Sprintf("%+.2f", q.Change()))
		b.WriteByte('\t')
		b.WriteString(p.Sprintf("%+.2f%%", q.ChangePercent()))
		b.WriteByte('\t')
		fmt.Fprintln(w, b.String())
	}

	w.Flush()
	fmt.Fprint(c.opts.writer, out.String())
}

// tickers resolves positional symbol args, falling back
// to the default watch list.
func (c *Command) tickers() []marketbot.Ticker {
	if len(c.args) == 0 {
		if c.opts.tickers != nil {
			return c.opts.tickers
		}
		return marketbot.DefaultTickers()
	}

	tickers := make([]marketbot.Ticker, 0, len(c.args))
	for _, s := range c.args {
		tickers = append(tickers, marketbot.Ticker{
			Name:   s,
			Symbol: s,
		})
	}
	return tickers
}
