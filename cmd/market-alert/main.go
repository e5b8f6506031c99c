package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	marketbot "github.com/queen94340-spec/us-market-bot"
	"github.com/queen94340-spec/us-market-bot/cli"
	"github.com/queen94340-spec/us-market-bot/logger"
	"github.com/queen94340-spec/us-market-bot/yahoo"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

func main() {
	ctx := context.Background()
	ctx, ctxCancel := context.WithCancel(ctx)
	defer ctxCancel()

	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-termCh
		ctxCancel()
	}()

	// Optional .env next to the binary provides the
	// flag defaults below.
	godotenv.Load()

	optsFlagSet := flag.NewFlagSet(
		"options",
		flag.ExitOnError,
	)
	optsFlagSet.Usage = func() {
		fmt.Printf("%s\n", usage)
		optsFlagSet.PrintDefaults()
		os.Exit(1)
	}
	intervalFlag := optsFlagSet.Duration(
		"interval",
		envDuration("MARKET_ALERT_INTERVAL", 60*time.Second),
		"Polling interval.",
	)
	thresholdFlag := optsFlagSet.Float64(
		"threshold",
		envFloat("MARKET_ALERT_THRESHOLD", 1.0),
		"Alert threshold for percent change "+
			"from the previous close.",
	)
	onceFlag := optsFlagSet.Bool(
		"once",
		false,
		"Fetch and print once, then exit.",
	)
	baseURLFlag := optsFlagSet.String(
		"base-url",
		envString("MARKET_ALERT_BASE_URL", defaultBaseURL),
		"Quote API base URL.",
	)
	timeoutFlag := optsFlagSet.Duration(
		"timeout",
		10*time.Second,
		"HTTP request timeout.",
	)
	rateLimitFlag := optsFlagSet.Duration(
		"rate-limit",
		500*time.Millisecond,
		"Minimum delay between quote API requests.",
	)
	quietFlag := optsFlagSet.Bool(
		"quiet",
		false,
		"Suppress request logging.",
	)

	if len(os.Args) < 2 {
		fmt.Printf("%s\n", usage)
		os.Exit(1)
	}
	name := os.Args[1]
	optsFlagSet.Parse(os.Args[2:])

	zlog, err := zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zlog.Sync()

	log := logger.Zap(zlog.Sugar())
	if *quietFlag {
		log = logger.Nop()
	}

	quoteSrv := yahoo.NewQuoteService(
		yahoo.BaseURL(*baseURLFlag),
		yahoo.Timeout(*timeoutFlag),
		yahoo.RateLimiter(
			rate.NewLimiter(
				rate.Every(*rateLimitFlag),
				1,
			),
		),
		yahoo.Logger(log),
	)

	cmd := cli.NewCommand(
		name,
		optsFlagSet.Args(),
		cli.QuoteService(quoteSrv),
		cli.Tickers(marketbot.DefaultTickers()),
		cli.Interval(*intervalFlag),
		cli.Threshold(*thresholdFlag),
		cli.Once(*onceFlag),
		cli.Writer(os.Stdout),
		cli.Logger(log),
	)
	err = cmd.Execute(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(
	key string,
	fallback time.Duration,
) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

const usage = `usage: market-alert <command> [<flags>] [<symbols>]

US market alert program for S&P 500, VOO and NVIDIA.

Commands:
  watch		Poll quotes and alert on threshold moves
  quote		Fetch quotes once and print a table

Symbols given after the flags replace the default watch
list (^GSPC VOO NVDA).

Flags:
`
