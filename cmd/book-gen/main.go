package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	eventv1 "github.com/muhammadchandra19/book-replay/internal/domain/event/v1"
	"github.com/muhammadchandra19/book-replay/internal/infrastructure/csvfeed"
	"github.com/muhammadchandra19/book-replay/internal/usecase/generate"
	"github.com/shopspring/decimal"
)

func main() {
	defaults := generate.DefaultOptions()

	var (
		dir         = flag.String("dir", ".", "Instrument directory to write order_new.csv and trade_new.csv into")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
		count       = flag.Int("count", defaults.Count, "Number of orders to generate")
		start       = flag.Int64("start", defaults.Start, "Transaction time of the first order (HHMMSSmmm)")
		basePrice   = flag.String("base-price", defaults.BasePrice.String(), "Base price for orders")
		priceSpread = flag.String("price-spread", defaults.PriceSpread.String(), "Price spread range")
		marketRatio = flag.Float64("market-ratio", defaults.MarketRatio, "Share of market orders")
		cancelRatio = flag.Float64("cancel-ratio", defaults.CancelRatio, "Chance of a cancel after each order")
	)
	flag.Parse()

	options := defaults
	options.Count = *count
	options.Start = *start
	options.MarketRatio = *marketRatio
	options.CancelRatio = *cancelRatio

	var err error
	if options.BasePrice, err = decimal.NewFromString(*basePrice); err != nil {
		log.Fatalf("Invalid base price %q: %v", *basePrice, err)
	}
	if options.PriceSpread, err = decimal.NewFromString(*priceSpread); err != nil {
		log.Fatalf("Invalid price spread %q: %v", *priceSpread, err)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *dir, err)
	}

	log.Printf("Generating %d orders with seed %d...", options.Count, *seed)
	orders, executions := generate.New(*seed, options).Generate()

	files := csvfeed.DefaultFiles()
	if err := csvfeed.WriteOrders(filepath.Join(*dir, files.Order), orders); err != nil {
		log.Fatalf("Failed to write orders: %v", err)
	}
	if err := csvfeed.WriteExecutions(filepath.Join(*dir, files.Trade), executions); err != nil {
		log.Fatalf("Failed to write executions: %v", err)
	}

	var market, limit, buy, sell, fills, cancels int
	for _, o := range orders {
		if o.Type == eventv1.OrderTypeMarket {
			market++
		} else {
			limit++
		}
		if o.Side == eventv1.SideBuy {
			buy++
		} else {
			sell++
		}
	}
	for _, e := range executions {
		if e.Type == eventv1.ExecTypeFill {
			fills++
		} else {
			cancels++
		}
	}

	log.Printf("Wrote %s", *dir)
	log.Printf("Orders: %d market, %d limit, %d buy, %d sell", market, limit, buy, sell)
	log.Printf("Executions: %d fills, %d cancels", fills, cancels)
}
