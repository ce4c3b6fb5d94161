package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"stockwatch/internal/api"
	"stockwatch/internal/config"
	"stockwatch/internal/view"
)

// stockinfo is a one-shot query tool for the same backend stockwatch
// polls: print a quote card for one symbol, or the symbol directory.
func main() {
	var (
		configPath string
		symbol     string
		list       bool
		asJSON     bool
		timeout    int
	)

	flag.StringVar(&configPath, "config", getenv("CONFIG_PATH", "configs/config.yaml"), "path to config.yaml")
	flag.StringVar(&symbol, "symbol", getenv("STOCKWATCH_SYMBOL", ""), "symbol to quote")
	flag.BoolVar(&list, "list", false, "list symbols the backend can serve")
	flag.BoolVar(&asJSON, "json", false, "print raw JSON instead of a card")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := api.New(cfg.Backend.BaseURL, api.WithProxy(cfg.Proxy))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	switch {
	case list:
		listings, err := client.List(ctx)
		if err != nil {
			log.Fatalf("list symbols: %v", err)
		}
		if asJSON {
			printJSON(listings)
			return
		}
		fmt.Print(view.RenderListings(listings))
	case symbol != "":
		quote, err := client.Quote(ctx, symbol)
		if err != nil {
			log.Fatalf("quote %s: %v", symbol, err)
		}
		if asJSON {
			printJSON(quote)
			return
		}
		fmt.Print(view.RenderQuote(quote))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(b))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x != 0 {
			return x
		}
	}
	return def
}
