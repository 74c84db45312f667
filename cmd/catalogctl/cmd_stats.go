package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ruchirachamara/assessment/pkg/client"
)

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	serverAddr := fs.String("server", defaultServer, "base URL of the catalogd server")
	asJSON := fs.Bool("json", false, "print the raw JSON response")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	stats, err := client.New(*serverAddr).Stats(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		printJSON(stats)
		return
	}
	fmt.Printf("Items:         %d\n", stats.Total)
	fmt.Printf("Average price: %.2f\n", stats.AveragePrice)
}
