package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ruchirachamara/assessment/pkg/client"
)

func runCache(args []string) {
	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	serverAddr := fs.String("server", defaultServer, "base URL of the catalogd server")
	clear := fs.Bool("clear", false, "invalidate the stats cache instead of showing its status")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	c := client.New(*serverAddr)

	if *clear {
		if err := c.InvalidateStatsCache(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "cache clear failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Stats cache cleared")
		return
	}

	status, err := c.StatsCacheStatus(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache status failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(status)
}
