package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ruchirachamara/assessment/pkg/client"
)

func runGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	serverAddr := fs.String("server", defaultServer, "base URL of the catalogd server")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: catalogctl get [flags] <id>")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid item ID %q\n", fs.Arg(0))
		os.Exit(1)
	}

	item, err := client.New(*serverAddr).Item(context.Background(), id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(item)
}
