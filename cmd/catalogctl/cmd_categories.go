package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ruchirachamara/assessment/pkg/client"
)

func runCategories(args []string) {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	serverAddr := fs.String("server", defaultServer, "base URL of the catalogd server")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	list, err := client.New(*serverAddr).Categories(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "categories failed: %v\n", err)
		os.Exit(1)
	}

	for _, c := range list.Categories {
		fmt.Println(c)
	}
	fmt.Printf("%d categories\n", list.Total)
}
