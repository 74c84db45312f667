package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ruchirachamara/assessment/pkg/client"
	"github.com/ruchirachamara/assessment/pkg/models"
)

func runCreate(args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	serverAddr := fs.String("server", defaultServer, "base URL of the catalogd server")
	name := fs.String("name", "", "item name (required)")
	price := fs.Float64("price", 0, "item price (required)")
	category := fs.String("category", "", "item category")
	description := fs.String("description", "", "item description")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *name == "" {
		fmt.Fprintln(os.Stderr, "error: -name is required")
		fs.Usage()
		os.Exit(1)
	}
	priceSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "price" {
			priceSet = true
		}
	})
	if !priceSet {
		fmt.Fprintln(os.Stderr, "error: -price is required")
		fs.Usage()
		os.Exit(1)
	}

	item, err := client.New(*serverAddr).CreateItem(context.Background(), client.ItemDraft{
		Name:        *name,
		Price:       models.Price(*price),
		Category:    *category,
		Description: *description,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created item %d\n", item.ID)
	printJSON(item)
}
