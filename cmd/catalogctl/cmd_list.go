package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ruchirachamara/assessment/pkg/client"
	"github.com/ruchirachamara/assessment/pkg/query"
)

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	serverAddr := fs.String("server", defaultServer, "base URL of the catalogd server")
	term := fs.String("q", "", "search term")
	category := fs.String("category", "", "category filter")
	sortBy := fs.String("sort", "", "sort field: id, name, price, category, createdAt")
	order := fs.String("order", "", "sort order: asc or desc")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size (max 100)")
	asJSON := fs.Bool("json", false, "print the raw JSON response")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	c := client.New(*serverAddr)
	res, err := c.ListItems(context.Background(), query.Query{
		Q:         *term,
		Category:  *category,
		SortBy:    *sortBy,
		SortOrder: *order,
		Page:      *page,
		Limit:     *limit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		printJSON(res)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY")
	for _, it := range res.Items {
		price := "-"
		if it.Price != nil {
			price = fmt.Sprintf("%.2f", *it.Price)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.ID, it.Name, price, it.Category)
	}
	w.Flush()

	fmt.Printf("page %d/%d, %d match(es)\n",
		res.Pagination.CurrentPage, res.Pagination.TotalPages, res.Search.ResultsFound)
	if c.Legacy() {
		fmt.Println("note: server speaks the legacy contract; the query ran client-side")
	}
}
