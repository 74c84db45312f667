// catalogctl is the command-line companion to catalogd: it queries the API
// and manages backups of the collection file.
package main

import (
	"encoding/json"
	"fmt"
	"os"
)

const defaultServer = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "list":
		runList(args)
	case "get":
		runGet(args)
	case "create":
		runCreate(args)
	case "categories":
		runCategories(args)
	case "stats":
		runStats(args)
	case "cache":
		runCache(args)
	case "backup":
		runBackup(args)
	case "restore":
		runRestore(args)
	case "version":
		runVersion(args)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `catalogctl manages a catalogd server.

Usage:
  catalogctl <command> [flags]

Commands:
  list        query items with search, sort, and pagination
  get         fetch one item by ID
  create      add an item to the collection
  categories  list distinct categories
  stats       show collection statistics
  cache       show or clear the stats cache
  backup      archive the collection file and config
  restore     restore a backup archive
  version     print version information

Run "catalogctl <command> -h" for command flags.
`)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
