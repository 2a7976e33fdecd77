package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"revtrack/pkg/client"
)

const usage = `expected a subcommand: ledger | settle | settle-range | stats | businesses | users

env: REVTRACK_URL, REVTRACK_EMAIL, REVTRACK_USERNAME, REVTRACK_GOOGLE_ID`

func main() {
	godotenv.Load()

	ledgerCmd := flag.NewFlagSet("ledger", flag.ExitOnError)
	ledgerUser := ledgerCmd.Int64("user", 0, "scope to this user ID (admin only, default self)")
	ledgerFilter := ledgerCmd.String("filter", "all", "all | weekly | monthly | custom")
	ledgerStart := ledgerCmd.String("start", "", "start date YYYY-MM-DD (custom filter)")
	ledgerEnd := ledgerCmd.String("end", "", "end date YYYY-MM-DD (custom filter)")
	ledgerPage := ledgerCmd.Int("page", 0, "page, 0-indexed")

	settleCmd := flag.NewFlagSet("settle", flag.ExitOnError)
	settleID := settleCmd.Int64("id", 0, "review entry ID")

	rangeCmd := flag.NewFlagSet("settle-range", flag.ExitOnError)
	rangeStart := rangeCmd.String("start", "", "start date YYYY-MM-DD")
	rangeEnd := rangeCmd.String("end", "", "end date YYYY-MM-DD")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listPage := listCmd.Int("page", 0, "page, 0-indexed")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	baseURL := os.Getenv("REVTRACK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/v1"
	}

	c := client.New(baseURL)
	ctx := context.Background()

	if _, err := c.Login(ctx, os.Getenv("REVTRACK_EMAIL"), os.Getenv("REVTRACK_USERNAME"), os.Getenv("REVTRACK_GOOGLE_ID")); err != nil {
		log.Fatalf("login failed: %v", err)
	}
	defer c.Logout(ctx)

	switch os.Args[1] {
	case "ledger":
		ledgerCmd.Parse(os.Args[2:])
		scope := client.Self()
		if *ledgerUser != 0 {
			scope = client.ForUser(*ledgerUser)
		}
		f := client.Filter{Type: *ledgerFilter, StartDate: *ledgerStart, EndDate: *ledgerEnd}
		page, err := c.Ledger(ctx, scope, f, *ledgerPage, 0)
		if err != nil {
			log.Fatalf("ledger: %v", err)
		}
		printJSON(page)

	case "settle":
		settleCmd.Parse(os.Args[2:])
		if *settleID == 0 {
			settleCmd.PrintDefaults()
			os.Exit(1)
		}
		entry, action, err := c.MarkPaid(ctx, *settleID)
		if err != nil {
			log.Fatalf("settle: %v", err)
		}
		fmt.Printf("applied %s\n", action)
		printJSON(entry)

	case "settle-range":
		rangeCmd.Parse(os.Args[2:])
		settled, err := c.MarkPaidRange(ctx, *rangeStart, *rangeEnd)
		if err != nil {
			log.Fatalf("settle-range: %v", err)
		}
		fmt.Printf("settled %d entries\n", settled)

	case "stats":
		stats, err := c.Stats(ctx)
		if err != nil {
			log.Fatalf("stats: %v", err)
		}
		printJSON(stats)

	case "businesses":
		listCmd.Parse(os.Args[2:])
		businesses, total, err := c.Businesses(ctx, *listPage, 0)
		if err != nil {
			log.Fatalf("businesses: %v", err)
		}
		fmt.Printf("%d total\n", total)
		printJSON(businesses)

	case "users":
		listCmd.Parse(os.Args[2:])
		users, total, err := c.Users(ctx, *listPage, 0)
		if err != nil {
			log.Fatalf("users: %v", err)
		}
		fmt.Printf("%d total\n", total)
		printJSON(users)

	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
