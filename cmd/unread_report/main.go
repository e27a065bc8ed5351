package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"accounthub/pkg/report"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	minUnread := flag.Int64("min", 1, "only list users with at least this many unread notifications")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	rows, err := report.UnreadByUser(context.Background(), db, *minUnread)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	report.Print(os.Stdout, rows)
}
