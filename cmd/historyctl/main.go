package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"flatify/internal/adapter/repo"
	"flatify/internal/infra"
	"flatify/internal/sqlinline"
)

func main() {
	var (
		idFlag     string
		emailFlag  string
		actionFlag string
		promptFlag string
	)

	flag.StringVar(&idFlag, "id", "", "user ID (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email")
	flag.StringVar(&actionFlag, "action", "show", "show, add or clear")
	flag.StringVar(&promptFlag, "prompt", "", "prompt to add (with -action add)")
	flag.Parse()
	_ = godotenv.Load()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	action := strings.TrimSpace(strings.ToLower(actionFlag))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	switch action {
	case "show", "clear":
	case "add":
		if strings.TrimSpace(promptFlag) == "" {
			exitWithError(errors.New("-prompt is required with -action add"))
		}
	default:
		exitWithError(fmt.Errorf("unsupported action %q", action))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "historyctl").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	if userID == "" {
		if err := runner.QueryRow(ctx, sqlinline.QSelectUserIDByEmail, email).Scan(&userID); err != nil {
			if infra.IsNoRows(err) {
				exitWithError(fmt.Errorf("no user with email %s", email))
			}
			exitWithError(fmt.Errorf("failed to load user: %w", err))
		}
	}

	histories := repo.NewHistoryRepository(runner)
	var list []string
	switch action {
	case "show":
		list, err = histories.Get(ctx, userID)
	case "add":
		list, err = histories.Append(ctx, userID, promptFlag)
	case "clear":
		err = histories.Clear(ctx, userID)
	}
	if err != nil {
		exitWithError(fmt.Errorf("%s history for %s: %w", action, userID, err))
	}

	if action == "clear" {
		fmt.Printf("Prompt history cleared for user %s\n", userID)
		return
	}
	fmt.Printf("Prompt history for user %s (%d entries)\n", userID, len(list))
	for i, p := range list {
		fmt.Printf("%2d. %s\n", i+1, p)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
