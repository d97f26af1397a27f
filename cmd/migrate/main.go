package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/store"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, status")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, closeStore, err := store.OpenMigrator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to %s store: %v", cfg.Store, err)
	}
	defer func() { _ = closeStore(context.Background()) }()

	if err := run(ctx, m, *command); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, m store.Migrator, command string) error {
	switch command {
	case "up":
		if err := m.Up(ctx); err != nil {
			return fmt.Errorf("failed to create book storage: %w", err)
		}
		fmt.Println("Book storage ready")
	case "down":
		if err := m.Down(ctx); err != nil {
			return fmt.Errorf("failed to drop book storage: %w", err)
		}
		fmt.Println("Book storage dropped")
	case "status":
		st, err := m.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to check book storage: %w", err)
		}
		if !st.Exists {
			fmt.Printf("%s: missing\n", st.Name)
			return nil
		}
		fmt.Printf("%s: %d documents\n", st.Name, st.Count)
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status", command)
	}
	return nil
}
