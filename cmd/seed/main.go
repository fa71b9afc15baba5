// Package main provides a tool to seed a database with catalog data.
//
// This loads a tool catalog JSON file and inserts every entry into a
// SQLite database, optionally creating a demo user for local testing.
//
// Usage:
//
//	go run ./cmd/seed --db ./data/nabdh.db --catalog ./data/tools.json
//	go run ./cmd/seed --db ./data/nabdh.db --catalog ./data/tools.json --create-user
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/auth"
	"github.com/nabdhapp/nabdh-server/internal/domain"
	"github.com/nabdhapp/nabdh-server/internal/id"
	"github.com/nabdhapp/nabdh-server/internal/store"
	"github.com/nabdhapp/nabdh-server/internal/store/memory"
	"github.com/nabdhapp/nabdh-server/internal/store/sqlite"
)

var (
	dbPath      = flag.String("db", "./data/nabdh.db", "Path to the SQLite database file")
	catalogPath = flag.String("catalog", "./data/tools.json", "Path to the catalog JSON file")
	createUser  = flag.Bool("create-user", false, "Create a demo user for local testing")
)

func main() {
	flag.Parse()

	fmt.Printf("Opening database at: %s\n", *dbPath)

	s, err := sqlite.Open(*dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	tools, err := memory.LoadCatalogFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	fmt.Printf("Loaded %d tools from %s\n", len(tools), *catalogPath)

	var created, skipped int
	for _, tool := range tools {
		if err := s.CreateTool(ctx, tool); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to create tool %q: %v", tool.Slug, err)
		}
		created++
	}

	fmt.Printf("Seeded %d tools (%d already present)\n", created, skipped)

	if *createUser {
		createDemoUser(ctx, s)
	}
}

func createDemoUser(ctx context.Context, s *sqlite.Store) {
	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     "demo",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			fmt.Println("Demo user already exists, skipping")
			return
		}
		log.Fatalf("Failed to create demo user: %v", err)
	}

	fmt.Printf("Created demo user %q (password: demo-password)\n", user.Username)
}
