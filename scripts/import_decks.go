//go:build ignore

// Imports a deck catalog into Postgres. The source is either a simulation
// input document (.json, .yaml, .yml) or a CSV export with the header
// player,deck,position,mana,attackDamage,health,description,colors,name
// where colors are separated by ';'.
//
//	go run scripts/import_decks.go decks.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/magefree/arena-go/internal/config"
	"github.com/magefree/arena-go/internal/deck"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/magefree/arena-go/internal/input"
	"github.com/magefree/arena-go/internal/repository"
	"go.uber.org/zap"
)

const csvColumns = 9

func main() {
	ctx := context.Background()

	srcPath := "data/decks.csv"
	if len(os.Args) > 1 {
		srcPath = os.Args[1]
	}

	absPath, err := filepath.Abs(srcPath)
	if err != nil {
		log.Fatalf("Failed to get absolute path: %v", err)
	}

	fmt.Println("=== Arena Deck Import ===")
	fmt.Printf("Source: %s\n", absPath)

	catalog, err := loadCatalog(absPath)
	if err != nil {
		log.Fatalf("Failed to read decks: %v", err)
	}
	fmt.Printf("Parsed %d player one decks and %d player two decks\n", len(catalog.PlayerOne), len(catalog.PlayerTwo))

	cfg, err := config.Load(os.Getenv("ARENA_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	fmt.Println("Connecting to database...")
	db, err := repository.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("✓ Database connection established")

	repo := repository.NewDeckRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	start := time.Now()
	if err := repo.SaveCatalog(ctx, catalog); err != nil {
		log.Fatalf("Failed to import decks: %v", err)
	}

	fmt.Println("\n=== Import Complete ===")
	fmt.Printf("✓ Imported %d cards\n", len(repository.FlattenCatalog(catalog)))
	fmt.Printf("Time taken: %s\n", time.Since(start))
}

func loadCatalog(path string) (*deck.Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		doc, err := input.Load(path)
		if err != nil {
			return nil, err
		}
		return doc.Catalog(), nil
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (*deck.Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or has no data rows")
	}

	stored := make([]repository.DeckCard, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < csvColumns {
			log.Printf("Warning: Skipping row %d - insufficient columns", i+2)
			continue
		}

		nums := make([]int, 6)
		for j := range nums {
			n, err := strconv.Atoi(strings.TrimSpace(record[j]))
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+2, j+1, err)
			}
			nums[j] = n
		}

		var colors []string
		for _, c := range strings.Split(record[7], ";") {
			if c = strings.TrimSpace(c); c != "" {
				colors = append(colors, c)
			}
		}

		stored = append(stored, repository.DeckCard{
			Player:   rules.Side(nums[0]),
			DeckIdx:  nums[1],
			Position: nums[2],
			Card: cards.Definition{
				Mana:         nums[3],
				AttackDamage: nums[4],
				Health:       nums[5],
				Description:  record[6],
				Colors:       colors,
				Name:         record[8],
			},
		})
	}

	return repository.AssembleCatalog(stored)
}
