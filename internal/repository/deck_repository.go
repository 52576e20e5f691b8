package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/magefree/arena-go/internal/deck"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS deck_cards (
	player        SMALLINT NOT NULL CHECK (player IN (1, 2)),
	deck_idx      INTEGER  NOT NULL CHECK (deck_idx >= 0),
	position      INTEGER  NOT NULL CHECK (position >= 0),
	name          TEXT     NOT NULL,
	mana          INTEGER  NOT NULL,
	attack_damage INTEGER  NOT NULL,
	health        INTEGER  NOT NULL,
	description   TEXT     NOT NULL DEFAULT '',
	colors        TEXT[]   NOT NULL DEFAULT '{}',
	PRIMARY KEY (player, deck_idx, position)
)`

// DeckCard is one stored card of a deck.
type DeckCard struct {
	Player   rules.Side
	DeckIdx  int
	Position int
	Card     cards.Definition
}

// DeckRepository loads and stores the deck catalog.
type DeckRepository struct {
	db *DB
}

// NewDeckRepository creates a repository on db.
func NewDeckRepository(db *DB) *DeckRepository {
	return &DeckRepository{db: db}
}

// EnsureSchema creates the deck table if needed.
func (r *DeckRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create deck_cards table: %w", err)
	}
	return nil
}

// LoadCatalog reads every stored deck.
func (r *DeckRepository) LoadCatalog(ctx context.Context) (*deck.Catalog, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT player, deck_idx, position, name, mana, attack_damage, health, description, colors
		FROM deck_cards
		ORDER BY player, deck_idx, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query deck cards: %w", err)
	}
	defer rows.Close()

	var stored []DeckCard
	for rows.Next() {
		var (
			dc     DeckCard
			player int16
		)
		if err := rows.Scan(
			&player,
			&dc.DeckIdx,
			&dc.Position,
			&dc.Card.Name,
			&dc.Card.Mana,
			&dc.Card.AttackDamage,
			&dc.Card.Health,
			&dc.Card.Description,
			&dc.Card.Colors,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deck card: %w", err)
		}
		dc.Player = rules.Side(player)
		stored = append(stored, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck cards: %w", err)
	}

	catalog, err := AssembleCatalog(stored)
	if err != nil {
		return nil, err
	}

	r.db.logger.Info("loaded deck catalog",
		zap.Int("player_one_decks", len(catalog.PlayerOne)),
		zap.Int("player_two_decks", len(catalog.PlayerTwo)),
		zap.Int("cards", len(stored)),
	)
	return catalog, nil
}

// SaveCatalog replaces the stored decks with catalog in one transaction.
func (r *DeckRepository) SaveCatalog(ctx context.Context, catalog *deck.Catalog) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM deck_cards"); err != nil {
		return fmt.Errorf("failed to clear deck cards: %w", err)
	}

	batch := &pgx.Batch{}
	for _, dc := range FlattenCatalog(catalog) {
		batch.Queue(`
			INSERT INTO deck_cards (player, deck_idx, position, name, mana, attack_damage, health, description, colors)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			int16(dc.Player), dc.DeckIdx, dc.Position,
			dc.Card.Name, dc.Card.Mana, dc.Card.AttackDamage, dc.Card.Health,
			dc.Card.Description, nonNil(dc.Card.Colors),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert deck cards: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit deck catalog: %w", err)
	}

	r.db.logger.Info("saved deck catalog",
		zap.Int("cards", batch.Len()),
	)
	return nil
}

// FlattenCatalog lists every card of catalog with its address.
func FlattenCatalog(catalog *deck.Catalog) []DeckCard {
	var out []DeckCard
	for _, side := range []rules.Side{rules.PlayerOne, rules.PlayerTwo} {
		decks, _ := catalog.Decks(side)
		for deckIdx, d := range decks {
			for pos, def := range d {
				out = append(out, DeckCard{Player: side, DeckIdx: deckIdx, Position: pos, Card: def})
			}
		}
	}
	return out
}

// AssembleCatalog rebuilds a catalog from stored cards. Deck indices and
// positions must be dense.
func AssembleCatalog(stored []DeckCard) (*deck.Catalog, error) {
	sorted := make([]DeckCard, len(stored))
	copy(sorted, stored)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.DeckIdx != b.DeckIdx {
			return a.DeckIdx < b.DeckIdx
		}
		return a.Position < b.Position
	})

	catalog := &deck.Catalog{}
	for _, dc := range sorted {
		var decks *[][]cards.Definition
		switch dc.Player {
		case rules.PlayerOne:
			decks = &catalog.PlayerOne
		case rules.PlayerTwo:
			decks = &catalog.PlayerTwo
		default:
			return nil, fmt.Errorf("stored card %q has invalid player %d", dc.Card.Name, dc.Player)
		}

		if dc.DeckIdx == len(*decks) {
			*decks = append(*decks, nil)
		}
		if dc.DeckIdx != len(*decks)-1 {
			return nil, fmt.Errorf("%s deck %d is missing", dc.Player, len(*decks))
		}
		d := &(*decks)[dc.DeckIdx]
		if dc.Position != len(*d) {
			return nil, fmt.Errorf("%s deck %d has a gap at position %d", dc.Player, dc.DeckIdx, len(*d))
		}
		card := dc.Card
		card.Colors = nonNil(card.Colors)
		*d = append(*d, card)
	}
	return catalog, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
