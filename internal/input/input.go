// Package input decodes simulation documents. Documents are YAML; JSON
// documents are accepted as well since they are valid YAML.
package input

import (
	"fmt"
	"os"

	"github.com/magefree/arena-go/internal/deck"
	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"gopkg.in/yaml.v3"
)

// Document is the decoded top-level simulation input.
type Document struct {
	PlayerOneDecks DeckSet     `yaml:"playerOneDecks" json:"playerOneDecks"`
	PlayerTwoDecks DeckSet     `yaml:"playerTwoDecks" json:"playerTwoDecks"`
	Games          []GameEntry `yaml:"games" json:"games"`
}

// DeckSet lists one player's decks.
type DeckSet struct {
	NrCardsInDeck int                  `yaml:"nrCardsInDeck" json:"nrCardsInDeck"`
	NrDecks       int                  `yaml:"nrDecks" json:"nrDecks"`
	Decks         [][]cards.Definition `yaml:"decks" json:"decks"`
}

// GameEntry is a single match: its setup and its script.
type GameEntry struct {
	StartGame StartGame     `yaml:"startGame" json:"startGame"`
	Actions   []ActionEntry `yaml:"actions" json:"actions"`
}

// StartGame configures a match.
type StartGame struct {
	PlayerOneDeckIdx int              `yaml:"playerOneDeckIdx" json:"playerOneDeckIdx"`
	PlayerTwoDeckIdx int              `yaml:"playerTwoDeckIdx" json:"playerTwoDeckIdx"`
	ShuffleSeed      int64            `yaml:"shuffleSeed" json:"shuffleSeed"`
	PlayerOneHero    cards.Definition `yaml:"playerOneHero" json:"playerOneHero"`
	PlayerTwoHero    cards.Definition `yaml:"playerTwoHero" json:"playerTwoHero"`
	StartingPlayer   int              `yaml:"startingPlayer" json:"startingPlayer"`
}

// ActionEntry is one scripted action. Unused operands are omitted.
type ActionEntry struct {
	Command      string          `yaml:"command" json:"command"`
	HandIdx      int             `yaml:"handIdx" json:"handIdx"`
	CardAttacker *board.Position `yaml:"cardAttacker" json:"cardAttacker,omitempty"`
	CardAttacked *board.Position `yaml:"cardAttacked" json:"cardAttacked,omitempty"`
	AffectedRow  int             `yaml:"affectedRow" json:"affectedRow"`
	PlayerIdx    int             `yaml:"playerIdx" json:"playerIdx"`
	X            int             `yaml:"x" json:"x"`
	Y            int             `yaml:"y" json:"y"`
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the structural references of the document: deck counts and
// the deck indices and starting player of every game.
func (d *Document) Validate() error {
	if err := d.PlayerOneDecks.validate("playerOneDecks"); err != nil {
		return err
	}
	if err := d.PlayerTwoDecks.validate("playerTwoDecks"); err != nil {
		return err
	}
	for i, g := range d.Games {
		s := g.StartGame
		if s.PlayerOneDeckIdx < 0 || s.PlayerOneDeckIdx >= len(d.PlayerOneDecks.Decks) {
			return fmt.Errorf("game %d: playerOneDeckIdx %d out of range", i, s.PlayerOneDeckIdx)
		}
		if s.PlayerTwoDeckIdx < 0 || s.PlayerTwoDeckIdx >= len(d.PlayerTwoDecks.Decks) {
			return fmt.Errorf("game %d: playerTwoDeckIdx %d out of range", i, s.PlayerTwoDeckIdx)
		}
		if !rules.Side(s.StartingPlayer).Valid() {
			return fmt.Errorf("game %d: startingPlayer must be 1 or 2, got %d", i, s.StartingPlayer)
		}
	}
	return nil
}

func (s DeckSet) validate(field string) error {
	if s.NrDecks != 0 && s.NrDecks != len(s.Decks) {
		return fmt.Errorf("%s: nrDecks is %d but %d decks are listed", field, s.NrDecks, len(s.Decks))
	}
	for i, d := range s.Decks {
		if s.NrCardsInDeck != 0 && len(d) != s.NrCardsInDeck {
			return fmt.Errorf("%s: deck %d has %d cards, expected %d", field, i, len(d), s.NrCardsInDeck)
		}
	}
	return nil
}

// Catalog returns the decks of both players.
func (d *Document) Catalog() *deck.Catalog {
	return &deck.Catalog{
		PlayerOne: d.PlayerOneDecks.Decks,
		PlayerTwo: d.PlayerTwoDecks.Decks,
	}
}

// GamesToRun converts the document's matches into runnable games.
func (d *Document) GamesToRun() []game.Game {
	games := make([]game.Game, 0, len(d.Games))
	for _, g := range d.Games {
		games = append(games, g.toGame())
	}
	return games
}

func (g GameEntry) toGame() game.Game {
	s := g.StartGame
	out := game.Game{
		Setup: game.MatchSetup{
			PlayerOneDeckIdx: s.PlayerOneDeckIdx,
			PlayerTwoDeckIdx: s.PlayerTwoDeckIdx,
			ShuffleSeed:      s.ShuffleSeed,
			PlayerOneHero:    s.PlayerOneHero,
			PlayerTwoHero:    s.PlayerTwoHero,
			StartingPlayer:   rules.Side(s.StartingPlayer),
		},
		Actions: make([]game.Action, 0, len(g.Actions)),
	}
	for _, a := range g.Actions {
		out.Actions = append(out.Actions, a.toAction())
	}
	return out
}

func (a ActionEntry) toAction() game.Action {
	action := game.Action{
		Command:     game.Command(a.Command),
		HandIdx:     a.HandIdx,
		AffectedRow: a.AffectedRow,
		PlayerIdx:   a.PlayerIdx,
		X:           a.X,
		Y:           a.Y,
	}
	if a.CardAttacker != nil {
		action.CardAttacker = *a.CardAttacker
	}
	if a.CardAttacked != nil {
		action.CardAttacked = *a.CardAttacked
	}
	return action
}
