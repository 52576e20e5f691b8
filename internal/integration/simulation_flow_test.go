package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/magefree/arena-go/internal/input"
	"github.com/magefree/arena-go/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Seed 12345 deals five-card decks in the order 3, 4, 0, 2, 1, so player one
// draws Disciple then Berserker and player two draws Goliath then Miraj.
const flowDocument = `
playerOneDecks:
  nrDecks: 2
  decks:
    - - {mana: 1, attackDamage: 2, health: 3, description: guard, colors: [Red], name: Sentinel}
      - {mana: 2, attackDamage: 1, health: 4, description: wall, colors: [Red], name: Goliath}
      - {mana: 1, description: cold, colors: [Blue], name: Winterfell}
      - {mana: 1, attackDamage: 2, health: 2, description: heals, colors: [White], name: Disciple}
      - {mana: 2, attackDamage: 3, health: 2, description: rage, colors: [Red], name: Berserker}
    - - {mana: 1, attackDamage: 30, health: 1, description: glass, colors: [Red], name: Sentinel}
playerTwoDecks:
  nrCardsInDeck: 5
  nrDecks: 1
  decks:
    - - {mana: 1, attackDamage: 1, health: 3, description: wall, colors: [Green], name: Warden}
      - {mana: 2, attackDamage: 2, health: 3, description: blade, colors: [Black], name: The Ripper}
      - {mana: 2, description: fire, colors: [Red], name: Firestorm}
      - {mana: 1, attackDamage: 2, health: 2, description: wall, colors: [Green], name: Goliath}
      - {mana: 3, attackDamage: 1, health: 4, description: mirage, colors: [Blue], name: Miraj}
games:
  - startGame:
      playerOneDeckIdx: 0
      playerTwoDeckIdx: 0
      shuffleSeed: 12345
      playerOneHero: {mana: 1, description: king, colors: [Red], name: Lord Royce}
      playerTwoHero: {mana: 1, description: mud, colors: [Green], name: King Mudface}
      startingPlayer: 1
    actions:
      - {command: getCardsInHand, playerIdx: 1}
      - {command: placeCard, handIdx: 0}
      - {command: endPlayerTurn}
      - {command: placeCard, handIdx: 0}
      - {command: useHeroAbility, affectedRow: 1}
      - {command: endPlayerTurn}
      - {command: getPlayerMana, playerIdx: 1}
      - {command: placeCard, handIdx: 0}
      - {command: cardUsesAttack, cardAttacker: {x: 3, y: 1}, cardAttacked: {x: 1, y: 0}}
      - {command: getCardsOnTable}
      - {command: useAttackHero, cardAttacker: {x: 3, y: 1}}
      - {command: endPlayerTurn}
      - {command: placeCard, handIdx: 0}
      - {command: getPlayerHero, playerIdx: 2}
      - {command: getFrozenCardsOnTable}
      - {command: getTotalGamesPlayed}
  - startGame:
      playerOneDeckIdx: 1
      playerTwoDeckIdx: 0
      shuffleSeed: 1
      playerOneHero: {mana: 1, description: king, colors: [Red], name: Lord Royce}
      playerTwoHero: {mana: 1, description: mud, colors: [Green], name: King Mudface}
      startingPlayer: 1
    actions:
      - {command: placeCard, handIdx: 0}
      - {command: useAttackHero, cardAttacker: {x: 3, y: 0}}
      - {command: getPlayerOneWins}
  - startGame:
      playerOneDeckIdx: 0
      playerTwoDeckIdx: 0
      shuffleSeed: 2
      playerOneHero: {mana: 1, description: king, colors: [Red], name: Lord Royce}
      playerTwoHero: {mana: 1, description: mud, colors: [Green], name: King Mudface}
      startingPlayer: 2
    actions:
      - {command: getPlayerOneWins}
      - {command: getPlayerTwoWins}
      - {command: getTotalGamesPlayed}
`

const flowResults = `[
  {"command": "getCardsInHand", "playerIdx": 1, "output": [
    {"mana": 1, "attackDamage": 0, "health": 2, "description": "heals", "colors": ["White"], "name": "Disciple"}
  ]},
  {"command": "useHeroAbility", "affectedRow": 1, "error": "Not enough mana to use hero's ability."},
  {"command": "getPlayerMana", "playerIdx": 1, "output": 2},
  {"command": "getCardsOnTable", "output": [[], [], [], [
    {"mana": 1, "attackDamage": 0, "health": 2, "description": "heals", "colors": ["White"], "name": "Disciple"},
    {"mana": 2, "attackDamage": 3, "health": 2, "description": "rage", "colors": ["Red"], "name": "Berserker"}
  ]]},
  {"command": "useAttackHero", "cardAttacker": {"x": 3, "y": 1}, "error": "Attacker card has already attacked this turn."},
  {"command": "placeCard", "handIdx": 0, "error": "Not enough mana to place card on table."},
  {"command": "getPlayerHero", "playerIdx": 2, "output":
    {"mana": 1, "health": 30, "description": "mud", "colors": ["Green"], "name": "King Mudface"}},
  {"command": "getFrozenCardsOnTable", "output": []},
  {"command": "getTotalGamesPlayed", "output": 1},
  {"gameEnded": "Player one killed the enemy hero."},
  {"command": "getPlayerOneWins", "output": 1},
  {"command": "getPlayerTwoWins", "output": 0},
  {"command": "getTotalGamesPlayed", "output": 3}
]`

func runDocument(t *testing.T, doc *input.Document, opts ...game.RunnerOption) ([]*game.Result, *game.Runner) {
	t.Helper()
	runner := game.NewRunner(zaptest.NewLogger(t), doc.Catalog(), opts...)
	results, err := runner.RunAll(context.Background(), doc.GamesToRun())
	require.NoError(t, err)
	return results, runner
}

func TestSimulationFlowProducesReferenceOutput(t *testing.T) {
	doc, err := input.Parse([]byte(flowDocument))
	require.NoError(t, err)

	results, runner := runDocument(t, doc)

	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, results))
	assert.JSONEq(t, flowResults, buf.String())
	assert.Equal(t, game.Stats{GamesPlayed: 3, PlayerOneWins: 1}, runner.Stats())
}

func TestSimulationFlowIsRepeatable(t *testing.T) {
	doc, err := input.Parse([]byte(flowDocument))
	require.NoError(t, err)

	first, _ := runDocument(t, doc)
	second, _ := runDocument(t, doc)

	var a, b bytes.Buffer
	require.NoError(t, output.Write(&a, first))
	require.NoError(t, output.Write(&b, second))
	assert.Equal(t, a.String(), b.String())
}

func TestSimulationFlowFromFilesWithReplays(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in", "flow.yaml")
	outPath := filepath.Join(dir, "out", "flow.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(inPath), 0o755))
	require.NoError(t, os.WriteFile(inPath, []byte(flowDocument), 0o644))

	doc, err := input.Load(inPath)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	store := game.NewReplayStore(logger, filepath.Join(dir, "replays"))

	var matchIDs []string
	bus := rules.NewEventBus()
	bus.SubscribeTyped(rules.EventMatchStarted, func(evt rules.Event) {
		matchIDs = append(matchIDs, evt.MatchID)
	})

	results, _ := runDocument(t, doc, game.WithReplays(store), game.WithEvents(bus))
	require.NoError(t, output.WriteFile(outPath, results))

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.JSONEq(t, flowResults, string(written))

	require.Len(t, matchIDs, 3)
	replay, err := store.Load(matchIDs[1])
	require.NoError(t, err)
	final := replay.Final()
	assert.True(t, final.Over)
	assert.Equal(t, rules.PlayerOne, final.Winner)

	// The first match never ends, so its last snapshot is after the final query.
	replay, err = store.Load(matchIDs[0])
	require.NoError(t, err)
	assert.Equal(t, 17, replay.Size())
	assert.False(t, replay.Final().Over)
}
