package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDocument = `{
  "playerOneDecks": {
    "nrCardsInDeck": 2,
    "nrDecks": 1,
    "decks": [[
      {"mana": 1, "attackDamage": 2, "health": 3, "description": "guard", "colors": ["Red"], "name": "Sentinel"},
      {"mana": 2, "attackDamage": 0, "health": 0, "description": "fire", "colors": ["Red"], "name": "Firestorm"}
    ]]
  },
  "playerTwoDecks": {
    "nrCardsInDeck": 2,
    "nrDecks": 1,
    "decks": [[
      {"mana": 1, "attackDamage": 1, "health": 5, "description": "wall", "colors": ["Blue"], "name": "Goliath"},
      {"mana": 1, "attackDamage": 1, "health": 5, "description": "wall", "colors": ["Blue"], "name": "Warden"}
    ]]
  },
  "games": [{
    "startGame": {
      "playerOneDeckIdx": 0,
      "playerTwoDeckIdx": 0,
      "shuffleSeed": 123456,
      "playerOneHero": {"mana": 2, "description": "hero", "colors": ["Red"], "name": "Lord Royce"},
      "playerTwoHero": {"mana": 2, "description": "hero", "colors": ["Blue"], "name": "King Mudface"},
      "startingPlayer": 2
    },
    "actions": [
      {"command": "getCardsInHand", "playerIdx": 1},
      {"command": "cardUsesAttack", "cardAttacker": {"x": 2, "y": 0}, "cardAttacked": {"x": 1, "y": 1}},
      {"command": "getCardAtPosition", "x": 1, "y": 0},
      {"command": "useEnvironmentCard", "handIdx": 1, "affectedRow": 0},
      {"command": "endPlayerTurn"}
    ]
  }]
}`

const yamlDocument = `
playerOneDecks:
  nrCardsInDeck: 1
  nrDecks: 1
  decks:
    - - {mana: 1, attackDamage: 2, health: 3, description: guard, colors: [Red], name: Sentinel}
playerTwoDecks:
  nrCardsInDeck: 1
  nrDecks: 1
  decks:
    - - {mana: 1, attackDamage: 1, health: 5, description: wall, colors: [Blue], name: Goliath}
games:
  - startGame:
      playerOneDeckIdx: 0
      playerTwoDeckIdx: 0
      shuffleSeed: 3
      playerOneHero: {mana: 1, description: hero, colors: [Red], name: Empress Thorina}
      playerTwoHero: {mana: 1, description: hero, colors: [Blue], name: General Kocioraw}
      startingPlayer: 1
    actions:
      - command: placeCard
        handIdx: 0
      - command: getPlayerMana
        playerIdx: 1
`

func TestParseJSONDocument(t *testing.T) {
	doc, err := Parse([]byte(jsonDocument))
	require.NoError(t, err)

	catalog := doc.Catalog()
	require.Len(t, catalog.PlayerOne, 1)
	assert.Equal(t, "Firestorm", catalog.PlayerOne[0][1].Name)
	assert.Equal(t, []string{"Blue"}, catalog.PlayerTwo[0][0].Colors)

	games := doc.GamesToRun()
	require.Len(t, games, 1)
	setup := games[0].Setup
	assert.Equal(t, int64(123456), setup.ShuffleSeed)
	assert.Equal(t, rules.PlayerTwo, setup.StartingPlayer)
	assert.Equal(t, "King Mudface", setup.PlayerTwoHero.Name)

	actions := games[0].Actions
	require.Len(t, actions, 5)
	assert.Equal(t, game.Action{Command: game.CommandGetCardsInHand, PlayerIdx: 1}, actions[0])
	assert.Equal(t, board.Position{X: 2, Y: 0}, actions[1].CardAttacker)
	assert.Equal(t, board.Position{X: 1, Y: 1}, actions[1].CardAttacked)
	assert.Equal(t, 1, actions[2].X)
	assert.Equal(t, 1, actions[3].HandIdx)
	assert.Equal(t, game.CommandEndPlayerTurn, actions[4].Command)
}

func TestParseYAMLDocument(t *testing.T) {
	doc, err := Parse([]byte(yamlDocument))
	require.NoError(t, err)

	games := doc.GamesToRun()
	require.Len(t, games, 1)
	assert.Equal(t, "Empress Thorina", games[0].Setup.PlayerOneHero.Name)
	assert.Equal(t, game.CommandPlaceCard, games[0].Actions[0].Command)
	assert.Equal(t, 2, doc.PlayerOneDecks.Decks[0][0].AttackDamage)
}

func TestParseRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not a document", "[1, 2"},
		{"deck count mismatch", `{"playerOneDecks": {"nrDecks": 2, "decks": [[]]}}`},
		{"card count mismatch", `{"playerOneDecks": {"nrCardsInDeck": 2, "nrDecks": 1, "decks": [[{"name": "Sentinel"}]]}}`},
		{"deck index", `{"playerOneDecks": {"decks": [[]]}, "playerTwoDecks": {"decks": [[]]},
			"games": [{"startGame": {"playerOneDeckIdx": 1, "startingPlayer": 1}}]}`},
		{"starting player", `{"playerOneDecks": {"decks": [[]]}, "playerTwoDecks": {"decks": [[]]},
			"games": [{"startGame": {"startingPlayer": 3}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDocument), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Games, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
