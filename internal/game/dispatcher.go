package game

import (
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/rules"
	"go.uber.org/zap"
)

var killMessages = map[rules.Side]string{
	rules.PlayerOne: "Player one killed the enemy hero.",
	rules.PlayerTwo: "Player two killed the enemy hero.",
}

// Dispatch applies action to m and returns the record it produces. Applied
// mutations, turn ends and unknown commands produce no record; queries and
// rejected mutations always do. A hero kill ends the match and produces only
// the end-of-match notice.
func Dispatch(m *Match, stats Stats, action Action) *Result {
	if m.Over() {
		return nil
	}
	if action.Command == CommandEndPlayerTurn {
		m.EndTurn()
		return nil
	}
	if action.Command.IsQuery() {
		return query(m, stats, action)
	}
	return mutate(m, action)
}

// playerFor resolves a query's player index. Anything but player one
// addresses player two.
func playerFor(m *Match, idx int) *Player {
	if rules.Side(idx) == rules.PlayerOne {
		return m.Player(rules.PlayerOne)
	}
	return m.Player(rules.PlayerTwo)
}

func query(m *Match, stats Stats, action Action) *Result {
	res := &Result{Command: action.Command, PlayerIdx: action.PlayerIdx}

	switch action.Command {
	case CommandGetCardsInHand:
		res.Output = NewCardViews(playerFor(m, action.PlayerIdx).Hand())
	case CommandGetPlayerDeck:
		res.Output = NewCardViews(playerFor(m, action.PlayerIdx).Deck())
	case CommandGetCardsOnTable:
		rows := make([][]CardView, 0, board.Rows)
		for r := board.PlayerTwoBack; r <= board.PlayerOneBack; r++ {
			rows = append(rows, NewCardViews(m.Board().Row(r)))
		}
		res.Output = rows
	case CommandGetPlayerTurn:
		res.Output = int(m.ActivePlayer())
	case CommandGetPlayerHero:
		res.Output = NewCardView(playerFor(m, action.PlayerIdx).Hero())
	case CommandGetCardAtPosition:
		res.X, res.Y = intPtr(action.X), intPtr(action.Y)
		card, err := m.Board().CardAt(board.Position{X: action.X, Y: action.Y})
		if err != nil {
			res.Output = NoCardAtPosition
		} else {
			res.Output = NewCardView(card)
		}
	case CommandGetPlayerMana:
		res.Output = playerFor(m, action.PlayerIdx).Mana()
	case CommandGetEnvironmentCardsInHand:
		res.Output = NewCardViews(playerFor(m, action.PlayerIdx).EnvironmentCardsInHand())
	case CommandGetFrozenCardsOnTable:
		res.Output = NewCardViews(m.Board().Frozen())
	case CommandGetTotalGamesPlayed:
		res.Output = stats.GamesPlayed
	case CommandGetPlayerOneWins:
		res.Output = stats.Wins(rules.PlayerOne)
	case CommandGetPlayerTwoWins:
		res.Output = stats.Wins(rules.PlayerTwo)
	}

	return res
}

func mutate(m *Match, action Action) *Result {
	player := m.Current()
	res := &Result{Command: action.Command, PlayerIdx: action.PlayerIdx}

	var err error
	switch action.Command {
	case CommandPlaceCard:
		res.HandIdx = intPtr(action.HandIdx)
		err = player.PlaceCard(action.HandIdx)
	case CommandUseEnvironmentCard:
		res.HandIdx = intPtr(action.HandIdx)
		res.AffectedRow = intPtr(action.AffectedRow)
		err = player.UseEnvironmentCard(action.HandIdx, board.Row(action.AffectedRow))
	case CommandCardUsesAttack:
		res.CardAttacker = positionPtr(action.CardAttacker)
		res.CardAttacked = positionPtr(action.CardAttacked)
		err = player.CardAttack(action.CardAttacker, action.CardAttacked)
	case CommandCardUsesAbility:
		res.CardAttacker = positionPtr(action.CardAttacker)
		res.CardAttacked = positionPtr(action.CardAttacked)
		err = player.CardUsesAbility(action.CardAttacker, action.CardAttacked)
	case CommandUseAttackHero:
		res.CardAttacker = positionPtr(action.CardAttacker)
		enemy := m.Player(player.Side().Opponent())
		var killed bool
		killed, err = player.AttackHero(action.CardAttacker, enemy.Hero())
		if err == nil && killed {
			m.finish(player.Side())
			return &Result{GameEnded: killMessages[player.Side()]}
		}
	case CommandUseHeroAbility:
		res.AffectedRow = intPtr(action.AffectedRow)
		err = player.UseHeroAbility(board.Row(action.AffectedRow))
	default:
		return nil
	}

	if err == nil {
		return nil
	}

	res.Err = err
	res.Error = err.Error()
	evt := rules.NewEvent(rules.EventActionRejected, player.Side(), "")
	evt.Description = err.Error()
	m.publish(evt)
	m.logger.Debug("action rejected",
		zap.String("match_id", m.ID()),
		zap.String("command", string(action.Command)),
		zap.Error(err),
	)
	return res
}
