package game

import (
	"context"
	"fmt"

	"github.com/magefree/arena-go/internal/deck"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/magefree/arena-go/internal/game/watchers"
	"go.uber.org/zap"
)

// Stats are the counters carried across the matches of one run.
type Stats struct {
	GamesPlayed   int `json:"games_played"`
	PlayerOneWins int `json:"player_one_wins"`
	PlayerTwoWins int `json:"player_two_wins"`
}

// Wins returns the win count of side.
func (s Stats) Wins(side rules.Side) int {
	switch side {
	case rules.PlayerOne:
		return s.PlayerOneWins
	case rules.PlayerTwo:
		return s.PlayerTwoWins
	default:
		return 0
	}
}

func (s *Stats) recordWin(side rules.Side) {
	switch side {
	case rules.PlayerOne:
		s.PlayerOneWins++
	case rules.PlayerTwo:
		s.PlayerTwoWins++
	}
}

// Runner plays matches one after another against a deck catalog and keeps
// the cross-match counters. Counters live on the runner, so independent
// runners never share them.
type Runner struct {
	logger      *zap.Logger
	catalog     *deck.Catalog
	events  *rules.EventBus
	replays *ReplayStore
	stats   Stats
}

// RunnerOption customizes a runner.
type RunnerOption func(*Runner)

// WithEvents publishes the events of every match on bus.
func WithEvents(bus *rules.EventBus) RunnerOption {
	return func(r *Runner) {
		r.events = bus
	}
}

// WithReplays records a snapshot after setup and after every action, and
// saves each finished match's replay to store.
func WithReplays(store *ReplayStore) RunnerOption {
	return func(r *Runner) {
		r.replays = store
	}
}

// NewRunner creates a runner over catalog.
func NewRunner(logger *zap.Logger, catalog *deck.Catalog, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		logger:  logger,
		catalog: catalog,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns the counters accumulated so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

// Run plays games in order and hands every record to emit. It stops before
// the next match once ctx is done, or as soon as emit fails.
func (r *Runner) Run(ctx context.Context, games []Game, emit func(*Result) error) error {
	for i, g := range games {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted before game %d: %w", i, err)
		}
		if err := r.RunMatch(g, emit); err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
	}

	r.logger.Info("run complete",
		zap.Int("games_played", r.stats.GamesPlayed),
		zap.Int("player_one_wins", r.stats.PlayerOneWins),
		zap.Int("player_two_wins", r.stats.PlayerTwoWins),
	)
	return nil
}

// RunAll plays games and collects every record.
func (r *Runner) RunAll(ctx context.Context, games []Game) ([]*Result, error) {
	results := make([]*Result, 0)
	err := r.Run(ctx, games, func(res *Result) error {
		results = append(results, res)
		return nil
	})
	return results, err
}

// RunMatch plays a single match to the end of its script or to a hero kill.
func (r *Runner) RunMatch(g Game, emit func(*Result) error) error {
	setup := g.Setup
	deckOne, err := r.catalog.Build(rules.PlayerOne, setup.PlayerOneDeckIdx, setup.ShuffleSeed)
	if err != nil {
		return fmt.Errorf("failed to build player one deck: %w", err)
	}
	deckTwo, err := r.catalog.Build(rules.PlayerTwo, setup.PlayerTwoDeckIdx, setup.ShuffleSeed)
	if err != nil {
		return fmt.Errorf("failed to build player two deck: %w", err)
	}

	r.stats.GamesPlayed++
	bus := rules.NewEventBus()
	registry := watchers.Standard()
	placed := registry.GetWatcher(watchers.KeyCardsPlaced).(*watchers.CardsPlacedWatcher)
	// Subscribed ahead of the registry so the round counts are read before they reset.
	bus.SubscribeTyped(rules.EventRoundStarted, func(e rules.Event) {
		if e.Amount <= 1 {
			return
		}
		r.logger.Debug("round finished",
			zap.String("match_id", e.MatchID),
			zap.Int("round", e.Amount-1),
			zap.Int("player_one_placed", placed.Placed(rules.PlayerOne)),
			zap.Int("player_two_placed", placed.Placed(rules.PlayerTwo)),
		)
	})
	registry.Attach(bus)
	if r.events != nil {
		bus.Subscribe(r.events.Publish)
	}

	m := NewMatch(r.logger, setup, deckOne, deckTwo, WithEventBus(bus))
	if err := m.Start(); err != nil {
		return err
	}

	r.logger.Info("match started",
		zap.String("match_id", m.ID()),
		zap.Int("game", r.stats.GamesPlayed),
		zap.Int("actions", len(g.Actions)),
	)

	var replay *Replay
	if r.replays != nil {
		replay = NewReplay(m.ID())
		replay.Record(m.Snapshot(0, ""))
	}

	for i, action := range g.Actions {
		res := Dispatch(m, r.stats, action)
		if replay != nil {
			replay.Record(m.Snapshot(i+1, action.Command))
		}
		if res != nil && emit != nil {
			if err := emit(res); err != nil {
				return fmt.Errorf("failed to emit result: %w", err)
			}
		}
		if m.Over() {
			break
		}
	}

	if m.Over() {
		r.stats.recordWin(m.Winner())
	}

	checksum, err := m.Checksum()
	if err != nil {
		return fmt.Errorf("failed to checksum match %s: %w", m.ID(), err)
	}

	destroyed := registry.GetWatcher(watchers.KeyCardsDestroyed).(*watchers.CardsDestroyedWatcher)
	heroDamage := registry.GetWatcher(watchers.KeyHeroDamage).(*watchers.HeroDamageWatcher)
	rejected := registry.GetWatcher(watchers.KeyRejectedActions).(*watchers.RejectedActionsWatcher)
	r.logger.Info("match ended",
		zap.String("match_id", m.ID()),
		zap.Bool("hero_killed", m.Over()),
		zap.String("winner", m.Winner().String()),
		zap.Int("round", m.Round()),
		zap.Int("player_one_cards_lost", destroyed.Lost(rules.PlayerOne)),
		zap.Int("player_two_cards_lost", destroyed.Lost(rules.PlayerTwo)),
		zap.Int("player_one_hero_damage", heroDamage.Taken(rules.PlayerOne)),
		zap.Int("player_two_hero_damage", heroDamage.Taken(rules.PlayerTwo)),
		zap.Int("player_one_rejected", rejected.Rejected(rules.PlayerOne)),
		zap.Int("player_two_rejected", rejected.Rejected(rules.PlayerTwo)),
		zap.Any("rejected_reasons", rejected.Reasons()),
		zap.String("checksum", checksum),
	)

	if replay == nil {
		return nil
	}
	if err := r.replays.Save(replay); err != nil {
		return fmt.Errorf("failed to save replay for match %s: %w", m.ID(), err)
	}
	return nil
}
