package game

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const replayVersion = 1

// ErrReplayChecksum reports a replay whose final state no longer hashes to
// the checksum saved with it.
var ErrReplayChecksum = errors.New("replay checksum mismatch")

// Replay is the recorded course of one match: the state after setup and
// after every action, in order.
type Replay struct {
	MatchID string
	States  []*MatchSnapshot
}

// NewReplay creates an empty replay for a match.
func NewReplay(matchID string) *Replay {
	return &Replay{MatchID: matchID}
}

// Record appends a snapshot.
func (r *Replay) Record(snapshot *MatchSnapshot) {
	r.States = append(r.States, snapshot)
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	return len(r.States)
}

// Final returns the last snapshot, or nil for an empty replay.
func (r *Replay) Final() *MatchSnapshot {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// replayHeader precedes the snapshots in a replay file.
type replayHeader struct {
	MatchID  string
	Saved    time.Time
	Version  int
	States   int
	Checksum *SerializationChecksum // final snapshot; nil for an empty replay
}

func (r *Replay) header() (replayHeader, error) {
	header := replayHeader{
		MatchID: r.MatchID,
		Saved:   time.Now(),
		Version: replayVersion,
		States:  len(r.States),
	}
	if final := r.Final(); final != nil {
		sum, err := final.ComputeChecksum()
		if err != nil {
			return header, err
		}
		header.Checksum = sum
	}
	return header, nil
}

// writeReplay encodes header followed by states as a gzipped gob stream.
func writeReplay(w io.Writer, header replayHeader, states []*MatchSnapshot) error {
	zw := gzip.NewWriter(w)
	enc := gob.NewEncoder(zw)

	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("failed to encode replay header: %w", err)
	}
	for i, state := range states {
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	return zw.Close()
}

// readReplay decodes a replay and checks its final snapshot against the
// stored checksum.
func readReplay(r io.Reader) (*Replay, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer zr.Close()

	dec := gob.NewDecoder(zr)
	var header replayHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("failed to decode replay header: %w", err)
	}
	if header.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", header.Version)
	}

	replay := NewReplay(header.MatchID)
	for i := 0; i < header.States; i++ {
		var state MatchSnapshot
		if err := dec.Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		replay.Record(&state)
	}

	final := replay.Final()
	if final == nil {
		return replay, nil
	}
	if header.Checksum == nil {
		return nil, fmt.Errorf("%w: no checksum stored", ErrReplayChecksum)
	}
	ok, err := final.VerifyChecksum(header.Checksum)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReplayChecksum
	}
	return replay, nil
}

// ReplayStore keeps replay files in one directory, one file per match.
type ReplayStore struct {
	logger *zap.Logger
	dir    string
}

// NewReplayStore creates a store writing into dir.
func NewReplayStore(logger *zap.Logger, dir string) *ReplayStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayStore{logger: logger, dir: dir}
}

func (s *ReplayStore) path(matchID string) string {
	return filepath.Join(s.dir, matchID+".replay")
}

// Save writes replay to <dir>/<match id>.replay.
func (s *ReplayStore) Save(replay *Replay) error {
	header, err := replay.header()
	if err != nil {
		return fmt.Errorf("failed to checksum replay: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create replay directory: %w", err)
	}

	file, err := os.Create(s.path(replay.MatchID))
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	if err := writeReplay(file, header, replay.States); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close replay file: %w", err)
	}

	fields := []zap.Field{
		zap.String("match_id", replay.MatchID),
		zap.Int("state_count", replay.Size()),
		zap.String("directory", s.dir),
	}
	if header.Checksum != nil {
		fields = append(fields, zap.String("checksum", header.Checksum.Hash))
	}
	s.logger.Debug("saved replay", fields...)
	return nil
}

// Load reads the replay of matchID and verifies its checksum.
func (s *ReplayStore) Load(matchID string) (*Replay, error) {
	file, err := os.Open(s.path(matchID))
	if err != nil {
		return nil, fmt.Errorf("failed to open replay: %w", err)
	}
	defer file.Close()

	replay, err := readReplay(file)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", matchID, err)
	}
	return replay, nil
}
