package game

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SerializationChecksum is a deterministic digest of a match snapshot, used
// to compare runs of the same script.
type SerializationChecksum struct {
	Hash      string // BLAKE2b-256 of the canonical rendering
	Timestamp string // when the snapshot was taken
	Version   int
}

const checksumVersion = 1

// ComputeChecksum hashes the canonical rendering of the snapshot. The
// timestamp and match ID are left out, so replaying the same script always
// yields the same hash.
func (snapshot *MatchSnapshot) ComputeChecksum() (*SerializationChecksum, error) {
	hash, err := blake2b.New256(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := hash.Write([]byte(snapshot.buildDeterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: snapshot.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		Version:   checksumVersion,
	}, nil
}

// VerifyChecksum reports whether the snapshot still hashes to expected.
func (snapshot *MatchSnapshot) VerifyChecksum(expected *SerializationChecksum) (bool, error) {
	if expected == nil {
		return false, fmt.Errorf("expected checksum is nil")
	}
	if expected.Version != checksumVersion {
		return false, fmt.Errorf("unsupported checksum version: %d", expected.Version)
	}
	computed, err := snapshot.ComputeChecksum()
	if err != nil {
		return false, err
	}
	return computed.Hash == expected.Hash, nil
}

// buildDeterministicRepresentation renders every rule-relevant field in a
// fixed order. Row and hand order matter and are kept as is.
func (snapshot *MatchSnapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "MATCH:%d|%d|%t|%d\n",
		snapshot.Round,
		snapshot.ActivePlayer,
		snapshot.Over,
		snapshot.Winner,
	)

	for i, p := range snapshot.Players {
		fmt.Fprintf(&buf, "PLAYER:%d|%d|%d\n", i+1, p.Mana, p.DeckSize)
		writeCardState(&buf, "  HERO", p.Hero)
		for _, c := range p.Hand {
			writeCardState(&buf, "  HAND", c)
		}
	}

	for r, row := range snapshot.Rows {
		fmt.Fprintf(&buf, "ROW:%d\n", r)
		for _, c := range row {
			writeCardState(&buf, "  CARD", c)
		}
	}

	return buf.String()
}

func writeCardState(buf *bytes.Buffer, prefix string, c CardState) {
	fmt.Fprintf(buf, "%s:%s|%d|%d|%d|%t|%t|%t\n",
		prefix,
		c.Name,
		c.Mana,
		c.AttackDamage,
		c.Health,
		c.Frozen,
		c.HasAttacked,
		c.UsedAbility,
	)
}

// Checksum returns the hash of the current match state.
func (m *Match) Checksum() (string, error) {
	sum, err := m.Snapshot(0, "").ComputeChecksum()
	if err != nil {
		return "", err
	}
	return sum.Hash, nil
}
