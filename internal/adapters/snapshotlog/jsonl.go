package snapshotlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
)

// WriteJSONL persists snapshots to path, one JSON object per line, in
// append order. The file is truncated first: the log is an artifact of a
// whole batch pass, not a live journal.
func WriteJSONL(path string, snapshots []model.Snapshot) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range snapshots {
		if err := enc.Encode(snapshots[i]); err != nil {
			return fmt.Errorf("encode snapshot %d: %w", i, err)
		}
	}
	return w.Flush()
}

// LoadJSONL reads a snapshot log previously written with WriteJSONL.
func LoadJSONL(path string) ([]model.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.Snapshot

	s := bufio.NewScanner(f)
	// Allow larger lines than the default 64K.
	buf := make([]byte, 0, 1024*1024)
	s.Buffer(buf, 8*1024*1024)

	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		var snap model.Snapshot
		if err := json.Unmarshal(line, &snap); err != nil {
			return nil, fmt.Errorf("invalid jsonl line: %w", err)
		}
		out = append(out, snap)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
