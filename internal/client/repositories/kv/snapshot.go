package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ticketapp/internal/filex"
	"github.com/natefinch/atomic"
)

const snapshotVersion = 1

// Snapshot is the on-disk form of a whole store. Values are kept as text,
// which is all ticketapp ever stores.
type Snapshot struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

// Export writes every item of s to path as an indented JSON snapshot. The
// file is replaced atomically, so a crash never leaves half a snapshot. It
// returns the number of items written.
func Export(ctx context.Context, s Store, path string) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	snap := Snapshot{Version: snapshotVersion, Items: make(map[string]string, len(items))}
	for k, v := range items {
		snap.Items[k] = string(v)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}

	abs, err := filex.EnsureParentDir(path)
	if err != nil {
		return 0, err
	}
	if err := atomic.WriteFile(abs, bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return len(items), nil
}

// Import reads a snapshot written by Export and stores each of its items,
// overwriting existing keys. Keys not in the snapshot are left alone. It
// returns the number of items stored; a failure part way (quota) leaves the
// items stored so far in place.
func Import(ctx context.Context, s Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return 0, fmt.Errorf("snapshot %s: unsupported version %d", path, snap.Version)
	}

	n := 0
	for k, v := range snap.Items {
		if err := s.Set(ctx, k, []byte(v)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
