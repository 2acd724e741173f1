package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sketchgrid/pkg/codec"
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
)

// BinaryExt is the file extension of the binary sketch format.
const BinaryExt = ".sgb"

// IsBinaryPath reports whether path names a binary sketch file.
func IsBinaryPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BinaryExt)
}

// WriteFile saves the session's grid to path. Files ending in .sgb get the
// binary form; anything else gets indented JSON.
func WriteFile(path string, s *Session) error {
	var data []byte
	if IsBinaryPath(path) {
		_ = s.Do(func(g *grid.Grid) error {
			data = codec.MarshalBinary(g)
			return nil
		})
	} else {
		snap := s.Snapshot()
		snap.ID, snap.OnCount = "", 0
		var err error
		if data, err = json.MarshalIndent(snap, "", "  "); err != nil {
			return fmt.Errorf("marshal sketch: %w", err)
		}
		data = append(data, '\n')
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sketch dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sketch file: %w", err)
	}
	return nil
}

// ReadFile loads a sketch saved by WriteFile.
func ReadFile(path string, opts ...grid.Option) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeNotFound, err, "sketch file %s", path)
		}
		return nil, fmt.Errorf("read sketch file: %w", err)
	}

	if IsBinaryPath(path) {
		g, err := codec.UnmarshalBinary(data, opts...)
		if err != nil {
			return nil, err
		}
		return FromGrid(g), nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeMalformedEncoding, err, "parse %s", path)
	}
	return FromSnapshot(snap, opts...)
}
