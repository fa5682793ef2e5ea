package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

// Write serializes a result to its canonical JSON document: two-space
// indent, fields in declaration order.
func Write(w io.Writer, game *nfl.GameData) error {
	data, err := json.MarshalIndent(game, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal game data: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write game data: %w", err)
	}
	return nil
}

// Save writes the canonical document into dir under the conventional
// download filename and returns the full path.
func Save(dir string, game *nfl.GameData) (string, error) {
	path := filepath.Join(dir, nfl.ExportFilename(game))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := Write(f, game); err != nil {
		return "", err
	}
	return path, nil
}
