package output

import (
	"fmt"
	"log/slog"
	"os"

	"poe2-ladder-tracker/internal/ladder"
)

// Writer persists the latest rank to a text file read by an overlay.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write overwrites the output file with a single-line summary of the result,
// or truncates it to empty when the character was not found. I/O errors are
// logged and swallowed so one failed write never stops the tracker.
func (w *Writer) Write(result *ladder.CharacterRank, leagueName string) {
	content := Format(result, leagueName)

	if err := os.WriteFile(w.path, []byte(content), 0o644); err != nil {
		slog.Error("Error writing output file", "path", w.path, "error", err)
		return
	}

	if result != nil {
		slog.Info("Updated rank information", "content", content)
	} else {
		slog.Info("Wrote empty file (character not found)")
	}
}

// Format renders the single-line summary. A nil result formats to "".
func Format(result *ladder.CharacterRank, leagueName string) string {
	if result == nil {
		return ""
	}
	if result.Status != ladder.StatusNone {
		return fmt.Sprintf("Level: %s | Rank: [%s] %s | %s", result.Level, result.Status, result.Rank, leagueName)
	}
	return fmt.Sprintf("Level: %s | Rank: %s | %s", result.Level, result.Rank, leagueName)
}
