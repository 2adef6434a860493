// Package backup exports and imports the assignment history as JSON,
// optionally encrypted with a passphrase.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dukerupert/chorewheel/internal/model"
)

// Export writes history to w. A non-empty passphrase encrypts the output.
func Export(w io.Writer, history []model.DailyAssignments, passphrase string) error {
	if history == nil {
		history = []model.DailyAssignments{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if passphrase != "" {
		data, err = Encrypt(data, passphrase)
		if err != nil {
			return fmt.Errorf("encrypt history: %w", err)
		}
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Import reads a history written by Export.
func Import(r io.Reader, passphrase string) ([]model.DailyAssignments, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if IsEncrypted(data) {
		if passphrase == "" {
			return nil, ErrPassphraseRequired
		}
		data, err = Decrypt(data, passphrase)
		if err != nil {
			return nil, err
		}
	}

	var history []model.DailyAssignments
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	for i := range history {
		if history[i].Assignments == nil {
			history[i].Assignments = []model.Assignment{}
		}
	}
	return history, nil
}

// WriteFile exports history to path with owner-only permissions.
func WriteFile(path string, history []model.DailyAssignments, passphrase string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Export(f, history, passphrase); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile imports history from path.
func ReadFile(path, passphrase string) ([]model.DailyAssignments, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return Import(f, passphrase)
}
