// Package snapshotloader reads the controller-state snapshots consumed by the
// balance calculations from a directory of YAML files, one file per state
// source.
package snapshotloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"asset_tracker/internal/app/port"
	"asset_tracker/internal/domain/entity"
)

// File names expected inside the state directory.
const (
	FileAccountTree        = "account_tree.yaml"
	FileAccounts           = "accounts.yaml"
	FileTokenBalances      = "token_balances.yaml"
	FileTokens             = "tokens.yaml"
	FileTokenRates         = "token_rates.yaml"
	FileCurrencyRates      = "currency_rates.yaml"
	FileMultichainBalances = "multichain_balances.yaml"
	FileMultichainRates    = "multichain_rates.yaml"
	FileEnabledNetworks    = "enabled_networks.yaml"
)

// Loader reads snapshots from a state directory. A missing individual file is
// treated as an empty state source so a partially populated directory still
// produces a usable snapshot; only an unreadable or malformed file is an
// error.
type Loader struct {
	stateDir string
	logger   port.Logger
}

// New creates a Loader for the given state directory.
func New(stateDir string, logger port.Logger) *Loader {
	return &Loader{stateDir: stateDir, logger: logger}
}

// Load assembles a full snapshot from the state directory.
func (l *Loader) Load() (entity.Snapshot, error) {
	var snap entity.Snapshot

	if err := l.readFile(FileAccountTree, &snap.AccountTree); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileAccounts, &snap.Accounts); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileTokenBalances, &snap.TokenBalances); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileTokens, &snap.Tokens); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileTokenRates, &snap.TokenRates); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileCurrencyRates, &snap.CurrencyRates); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileMultichainBalances, &snap.MultichainBalances); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileMultichainRates, &snap.MultichainRates); err != nil {
		return entity.Snapshot{}, err
	}
	if err := l.readFile(FileEnabledNetworks, &snap.EnabledNetworks); err != nil {
		return entity.Snapshot{}, err
	}

	return snap, nil
}

func (l *Loader) readFile(name string, out any) error {
	path := filepath.Join(l.stateDir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if l.logger != nil {
			l.logger.Debug("State file absent, using empty state", "file", name)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal state file %s: %w", path, err)
	}
	return nil
}
