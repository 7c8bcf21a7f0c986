// Copyright (c) 2026 The Ordbook developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads and validates the client configuration used by the
// order builders and the indexer client.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Config holds the client configuration.
type Config struct {
	// DataDir is where the listing reservation database lives.
	DataDir string

	// Network selects the chain: mainnet, testnet, or regtest.
	Network string

	// RPCURL points at the indexer's JSON-RPC endpoint. Empty means the
	// network preset is used where one exists.
	RPCURL string

	// FeeConfTarget is the confirmation target passed to fee estimation.
	FeeConfTarget int
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:       filepath.Join(home, ".ordbook"),
		Network:       "mainnet",
		FeeConfTarget: 2,
	}
}

// Params returns the chain parameters for the configured network. The
// network must have been validated first.
func (c Config) Params() *chaincfg.Params {
	switch c.Network {
	case "testnet":
		return &chaincfg.TestNet3Params
	case "regtest":
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

// LoadConfig reads a key = value config file, applying values on top of
// DefaultConfig. Blank lines and #-comments are skipped; unknown keys are
// ignored for forward compatibility.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "rpcurl":
			cfg.RPCURL = value
		case "feeconftarget":
			n, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: feeconftarget: %q", ErrInvalidConfigLine, lineNo, value)
			}
			cfg.FeeConfTarget = n
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration as a key = value file, creating
// parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	if cfg.RPCURL != "" {
		fmt.Fprintf(&b, "rpcurl = %s\n", cfg.RPCURL)
	}
	fmt.Fprintf(&b, "feeconftarget = %d\n", cfg.FeeConfTarget)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
