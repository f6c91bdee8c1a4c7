package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ticketapp/internal/flagx"
	"github.com/tailscale/hujson"
)

// JsonConfig is a DTO used exclusively for file unmarshalling. Pointer fields
// tell "absent" apart from zero values, so a file that only sets log_level
// leaves the other defaults alone.
type JsonConfig struct {
	StoragePath  *string `json:"storage_path"`
	StorageQuota *int64  `json:"storage_quota"`
	SeedTickets  *bool   `json:"seed_tickets"`
	LogLevel     *string `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Without the flag it does nothing. Read or parse errors panic, like flag
// errors do.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc, err := decodeJSONC(data)
	if err != nil {
		panic(fmt.Errorf("config %s: %w", path, err))
	}

	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.StorageQuota != nil {
		cfg.StorageQuota = *jc.StorageQuota
	}
	if jc.SeedTickets != nil {
		cfg.SeedTickets = *jc.SeedTickets
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}

func decodeJSONC(data []byte) (*JsonConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(standardized, &jc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &jc, nil
}
