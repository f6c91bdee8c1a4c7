package config

// Config holds runtime settings for the ticketapp client.
//
// Fields:
//   - StoragePath: SQLite file backing the local key-value store.
//   - StorageQuota: maximum total size of stored items in bytes; 0 disables the limit.
//   - SeedTickets: store the demo tickets on start when there are none.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StoragePath  string
	StorageQuota int64
	SeedTickets  bool
	LogLevel     string
}

// DefaultStorageQuota mirrors the usual browser local-storage budget.
const DefaultStorageQuota = 5 << 20

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoragePath = "data/ticketapp.db"
	c.StorageQuota = DefaultStorageQuota
	c.SeedTickets = true
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
