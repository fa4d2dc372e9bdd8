package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	SaveDBPath string
	SimSeed    int64
	UserTeamID string
	StartWeek  int
	Season     SeasonConfig
	Pacing     PacingConfig
	Metrics    MetricsConfig
}

// SeasonConfig carries the calendar constants.
type SeasonConfig struct {
	RegularSeasonWeeks int
	PlayoffWeeks       int
}

// PacingConfig sets the inter-play delay per simulation speed.
type PacingConfig struct {
	Slow   Duration
	Normal Duration
	Fast   Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		SaveDBPath: envOrDefault(envSaveDBPath, defaultSaveDBPath),
		SimSeed:    int64EnvOrDefault(envSimSeed, defaultSimSeed),
		UserTeamID: envOrDefault(envUserTeam, ""),
		StartWeek:  intEnvOrDefault(envStartWeek, defaultWeek),
		Season: SeasonConfig{
			RegularSeasonWeeks: intEnvOrDefault(envRegularSeasonWeeks, defaultRegularSeasonWeeks),
			PlayoffWeeks:       intEnvOrDefault(envPlayoffWeeks, defaultPlayoffWeeks),
		},
		Pacing: PacingConfig{
			Slow:   durationEnvOrDefault(envSlowDelay, defaultSlowDelay),
			Normal: durationEnvOrDefault(envNormalDelay, defaultNormalDelay),
			Fast:   durationEnvOrDefault(envFastDelay, defaultFastDelay),
		},
		Metrics: loadMetrics(),
	}
}
