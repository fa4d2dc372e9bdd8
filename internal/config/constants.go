package config

import "time"

const (
	envPort               = "PORT"
	envSaveDBPath         = "SAVE_DB_PATH"
	envSimSeed            = "SIM_SEED"
	envUserTeam           = "USER_TEAM_ID"
	envStartWeek          = "START_WEEK"
	envRegularSeasonWeeks = "REGULAR_SEASON_WEEKS"
	envPlayoffWeeks       = "PLAYOFF_WEEKS"
	envSlowDelay          = "PLAY_DELAY_SLOW"
	envNormalDelay        = "PLAY_DELAY_NORMAL"
	envFastDelay          = "PLAY_DELAY_FAST"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort       = "4000"
	defaultSaveDBPath = "franchise.db"
	// Zero seed means "derive from wall clock" at startup.
	defaultSimSeed = int64(0)
	defaultWeek    = 1

	defaultRegularSeasonWeeks = 18
	defaultPlayoffWeeks       = 4

	defaultSlowDelay   = 1200 * Duration(time.Millisecond)
	defaultNormalDelay = 600 * Duration(time.Millisecond)
	defaultFastDelay   = 150 * Duration(time.Millisecond)

	defaultMetricsPort = "9090"
)
