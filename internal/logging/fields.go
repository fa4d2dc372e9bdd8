package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldWeek       = "week"
	FieldGameID     = "game_id"
	FieldTeamID     = "team_id"
	FieldEventType  = "event_type"
	FieldCount      = "count"
)
