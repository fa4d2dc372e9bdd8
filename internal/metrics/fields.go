package metrics

// Attribute keys shared by the OTel instruments.
const (
	attrMethod      = "http_method"
	attrPath        = "http_path"
	attrStatus      = "http_status"
	attrSeasonPhase = "season_phase"
)
