package shared

// Badge is a customer-facing status presentation: a display label plus a
// severity tone the UI maps to a color.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// Badge tones
const (
	ToneSuccess = "success"
	ToneWarning = "warning"
	ToneDanger  = "danger"
	ToneInfo    = "info"
	ToneNeutral = "neutral"
)
