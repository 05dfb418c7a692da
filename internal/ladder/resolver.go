package ladder

import "fmt"

// Mode is a PoE2 game mode.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeHardcore Mode = "hc"
	ModeSSF      Mode = "ssf"
	ModeHCSSF    Mode = "hcssf"
)

// ParseMode validates a game mode string from the command line.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard, ModeHardcore, ModeSSF, ModeHCSSF:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

// seasonName is the current challenge league cycle.
const seasonName = "Dawn of the Hunt"

// LeagueName maps a game mode and the seasonal flag to the league's display
// name as it appears in the API's league listing.
func LeagueName(mode Mode, seasonal bool) string {
	if seasonal {
		switch mode {
		case ModeStandard:
			return seasonName
		case ModeHardcore:
			return "HC " + seasonName
		case ModeSSF:
			return "SSF " + seasonName
		case ModeHCSSF:
			return "HC SSF " + seasonName
		}
	} else {
		switch mode {
		case ModeStandard:
			return "Standard"
		case ModeHardcore:
			return "Hardcore"
		case ModeSSF:
			return "Solo Self-Found"
		case ModeHCSSF:
			return "Hardcore SSF"
		}
	}
	return "Unknown"
}
