package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset returns the preset for a CLI value and whether it is known.
// The empty string means "keep the config as loaded".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// StartPaceForPreset returns the starting drop interval for a preset.
// Returns 0 for presets that keep the configured value.
func StartPaceForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyNormal:
		return 0.5
	case DifficultyHard:
		return 0.25
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables acceleration.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Accelerated returns the drop interval after clearing lines.
// The interval shrinks by Decrement per line and never goes below Min.
// When acceleration is off the pace is returned unchanged.
func (p PaceConfig) Accelerated(pace float64, lines int) float64 {
	if !p.Accelerate || lines <= 0 {
		return pace
	}
	return max(pace-float64(lines)*p.Decrement, p.Min)
}
