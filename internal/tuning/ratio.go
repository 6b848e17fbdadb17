package tuning

import "fmt"

const (
	// TargetFrequencyHz is the tuning reference the converter produces.
	TargetFrequencyHz = 432.0
	// SourceFrequencyHz is the standard concert pitch the input is assumed
	// to carry.
	SourceFrequencyHz = 440.0
)

// PitchRatio is the multiplicative factor applied to every frequency when
// retuning from 440 Hz to 432 Hz (≈0.981818).
const PitchRatio = TargetFrequencyHz / SourceFrequencyHz

// TempoCompensation restores the original playback duration after a
// sample-rate based pitch shift. asetrate by PitchRatio stretches playback
// by 1/PitchRatio, so the atempo factor is the reciprocal (≈1.018519).
const TempoCompensation = SourceFrequencyHz / TargetFrequencyHz

// DurationTolerance is the sole automated tempo-preservation criterion:
// a converted/original duration ratio within this distance of 1.0 passes.
const DurationTolerance = 0.02

// Ratio computes target/source for arbitrary frequency pairs. It exists so
// the fixed constants above stay testable against their definition.
func Ratio(targetHz, sourceHz float64) float64 {
	return targetHz / sourceHz
}

// FormatRatio renders a ratio with the six decimal places used in logs and
// filter graphs.
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.6f", ratio)
}

// NoteShiftDescription is the fixed explanatory note attached to
// verification reports. MP3 carries no tuning metadata, so the audible
// cue is the only direct confirmation available.
const NoteShiftDescription = "A4 moves from 440 Hz to 432 Hz (~31 cents flat); same tempo, slightly lower pitch"
