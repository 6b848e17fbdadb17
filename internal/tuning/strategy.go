package tuning

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy identifies one of the two conversion approaches. The choice is
// made once per process from the capability probe and never revisited.
type Strategy string

const (
	// StrategyHighQuality uses ffmpeg's rubberband filter: time-domain
	// pitch shifting that preserves tempo directly.
	StrategyHighQuality Strategy = "rubberband"
	// StrategyFallback reinterprets the sample rate, resamples back with
	// soxr, and applies the reciprocal atempo correction.
	StrategyFallback Strategy = "asetrate"
)

// Select maps the probed rubberband capability to the strategy attempted
// first. Capability does not change during a run, so callers should invoke
// this exactly once at startup.
func Select(hasRubberband bool) Strategy {
	if hasRubberband {
		return StrategyHighQuality
	}
	return StrategyFallback
}

// AttemptOrder returns the ordered strategies the converter tries for one
// file. Without rubberband the high-quality path cannot run at all, so the
// fallback is the only attempt.
func AttemptOrder(selected Strategy) []Strategy {
	if selected == StrategyHighQuality {
		return []Strategy{StrategyHighQuality, StrategyFallback}
	}
	return []Strategy{StrategyFallback}
}

var displayTitle = cases.Title(language.Und)

// DisplayName renders the strategy for human-facing output: the title-cased
// filter name plus a quality qualifier.
func (s Strategy) DisplayName() string {
	label := displayTitle.String(string(s))
	switch s {
	case StrategyHighQuality:
		return label + " (high quality)"
	case StrategyFallback:
		return label + " + SoXR (fallback)"
	default:
		return label
	}
}
