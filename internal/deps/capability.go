package deps

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Capability is the one-shot probe result the strategy selection is built
// from. It is computed once at startup and passed to the components that
// need it; nothing re-probes per file.
type Capability struct {
	FFmpeg     Status
	FFprobe    Status
	Rubberband bool
}

const filterProbeTimeout = 15 * time.Second

// listFilters runs `ffmpeg -filters` and returns the combined output. Test
// code swaps this out to probe without a real binary.
var listFilters = func(ctx context.Context, binary string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, "-hide_banner", "-filters")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// Probe resolves both executables and checks whether ffmpeg was built with
// the rubberband filter. A missing ffmpeg yields Rubberband=false and an
// unavailable Status; it is never an error here, callers decide fatality.
func Probe(ctx context.Context, ffmpegOverride, ffprobeOverride string) Capability {
	cap := Capability{}
	cap.FFmpeg = ResolveFFmpeg(ffmpegOverride)
	cap.FFprobe = ResolveFFprobe(ffprobeOverride, cap.FFmpeg.Command)

	if !cap.FFmpeg.Available {
		return cap
	}

	probeCtx, cancel := context.WithTimeout(ctx, filterProbeTimeout)
	defer cancel()

	output, err := listFilters(probeCtx, cap.FFmpeg.Command)
	if err != nil {
		// The filter list is informational; a probe failure only means the
		// high quality path is off the table.
		return cap
	}
	cap.Rubberband = strings.Contains(output, "rubberband")
	return cap
}
