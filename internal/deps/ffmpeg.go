package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpeg reports the FFmpeg binary the converter will execute.
//
// Resolution order: the explicit override (config or flag), then PATH, then
// a fixed list of well-known install directories. The returned Status is
// marked unavailable rather than erroring so callers can surface the
// condition without aborting unrelated work.
func ResolveFFmpeg(override string) Status {
	return resolveTool("FFmpeg", "ffmpeg", override, "Required for pitch-shift conversion")
}

// ResolveFFprobe reports the ffprobe binary used for metadata extraction.
// ffprobe usually ships next to ffmpeg, so a resolved ffmpeg directory is
// searched before the well-known locations.
func ResolveFFprobe(override, ffmpegPath string) Status {
	if strings.TrimSpace(override) == "" && strings.TrimSpace(ffmpegPath) != "" {
		candidate := filepath.Join(filepath.Dir(ffmpegPath), executableName("ffprobe"))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return Status{
				Name:        "FFprobe",
				Command:     candidate,
				Description: "Required for metadata inspection",
				Available:   true,
			}
		}
	}
	return resolveTool("FFprobe", "ffprobe", override, "Required for metadata inspection")
}

func resolveTool(name, binary, override, description string) Status {
	result := Status{
		Name:        name,
		Command:     binary,
		Description: description,
	}

	if override = strings.TrimSpace(override); override != "" {
		if resolved, err := exec.LookPath(override); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
		result.Command = override
		result.Detail = fmt.Sprintf("configured binary %q not found", override)
		return result
	}

	if resolved, err := exec.LookPath(binary); err == nil {
		result.Command = resolved
		result.Available = true
		return result
	}

	for _, dir := range wellKnownDirs() {
		candidate := filepath.Join(dir, executableName(binary))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			result.Command = candidate
			result.Available = true
			return result
		}
	}

	result.Available = false
	result.Detail = fmt.Sprintf("binary %q not found", binary)
	return result
}

// wellKnownDirs lists install locations checked after PATH. The Windows
// entries mirror where spotdl, scoop, and chocolatey drop ffmpeg.
func wellKnownDirs() []string {
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		return []string{
			filepath.Join(home, ".spotdl"),
			filepath.Join(home, "AppData", "Local", "spotdl"),
			filepath.Join(home, "scoop", "apps", "ffmpeg", "current", "bin"),
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
			`C:\ProgramData\chocolatey\bin`,
		}
	}
	return []string{
		filepath.Join(home, ".spotdl"),
		"/usr/local/bin",
		"/opt/homebrew/bin",
		"/usr/bin",
		"/snap/bin",
	}
}

func executableName(binary string) string {
	if runtime.GOOS == "windows" {
		return binary + ".exe"
	}
	return binary
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
