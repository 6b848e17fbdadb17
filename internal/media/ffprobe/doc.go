// Package ffprobe wraps ffprobe JSON inspection and the single field
// duration probe used to decide whether a conversion preserved tempo.
package ffprobe
