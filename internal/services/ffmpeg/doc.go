// Package ffmpeg invokes the ffmpeg executable with the retuning filter
// graphs. The Executor seam keeps conversion logic testable without a real
// binary.
package ffmpeg
