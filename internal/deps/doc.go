// Package deps resolves the external executables retune drives and probes
// ffmpeg's filter list for rubberband support. The probe runs once at
// startup; the resulting Capability is passed down explicitly instead of
// living in process-wide state.
package deps
