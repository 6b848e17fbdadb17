// Package tuning holds the fixed retuning arithmetic shared by the
// converter and the verification engine: the 432/440 pitch ratio, its
// reciprocal tempo compensation, and the conversion strategy chosen from
// the ffmpeg capability probe.
package tuning
