package main

import (
	"context"
	"fmt"

	"retune/internal/convert"
	"retune/internal/deps"
	"retune/internal/services/ffmpeg"
	"retune/internal/tuning"
	"retune/internal/verify"
)

// conversionStack bundles everything a converting command needs: the probed
// capability, the selected strategy, and a wired converter.
type conversionStack struct {
	capability deps.Capability
	selected   tuning.Strategy
	converter  *convert.Converter
}

func buildConversionStack(cmdCtx context.Context, ctx *commandContext) (*conversionStack, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	capability := ctx.ensureCapability(cmdCtx)
	if !capability.FFmpeg.Available {
		return nil, fmt.Errorf("ffmpeg not found: %s (install ffmpeg or set tools.ffmpeg in the config)", capability.FFmpeg.Detail)
	}

	client, err := ffmpeg.New(capability.FFmpeg.Command, ffmpeg.Settings{
		FormantPreservation: cfg.Conversion.FormantPreservation,
		SourceSampleRate:    cfg.Conversion.SourceSampleRate,
		TimeoutSeconds:      cfg.Conversion.TimeoutSeconds,
	})
	if err != nil {
		return nil, err
	}

	converter, err := convert.NewConverter(client, logger)
	if err != nil {
		return nil, err
	}

	return &conversionStack{
		capability: capability,
		selected:   tuning.Select(capability.Rubberband),
		converter:  converter,
	}, nil
}

func buildVerifier(cmdCtx context.Context, ctx *commandContext) (*verify.Verifier, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	capability := ctx.ensureCapability(cmdCtx)
	if !capability.FFprobe.Available {
		return nil, fmt.Errorf("ffprobe not found: %s (install ffmpeg or set tools.ffprobe in the config)", capability.FFprobe.Detail)
	}
	return verify.NewVerifier(capability.FFprobe.Command, logger)
}
