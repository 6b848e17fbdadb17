// Package batch walks a directory of MP3 files and retunes them through a
// bounded worker pool, skipping files whose output already exists.
package batch
