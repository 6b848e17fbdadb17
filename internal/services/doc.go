// Package services defines the sentinel error markers shared by the
// conversion and verification components, plus client packages for the
// external executables they drive.
package services
