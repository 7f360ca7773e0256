// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Writing export files without leaving partial files behind
//   - Directory creation
//   - Preparing the child photo (decode, resize, re-encode as JPEG)
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/exports/Emma/cover.jpg", photo)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/exports/Emma")
//
// # Image Processing
//
// The ImageService turns an uploaded photo into a bounded JPEG:
//
//	svc := ioutils.NewImageService()
//
//	// Fit within 600x600, flatten transparency, encode as JPEG
//	photo, err := svc.PreparePhoto(ctx, pngData, 600)
package ioutils
