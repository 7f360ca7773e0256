// Package export writes a subject's recordings to disk.
//
// # Manager
//
// The Manager coordinates one export:
//
//  1. List the subject's recordings in deck order
//  2. Save the child photo as cover.jpg (optional)
//  3. Write the clips concurrently
//  4. Tag MP3 clips with ID3 metadata and the photo
//  5. Generate a deck playlist (optional)
//
// # Basic Usage
//
//	manager := export.NewManager(settings, store, logger, func(event export.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.Export(ctx, "Emma", photo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Collection.Path)
//
// # Concurrency
//
// Clips are written by an errgroup limited to settings.MaxConcurrentExports.
// A clip that fails is reported through the progress callback and the
// export carries on; Result.Failed counts them.
package export
