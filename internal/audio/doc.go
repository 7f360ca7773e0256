// Package audio writes ID3 tags and playlists for exported recordings.
//
// # ID3 Tagging
//
// Use the Tagger to label an exported MP3 clip:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(clip, collection, photoJPEG)
//
// The tagger writes:
//   - Artist and Album Artist (the child's name)
//   - Album ("My Name Is") and Title ("Letter E (1)")
//   - Track number, year and recording date
//   - A comment with the storage key and take
//   - The child photo as front cover
//
// # Playlist Generation
//
// A deck playlist lists the clips in flashcard order:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(collection)
//	os.WriteFile(collection.PlaylistPath, []byte(content), 0644)
//
// Supported formats are M3U (optionally extended), PLS, WPL and ZPL.
package audio
