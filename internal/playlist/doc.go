// Package playlist generates playlist files over the converted tracks.
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//
// Generate and write a playlist after a successful batch:
//
//	creator := playlist.NewCreator(playlist.FormatM3U, true)
//	content := creator.Create(jobs)
//	path := filepath.Join(outputDir, creator.FileName(albumTitle))
//	os.WriteFile(path, []byte(content), 0644)
package playlist
