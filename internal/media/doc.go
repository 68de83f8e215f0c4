// Package media acquires matched audio through yt-dlp and writes the tagged output file.
//
// # Acquisition
//
// [YTDLP] implements [Downloader]. It runs yt-dlp with audio extraction into
// "{dir}/{id}.{format}" and returns the written path. A non-zero exit is reported as
// [shared.ErrAcquisitionFailed] with stderr attached.
//
// # Tagging
//
// [Tagger] turns a raw file into the final "{title}.mp3":
//   - [FFmpegTagger] : re-encodes to MP3 with ffmpeg, embedding tags and the cover stream
//   - [ID3Tagger] : writes ID3v2.3 frames directly with bogem/id3v2 when the raw file is already MP3
//
// Both delete the raw file only after the output was written; on failure the raw file is kept
// so tagging can be retried by hand.
//
// # Paths
//
// [CollectionDir] and [OutputPath] derive output locations, replacing filesystem-unsafe
// characters through [shared.SanitizeFileName].
package media
