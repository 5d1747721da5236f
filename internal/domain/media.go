// Package domain holds the request-scoped media types, formatting helpers
// and error taxonomy shared by the service and API layers.
package domain

import "strings"

// Selection limits and thresholds for presentable formats.
const (
	MaxVideoOptions = 8
	MaxAudioOptions = 4
	MinVideoHeight  = 144
	MinAudioKbps    = 32
)

// Option types reported to clients.
const (
	OptionTypeVideo = "video"
	OptionTypeAudio = "audio"
)

// Defaults applied when the extractor omits a field.
const (
	UnknownLabel    = "Unknown"
	DefaultVideoExt = "mp4"
	DefaultAudioExt = "m4a"
)

// codecNone is what yt-dlp reports for an absent codec.
const codecNone = "none"

const (
	youtubeDomain     = "youtube.com"
	youtubeShortLinks = "youtu.be"
)

// StreamDescriptor is one encoded rendition reported by the extractor.
type StreamDescriptor struct {
	FormatID       string
	VideoCodec     string
	AudioCodec     string
	Height         int
	AudioBitrate   float64 // kbps
	Ext            string
	Filesize       int64
	FilesizeApprox int64
}

// HasVideo reports whether the stream carries a usable video codec.
func (d StreamDescriptor) HasVideo() bool {
	return d.VideoCodec != "" && d.VideoCodec != codecNone
}

// HasAudio reports whether the stream carries a usable audio codec.
func (d StreamDescriptor) HasAudio() bool {
	return d.AudioCodec != "" && d.AudioCodec != codecNone
}

// Size returns the exact byte size if known, otherwise the approximate one.
func (d StreamDescriptor) Size() int64 {
	if d.Filesize > 0 {
		return d.Filesize
	}
	return d.FilesizeApprox
}

// MediaMetadata is the metadata-only extraction result for one video.
type MediaMetadata struct {
	Title     string
	Thumbnail string
	Uploader  string
	Duration  int // seconds
	ViewCount int64
	Formats   []StreamDescriptor
}

// VideoOption is a combined audio+video format offered to the user.
type VideoOption struct {
	FormatID   string `json:"format_id"`
	Resolution string `json:"resolution"`
	Filesize   string `json:"filesize"`
	Ext        string `json:"ext"`
	Quality    int    `json:"quality"`
	Type       string `json:"type"`
}

// AudioOption is an audio-only format offered to the user.
type AudioOption struct {
	FormatID string `json:"format_id"`
	Bitrate  string `json:"abr"`
	Filesize string `json:"filesize"`
	Ext      string `json:"ext"`
	Quality  int    `json:"quality"`
	Type     string `json:"type"`
}

// VideoInfo is the response for an info lookup.
type VideoInfo struct {
	Title        string        `json:"title"`
	Thumbnail    string        `json:"thumbnail"`
	Duration     string        `json:"duration"`
	Author       string        `json:"author"`
	Views        int64         `json:"views"`
	VideoStreams []VideoOption `json:"video_streams"`
	AudioStreams []AudioOption `json:"audio_streams"`
}

// DownloadedFile is a file written by the extractor for a single request.
// WorkDir is the per-request directory that owns it.
type DownloadedFile struct {
	Path    string
	Name    string
	Size    int64
	WorkDir string
}

// IsSupportedURL reports whether url points at YouTube.
func IsSupportedURL(url string) bool {
	return strings.Contains(url, youtubeDomain) || strings.Contains(url, youtubeShortLinks)
}
