package service

import (
	"sort"

	"github.com/iconidentify/tubegrab/internal/domain"
)

// SelectFormats reduces the extractor's format list to the combined
// video+audio and audio-only options offered to users.
//
// Each quality bucket (resolution label for video, integer kbps for audio)
// keeps the first descriptor seen. Which rendition wins a bucket therefore
// depends on the order yt-dlp lists formats in; yt-dlp does not document
// that order as a contract.
func SelectFormats(formats []domain.StreamDescriptor) ([]domain.VideoOption, []domain.AudioOption) {
	return selectVideo(formats), selectAudio(formats)
}

func selectVideo(formats []domain.StreamDescriptor) []domain.VideoOption {
	options := make([]domain.VideoOption, 0, domain.MaxVideoOptions)
	seen := make(map[string]bool)

	for _, f := range formats {
		if !f.HasVideo() || !f.HasAudio() {
			continue
		}
		if f.Height < domain.MinVideoHeight {
			continue
		}

		label := domain.ResolutionLabel(f.Height)
		if seen[label] {
			continue
		}
		seen[label] = true

		ext := f.Ext
		if ext == "" {
			ext = domain.DefaultVideoExt
		}

		options = append(options, domain.VideoOption{
			FormatID:   f.FormatID,
			Resolution: label,
			Filesize:   domain.FormatFilesize(f.Size()),
			Ext:        ext,
			Quality:    f.Height,
			Type:       domain.OptionTypeVideo,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Quality > options[j].Quality
	})

	if len(options) > domain.MaxVideoOptions {
		options = options[:domain.MaxVideoOptions]
	}
	return options
}

func selectAudio(formats []domain.StreamDescriptor) []domain.AudioOption {
	options := make([]domain.AudioOption, 0, domain.MaxAudioOptions)
	seen := make(map[int]bool)

	for _, f := range formats {
		if !f.HasAudio() || f.HasVideo() {
			continue
		}
		if f.AudioBitrate <= 0 {
			continue
		}

		kbps := int(f.AudioBitrate)
		if kbps < domain.MinAudioKbps || seen[kbps] {
			continue
		}
		seen[kbps] = true

		ext := f.Ext
		if ext == "" {
			ext = domain.DefaultAudioExt
		}

		options = append(options, domain.AudioOption{
			FormatID: f.FormatID,
			Bitrate:  domain.BitrateLabel(kbps),
			Filesize: domain.FormatFilesize(f.Size()),
			Ext:      ext,
			Quality:  kbps,
			Type:     domain.OptionTypeAudio,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Quality > options[j].Quality
	})

	if len(options) > domain.MaxAudioOptions {
		options = options[:domain.MaxAudioOptions]
	}
	return options
}
