package domain

import (
	"fmt"
	"strings"
)

const maxFilenameLength = 200

var filenameReplacer = strings.NewReplacer(
	`\`, "", "/", "", "*", "", "?", "", ":", "",
	`"`, "", "<", "", ">", "", "|", "",
)

// SanitizeFilename strips characters that are unsafe in filenames and
// truncates the result to 200 characters.
func SanitizeFilename(name string) string {
	name = filenameReplacer.Replace(name)
	runes := []rune(name)
	if len(runes) > maxFilenameLength {
		return string(runes[:maxFilenameLength])
	}
	return name
}

// FormatFilesize renders a byte count in megabytes with one decimal,
// or "Unknown" when the size is not known.
func FormatFilesize(bytes int64) string {
	if bytes <= 0 {
		return UnknownLabel
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// FormatDuration renders seconds as m:ss, or "Unknown" when zero.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return UnknownLabel
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ResolutionLabel returns the quality bucket label for a video height.
func ResolutionLabel(height int) string {
	return fmt.Sprintf("%dp", height)
}

// BitrateLabel returns the display label for an audio bitrate in kbps.
func BitrateLabel(kbps int) string {
	return fmt.Sprintf("%dkbps", kbps)
}
