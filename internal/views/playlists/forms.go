// Package playlists holds the playlist and song screens and the shell that tracks the
// selected playlist.
package playlists

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/refresh"
	"github.com/carson-networks/service-console/internal/validation"
)

var validate = validation.New()

func checkForm[V any](values V) error {
	return validation.Convert(validate.Struct(values))
}

type signaler interface {
	Subscribe(name string, handler refresh.Handler, kinds ...refresh.Kind)
	Signal(ctx context.Context, source string, kinds ...refresh.Kind) error
}

type PlaylistForm struct {
	Name        string `form:"name" validate:"notblank"`
	Description string `form:"description"`
}

type SongForm struct {
	Title  string `form:"title" validate:"notblank"`
	Artist string `form:"artist" validate:"notblank"`
	Album  string `form:"album"`
	// Duration is in seconds; nil when unknown.
	Duration *int `form:"duration" validate:"omitempty,gte=0"`
}

// FormatDuration renders seconds as m:ss. Zero is "Unknown".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatSongDuration is FormatDuration for an optional duration.
func FormatSongDuration(duration *int) string {
	if duration == nil {
		return "Unknown"
	}
	return FormatDuration(*duration)
}

// TotalDuration sums known durations.
func TotalDuration(songs []music.Song) int {
	return lo.SumBy(songs, func(s music.Song) int {
		if s.Duration == nil {
			return 0
		}
		return *s.Duration
	})
}

// SongCountLabel reads "1 song" or "N songs".
func SongCountLabel(n int) string {
	if n == 1 {
		return "1 song"
	}
	return fmt.Sprintf("%d songs", n)
}
