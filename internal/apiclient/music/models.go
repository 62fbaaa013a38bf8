package music

import (
	"github.com/carson-networks/service-console/internal/apiclient"
)

type Song struct {
	ID         int     `json:"id" validate:"gt=0"`
	PlaylistID int     `json:"playlist_id"`
	Title      string  `json:"title" validate:"required"`
	Artist     string  `json:"artist"`
	Album      *string `json:"album"`
	// Duration is in seconds; nil when unknown.
	Duration *int `json:"duration" validate:"omitempty,gte=0"`
}

type SongCreate struct {
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    *string `json:"album,omitempty"`
	Duration *int    `json:"duration,omitempty"`
}

type Playlist struct {
	ID          int                 `json:"id" validate:"gt=0"`
	Name        string              `json:"name" validate:"required"`
	Description *string             `json:"description"`
	CreatedAt   apiclient.Timestamp `json:"created_at"`
	Songs       []Song              `json:"songs" validate:"dive"`
}

// DescriptionText returns the description or "".
func (p Playlist) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// PlaylistCreate is the body of both create and update.
type PlaylistCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// NewPlaylistCreate leaves the description unset when it is blank.
func NewPlaylistCreate(name, description string) PlaylistCreate {
	out := PlaylistCreate{Name: name}
	if description != "" {
		out.Description = &description
	}
	return out
}
