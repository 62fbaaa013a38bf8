package music

import (
	"context"
	"fmt"

	"github.com/carson-networks/service-console/internal/apiclient"
)

// Client exposes the music playlist service operations.
type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	var out []Playlist
	if err := c.api.Get(ctx, "ListPlaylists", "/playlists/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPlaylist(ctx context.Context, playlistID int) (*Playlist, error) {
	var out Playlist
	if err := c.api.Get(ctx, "GetPlaylist", fmt.Sprintf("/playlists/%d", playlistID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePlaylist(ctx context.Context, create PlaylistCreate) (*Playlist, error) {
	var out Playlist
	if err := c.api.Post(ctx, "CreatePlaylist", "/playlists/", create, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlaylist replaces name and description of an existing playlist.
func (c *Client) UpdatePlaylist(ctx context.Context, playlistID int, update PlaylistCreate) (*Playlist, error) {
	var out Playlist
	if err := c.api.Put(ctx, "UpdatePlaylist", fmt.Sprintf("/playlists/%d", playlistID), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePlaylist removes the playlist and its songs.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID int) (*apiclient.Message, error) {
	var out apiclient.Message
	if err := c.api.Delete(ctx, "DeletePlaylist", fmt.Sprintf("/playlists/%d", playlistID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPlaylistSongs(ctx context.Context, playlistID int) ([]Song, error) {
	var out []Song
	if err := c.api.Get(ctx, "ListPlaylistSongs", fmt.Sprintf("/playlists/%d/songs/", playlistID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddSong(ctx context.Context, playlistID int, create SongCreate) (*Song, error) {
	var out Song
	if err := c.api.Post(ctx, "AddSong", fmt.Sprintf("/playlists/%d/songs/", playlistID), create, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSongs returns songs across every playlist.
func (c *Client) ListSongs(ctx context.Context) ([]Song, error) {
	var out []Song
	if err := c.api.Get(ctx, "ListSongs", "/songs/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteSong(ctx context.Context, songID int) (*apiclient.Message, error) {
	var out apiclient.Message
	if err := c.api.Delete(ctx, "DeleteSong", fmt.Sprintf("/songs/%d", songID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*apiclient.Message, error) {
	return c.api.Health(ctx)
}
