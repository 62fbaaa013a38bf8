package apitest

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type fakePlaylist struct {
	ID          int
	Name        string
	Description *string
}

type fakeSong struct {
	ID         int
	PlaylistID int
	Title      string
	Artist     string
	Album      *string
	Duration   *int
}

// MusicBackend is an in-memory playlist service speaking the music REST contract.
type MusicBackend struct {
	*Backend

	mu        sync.Mutex
	created   time.Time
	nextList  int
	nextSong  int
	playlists map[int]*fakePlaylist
	songs     map[int]*fakeSong
}

type playlistBody struct {
	Name        string  `json:"name" minLength:"1"`
	Description *string `json:"description,omitempty"`
}

type playlistCreateInput struct {
	Body playlistBody
}

type playlistUpdateInput struct {
	ID   int `path:"id"`
	Body playlistBody
}

type songCreateInput struct {
	ID   int `path:"id"`
	Body struct {
		Title    string  `json:"title" minLength:"1"`
		Artist   string  `json:"artist" minLength:"1"`
		Album    *string `json:"album,omitempty"`
		Duration *int    `json:"duration,omitempty"`
	}
}

func NewMusicBackend(t testing.TB) *MusicBackend {
	t.Helper()
	m := &MusicBackend{
		Backend:   NewBackend(t, "Music Playlist API"),
		created:   time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		playlists: make(map[int]*fakePlaylist),
		songs:     make(map[int]*fakeSong),
	}
	m.routes()
	return m
}

// SeedPlaylist adds a playlist directly and returns its id.
func (m *MusicBackend) SeedPlaylist(name, description string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextList++
	p := &fakePlaylist{ID: m.nextList, Name: name}
	if description != "" {
		p.Description = &description
	}
	m.playlists[p.ID] = p
	return p.ID
}

// SeedSong adds a song to a playlist; duration 0 means unknown.
func (m *MusicBackend) SeedSong(playlistID int, title, artist string, duration int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSong++
	s := &fakeSong{ID: m.nextSong, PlaylistID: playlistID, Title: title, Artist: artist}
	if duration > 0 {
		s.Duration = &duration
	}
	m.songs[s.ID] = s
	return s.ID
}

// RemovePlaylist deletes a playlist behind the client's back.
func (m *MusicBackend) RemovePlaylist(playlistID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playlists, playlistID)
}

func (m *MusicBackend) routes() {
	Register(m.Backend, http.MethodGet, "/", func(ctx context.Context, in *NoInput) (*Response, error) {
		return OK(map[string]any{"message": "Welcome to Music Playlist API! Visit /docs for Swagger documentation"})
	})

	Register(m.Backend, http.MethodGet, "/playlists/", func(ctx context.Context, in *NoInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := []map[string]any{}
		for _, id := range m.playlistIDs() {
			out = append(out, m.playlistJSON(m.playlists[id]))
		}
		return OK(out)
	})

	Register(m.Backend, http.MethodPost, "/playlists/", func(ctx context.Context, in *playlistCreateInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.nextList++
		p := &fakePlaylist{ID: m.nextList, Name: in.Body.Name, Description: in.Body.Description}
		m.playlists[p.ID] = p
		return OK(m.playlistJSON(p))
	})

	Register(m.Backend, http.MethodGet, "/playlists/{id}", func(ctx context.Context, in *IDInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		p, ok := m.playlists[in.ID]
		if !ok {
			return nil, huma.Error404NotFound("Playlist not found")
		}
		return OK(m.playlistJSON(p))
	})

	Register(m.Backend, http.MethodPut, "/playlists/{id}", func(ctx context.Context, in *playlistUpdateInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		p, ok := m.playlists[in.ID]
		if !ok {
			return nil, huma.Error404NotFound("Playlist not found")
		}
		p.Name = in.Body.Name
		p.Description = in.Body.Description
		return OK(m.playlistJSON(p))
	})

	Register(m.Backend, http.MethodDelete, "/playlists/{id}", func(ctx context.Context, in *IDInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.playlists[in.ID]; !ok {
			return nil, huma.Error404NotFound("Playlist not found")
		}
		delete(m.playlists, in.ID)
		for id, s := range m.songs {
			if s.PlaylistID == in.ID {
				delete(m.songs, id)
			}
		}
		return OK(map[string]any{"message": "Playlist deleted successfully"})
	})

	Register(m.Backend, http.MethodGet, "/playlists/{id}/songs/", func(ctx context.Context, in *IDInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return OK(m.songsJSON(in.ID))
	})

	Register(m.Backend, http.MethodPost, "/playlists/{id}/songs/", func(ctx context.Context, in *songCreateInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.playlists[in.ID]; !ok {
			return nil, huma.Error404NotFound("Playlist not found")
		}
		m.nextSong++
		s := &fakeSong{
			ID:         m.nextSong,
			PlaylistID: in.ID,
			Title:      in.Body.Title,
			Artist:     in.Body.Artist,
			Album:      in.Body.Album,
			Duration:   in.Body.Duration,
		}
		m.songs[s.ID] = s
		return OK(songJSON(s))
	})

	Register(m.Backend, http.MethodGet, "/songs/", func(ctx context.Context, in *NoInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return OK(m.songsJSON(0))
	})

	Register(m.Backend, http.MethodDelete, "/songs/{id}", func(ctx context.Context, in *IDInput) (*Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.songs[in.ID]; !ok {
			return nil, huma.Error404NotFound("Song not found")
		}
		delete(m.songs, in.ID)
		return OK(map[string]any{"message": "Song deleted successfully"})
	})
}

func (m *MusicBackend) playlistIDs() []int {
	ids := make([]int, 0, len(m.playlists))
	for id := range m.playlists {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// songsJSON lists the songs of playlistID, or every song when playlistID is 0.
func (m *MusicBackend) songsJSON(playlistID int) []map[string]any {
	ids := make([]int, 0, len(m.songs))
	for id, s := range m.songs {
		if playlistID == 0 || s.PlaylistID == playlistID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, songJSON(m.songs[id]))
	}
	return out
}

func (m *MusicBackend) playlistJSON(p *fakePlaylist) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"created_at":  m.created.Format(naiveLayout),
		"songs":       m.songsJSON(p.ID),
	}
}

func songJSON(s *fakeSong) map[string]any {
	return map[string]any{
		"id":          s.ID,
		"playlist_id": s.PlaylistID,
		"title":       s.Title,
		"artist":      s.Artist,
		"album":       s.Album,
		"duration":    s.Duration,
	}
}
