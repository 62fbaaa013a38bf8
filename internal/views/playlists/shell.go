package playlists

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/refresh"
)

const shellName = "playlist_shell"

// ErrNotLoaded is returned when a selection by id finds nothing in the loaded list.
var ErrNotLoaded = errors.New("playlists: not loaded")

// API is the music backend surface the shell's managers use.
type API interface {
	playlistAPI
	songAPI
}

// Shell tracks the selected playlist and keeps the song manager scoped to it.
type Shell struct {
	Playlists *PlaylistManager
	Songs     *SongManager

	bus    *refresh.Bus
	logger *logrus.Logger

	mu       sync.Mutex
	selected mo.Option[music.Playlist]
}

func NewShell(api API, bus *refresh.Bus, logger *logrus.Logger) *Shell {
	s := &Shell{
		Playlists: NewPlaylistManager(api, bus, logger),
		Songs:     NewSongManager(api, bus, logger),
		bus:       bus,
		logger:    logger,
	}
	bus.Subscribe(shellName, s.reconcile, refresh.Playlists)
	return s
}

// Mount loads the playlists.
func (s *Shell) Mount(ctx context.Context) error {
	return s.Playlists.Load(ctx)
}

func (s *Shell) SelectPlaylist(ctx context.Context, playlist music.Playlist) error {
	s.mu.Lock()
	s.selected = mo.Some(playlist)
	s.mu.Unlock()

	s.logger.WithField("playlistId", playlist.ID).Debug("Shell.Playlists.Select")
	return s.Songs.SetPlaylist(ctx, mo.Some(playlist.ID))
}

// SelectPlaylistByID selects a playlist from the loaded list.
func (s *Shell) SelectPlaylistByID(ctx context.Context, playlistID int) error {
	playlist, ok := s.Playlists.Playlist(playlistID)
	if !ok {
		return fmt.Errorf("%w: playlist %d", ErrNotLoaded, playlistID)
	}
	return s.SelectPlaylist(ctx, playlist)
}

func (s *Shell) ClearSelection(ctx context.Context) error {
	s.mu.Lock()
	s.selected = mo.None[music.Playlist]()
	s.mu.Unlock()
	return s.Songs.SetPlaylist(ctx, mo.None[int]())
}

func (s *Shell) Selected() mo.Option[music.Playlist] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// DeletePlaylist deletes through the playlist manager and clears the selection if it
// pointed at the deleted playlist.
func (s *Shell) DeletePlaylist(ctx context.Context, playlistID int) error {
	if err := s.Playlists.Delete(ctx, playlistID); err != nil {
		return err
	}
	return s.reconcile(ctx)
}

// reconcile refreshes the selected playlist from the loaded list, clearing it when the
// playlist is gone.
func (s *Shell) reconcile(ctx context.Context) error {
	s.mu.Lock()
	current, ok := s.selected.Get()
	s.mu.Unlock()
	if !ok {
		return nil
	}

	fresh, found := s.Playlists.Playlist(current.ID)
	if !found {
		s.logger.WithField("playlistId", current.ID).Debug("Shell.Playlists.SelectionRemoved")
		return s.ClearSelection(ctx)
	}

	s.mu.Lock()
	s.selected = mo.Some(fresh)
	s.mu.Unlock()
	return nil
}

// RefreshCount is the number of refresh signals raised by the managers.
func (s *Shell) RefreshCount() uint64 {
	return s.bus.Count()
}
