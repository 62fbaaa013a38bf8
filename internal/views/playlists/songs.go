package playlists

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/refresh"
)

const songManagerName = "songs"

type songAPI interface {
	ListPlaylistSongs(ctx context.Context, playlistID int) ([]music.Song, error)
	AddSong(ctx context.Context, playlistID int, create music.SongCreate) (*music.Song, error)
	DeleteSong(ctx context.Context, songID int) (*apiclient.Message, error)
}

// SongManager lists the selected playlist's songs. Without a playlist it is empty and
// never calls the API.
type SongManager struct {
	api  songAPI
	bus  signaler
	list *manager.List[music.Song]
	form *manager.Form[SongForm]

	mu        sync.Mutex
	deleteErr string
}

func NewSongManager(api songAPI, bus signaler, logger *logrus.Logger) *SongManager {
	m := &SongManager{
		api:  api,
		bus:  bus,
		form: manager.NewForm(SongForm{}, checkForm[SongForm]),
	}
	m.list = manager.NewScopedList(songManagerName, "Failed to load songs",
		func(ctx context.Context, playlistID int) ([]music.Song, error) {
			return api.ListPlaylistSongs(ctx, playlistID)
		}, logger)
	bus.Subscribe(songManagerName, m.Load, refresh.Songs)
	return m
}

// SetPlaylist rescopes the manager and reloads when the playlist changed.
func (m *SongManager) SetPlaylist(ctx context.Context, playlistID mo.Option[int]) error {
	if !m.list.SetParent(playlistID) {
		return nil
	}
	m.form.Close()
	return m.list.Load(ctx)
}

func (m *SongManager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

func (m *SongManager) Songs() []music.Song {
	return m.list.Items()
}

func (m *SongManager) TotalDuration() int {
	return TotalDuration(m.list.Items())
}

func (m *SongManager) Status() manager.Status {
	return m.list.Status()
}

func (m *SongManager) Error() string {
	if msg := m.form.Error(); msg != "" {
		return msg
	}
	m.mu.Lock()
	msg := m.deleteErr
	m.mu.Unlock()
	if msg != "" {
		return msg
	}
	return m.list.Error()
}

func (m *SongManager) Form() *manager.Form[SongForm] {
	return m.form
}

func (m *SongManager) CanSubmit() bool {
	return m.list.Parent().IsPresent() && !m.list.Busy() && m.form.CanSubmit()
}

// Add submits the song form to the selected playlist.
func (m *SongManager) Add(ctx context.Context) (*music.Song, error) {
	playlistID, ok := m.list.Parent().Get()
	if !ok {
		return nil, manager.ErrNoParent
	}

	var added *music.Song
	err := manager.Submit(ctx, m.list, m.form, manager.Submission[music.Song, SongForm]{
		Operation: "Add",
		Fallback:  "Failed to add song",
		Call: func(ctx context.Context, v SongForm) error {
			create := music.SongCreate{
				Title:    strings.TrimSpace(v.Title),
				Artist:   strings.TrimSpace(v.Artist),
				Duration: v.Duration,
			}
			if album := strings.TrimSpace(v.Album); album != "" {
				create.Album = &album
			}
			var err error
			added, err = m.api.AddSong(ctx, playlistID, create)
			return err
		},
		Signal: func(ctx context.Context) error {
			return m.bus.Signal(ctx, songManagerName, refresh.Songs)
		},
	})
	return added, err
}

// Delete removes a song from the selected playlist.
func (m *SongManager) Delete(ctx context.Context, songID int) error {
	m.setDeleteErr("")
	var callErr error
	err := m.list.Mutate(ctx, "Delete", func(ctx context.Context) error {
		_, callErr = m.api.DeleteSong(ctx, songID)
		return callErr
	})
	if errors.Is(err, manager.ErrBusy) {
		return err
	}
	if callErr != nil {
		m.setDeleteErr(apiclient.MessageOf(callErr, "Failed to delete song"))
		return callErr
	}
	return errors.Join(err, m.bus.Signal(ctx, songManagerName, refresh.Songs))
}

func (m *SongManager) setDeleteErr(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = msg
}
