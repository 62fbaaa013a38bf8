package playlists

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/refresh"
)

const playlistManagerName = "playlists"

type playlistAPI interface {
	ListPlaylists(ctx context.Context) ([]music.Playlist, error)
	CreatePlaylist(ctx context.Context, create music.PlaylistCreate) (*music.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlistID int, update music.PlaylistCreate) (*music.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID int) (*apiclient.Message, error)
}

// PlaylistManager lists every playlist and creates, edits and deletes them. The form is
// shared by create and edit; Edit switches it to edit mode.
type PlaylistManager struct {
	api  playlistAPI
	bus  signaler
	list *manager.List[music.Playlist]
	form *manager.Form[PlaylistForm]

	mu        sync.Mutex
	editing   mo.Option[int]
	deleteErr string
}

func NewPlaylistManager(api playlistAPI, bus signaler, logger *logrus.Logger) *PlaylistManager {
	m := &PlaylistManager{
		api:  api,
		bus:  bus,
		form: manager.NewForm(PlaylistForm{}, checkForm[PlaylistForm]),
	}
	m.list = manager.NewList(playlistManagerName, "Failed to load playlists",
		func(ctx context.Context, _ int) ([]music.Playlist, error) {
			return api.ListPlaylists(ctx)
		}, logger)
	bus.Subscribe(playlistManagerName, m.Load, refresh.Playlists, refresh.Songs)
	return m
}

func (m *PlaylistManager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

func (m *PlaylistManager) Playlists() []music.Playlist {
	return m.list.Items()
}

// Playlist looks up a loaded playlist by id.
func (m *PlaylistManager) Playlist(playlistID int) (music.Playlist, bool) {
	return lo.Find(m.list.Items(), func(p music.Playlist) bool { return p.ID == playlistID })
}

func (m *PlaylistManager) Status() manager.Status {
	return m.list.Status()
}

func (m *PlaylistManager) Error() string {
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

func (m *PlaylistManager) Form() *manager.Form[PlaylistForm] {
	return m.form
}

// OpenCreate opens an empty form in create mode.
func (m *PlaylistManager) OpenCreate() {
	m.mu.Lock()
	m.editing = mo.None[int]()
	m.mu.Unlock()
	m.form.Open(PlaylistForm{})
}

// Edit opens the form pre-filled with playlist.
func (m *PlaylistManager) Edit(playlist music.Playlist) {
	m.mu.Lock()
	m.editing = mo.Some(playlist.ID)
	m.mu.Unlock()
	m.form.Open(PlaylistForm{Name: playlist.Name, Description: playlist.DescriptionText()})
}

// Cancel closes the form and leaves edit mode.
func (m *PlaylistManager) Cancel() {
	m.mu.Lock()
	m.editing = mo.None[int]()
	m.mu.Unlock()
	m.form.Close()
}

// Editing is the id of the playlist being edited, if any.
func (m *PlaylistManager) Editing() mo.Option[int] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editing
}

func (m *PlaylistManager) CanSubmit() bool {
	return !m.list.Busy() && m.form.CanSubmit()
}

// Save creates a playlist, or updates the one being edited.
func (m *PlaylistManager) Save(ctx context.Context) (*music.Playlist, error) {
	editing := m.Editing()
	operation := "Create"
	if editing.IsPresent() {
		operation = "Update"
	}

	var saved *music.Playlist
	err := manager.Submit(ctx, m.list, m.form, manager.Submission[music.Playlist, PlaylistForm]{
		Operation: operation,
		Fallback:  "Failed to save playlist",
		Call: func(ctx context.Context, v PlaylistForm) error {
			body := music.NewPlaylistCreate(strings.TrimSpace(v.Name), strings.TrimSpace(v.Description))
			var err error
			if id, ok := editing.Get(); ok {
				saved, err = m.api.UpdatePlaylist(ctx, id, body)
			} else {
				saved, err = m.api.CreatePlaylist(ctx, body)
			}
			return err
		},
		Signal: func(ctx context.Context) error {
			m.mu.Lock()
			m.editing = mo.None[int]()
			m.mu.Unlock()
			return m.bus.Signal(ctx, playlistManagerName, refresh.Playlists)
		},
	})
	return saved, err
}

// Delete removes a playlist and its songs.
func (m *PlaylistManager) Delete(ctx context.Context, playlistID int) error {
	m.setDeleteErr("")
	var callErr error
	err := m.list.Mutate(ctx, "Delete", func(ctx context.Context) error {
		_, callErr = m.api.DeletePlaylist(ctx, playlistID)
		return callErr
	})
	if errors.Is(err, manager.ErrBusy) {
		return err
	}
	if callErr != nil {
		m.setDeleteErr(apiclient.MessageOf(callErr, "Failed to delete playlist"))
		return callErr
	}
	return errors.Join(err, m.bus.Signal(ctx, playlistManagerName, refresh.Playlists))
}

func (m *PlaylistManager) setDeleteErr(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = msg
}
