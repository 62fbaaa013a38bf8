package playlists

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/apitest"
	"github.com/carson-networks/service-console/internal/operator"
	"github.com/carson-networks/service-console/internal/refresh"
)

func newShell(t *testing.T) (*Shell, *apitest.MusicBackend) {
	t.Helper()
	backend := apitest.NewMusicBackend(t)
	logger, _ := test.NewNullLogger()
	delegator := operator.NewOperatorDelegator(logger, 2)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	client := music.NewClient(apiclient.New(backend.URL, apiclient.WithLogger(logger), apiclient.WithTimeout(2*time.Second)))
	return NewShell(client, refresh.NewBus(delegator, logger), logger), backend
}

// -- playlists --

func TestPlaylistManager_CreateThenList(t *testing.T) {
	shell, backend := newShell(t)
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	m := shell.Playlists

	m.OpenCreate()
	assert.False(t, m.CanSubmit())
	m.Form().Set(PlaylistForm{Name: "Focus"})
	require.True(t, m.CanSubmit())

	saved, err := m.Save(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Focus", saved.Name)
	assert.Nil(t, saved.Description)
	require.Len(t, m.Playlists(), 1)
	assert.False(t, m.Form().IsOpen())
	assert.Equal(t, 2, backend.CallCount(http.MethodGet, "/playlists/"))
	assert.Equal(t, uint64(1), shell.RefreshCount())
}

func TestPlaylistManager_EditPrefillsAndUpdates(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Old", "old words")
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	m := shell.Playlists
	playlist, ok := m.Playlist(id)
	require.True(t, ok)

	m.Edit(playlist)
	assert.Equal(t, PlaylistForm{Name: "Old", Description: "old words"}, m.Form().Values())
	assert.Equal(t, id, m.Editing().OrEmpty())

	m.Form().Update(func(v *PlaylistForm) { v.Name = "New" })
	_, err := m.Save(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.CallCount(http.MethodPut, "/playlists/1"))
	assert.Zero(t, backend.CallCount(http.MethodPost, "/playlists/"))
	assert.True(t, m.Editing().IsAbsent())
	updated, _ := m.Playlist(id)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "old words", updated.DescriptionText())
}

func TestPlaylistManager_SaveFailureKeepsForm(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Doomed", "")
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	m := shell.Playlists
	playlist, _ := m.Playlist(id)
	m.Edit(playlist)

	backend.RemovePlaylist(id)
	_, err := m.Save(ctx)

	require.Error(t, err)
	assert.Equal(t, "Playlist not found", m.Error())
	assert.True(t, m.Form().IsOpen())
	assert.Equal(t, "Doomed", m.Form().Values().Name)
}

func TestPlaylistManager_DeleteClearsSelection(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Gone", "")
	backend.SeedSong(id, "Track", "Band", 90)
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	require.NoError(t, shell.SelectPlaylistByID(ctx, id))
	require.Len(t, shell.Songs.Songs(), 1)

	require.NoError(t, shell.DeletePlaylist(ctx, id))

	assert.Empty(t, shell.Playlists.Playlists())
	assert.True(t, shell.Selected().IsAbsent())
	assert.Empty(t, shell.Songs.Songs())
	assert.Equal(t, uint64(1), shell.RefreshCount())
}

func TestPlaylistManager_DeleteOtherKeepsSelection(t *testing.T) {
	shell, backend := newShell(t)
	keep := backend.SeedPlaylist("Keep", "")
	drop := backend.SeedPlaylist("Drop", "")
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	require.NoError(t, shell.SelectPlaylistByID(ctx, keep))

	require.NoError(t, shell.DeletePlaylist(ctx, drop))

	selected, ok := shell.Selected().Get()
	require.True(t, ok)
	assert.Equal(t, keep, selected.ID)
}

func TestPlaylistManager_DeleteFailure(t *testing.T) {
	shell, _ := newShell(t)
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))

	err := shell.DeletePlaylist(ctx, 404)

	require.Error(t, err)
	assert.Equal(t, "Playlist not found", shell.Playlists.Error())
	assert.Zero(t, shell.RefreshCount())
}
