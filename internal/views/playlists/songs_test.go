package playlists

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/refresh"
	"github.com/carson-networks/service-console/internal/validation"
)

func TestSongManager_NoPlaylistNoCall(t *testing.T) {
	shell, backend := newShell(t)

	require.NoError(t, shell.Songs.Load(context.Background()))

	assert.Empty(t, shell.Songs.Songs())
	assert.Zero(t, backend.TotalCalls())
	_, err := shell.Songs.Add(context.Background())
	assert.ErrorIs(t, err, manager.ErrNoParent)
}

func TestSongManager_AddRequiresTitleAndArtist(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Mix", "")
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	require.NoError(t, shell.SelectPlaylistByID(ctx, id))
	shell.Songs.Form().Open(SongForm{Title: "Track"})

	assert.False(t, shell.Songs.CanSubmit())
	_, err := shell.Songs.Add(ctx)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("artist"))
	assert.Zero(t, backend.CallCount(http.MethodPost, "/playlists/1/songs/"))
}

func TestSongManager_AddAndDelete(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Mix", "")
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	require.NoError(t, shell.SelectPlaylistByID(ctx, id))
	duration := 245
	shell.Songs.Form().Open(SongForm{Title: "Track", Artist: "Band", Duration: &duration})
	playlistFetches := backend.CallCount(http.MethodGet, "/playlists/")

	song, err := shell.Songs.Add(ctx)
	require.NoError(t, err)

	require.Len(t, shell.Songs.Songs(), 1)
	assert.Equal(t, "4:05", FormatSongDuration(shell.Songs.Songs()[0].Duration))
	assert.Equal(t, 245, shell.Songs.TotalDuration())
	// the playlist list reloads for its song counts
	assert.Equal(t, playlistFetches+1, backend.CallCount(http.MethodGet, "/playlists/"))
	playlist, _ := shell.Playlists.Playlist(id)
	assert.Len(t, playlist.Songs, 1)

	require.NoError(t, shell.Songs.Delete(ctx, song.ID))
	assert.Empty(t, shell.Songs.Songs())
	assert.Equal(t, uint64(2), shell.RefreshCount())
}

func TestSongManager_DeleteFailure(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Mix", "")
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	require.NoError(t, shell.SelectPlaylistByID(ctx, id))

	err := shell.Songs.Delete(ctx, 99)

	require.Error(t, err)
	assert.Equal(t, "Song not found", shell.Songs.Error())
}

func TestSongManager_DeleteIgnoresSiblingReloadFailure(t *testing.T) {
	shell, backend := newShell(t)
	id := backend.SeedPlaylist("Mix", "")
	songID := backend.SeedSong(id, "Track", "Band", 120)
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))
	require.NoError(t, shell.SelectPlaylistByID(ctx, id))
	shell.bus.Subscribe("library", func(ctx context.Context) error {
		return errors.New("library: reload failed")
	}, refresh.Songs)

	require.NoError(t, shell.Songs.Delete(ctx, songID))

	assert.Empty(t, shell.Songs.Songs())
	assert.Empty(t, shell.Songs.Error())
	assert.Equal(t, uint64(1), shell.RefreshCount())
}

func TestSongManager_SwitchPlaylistReplacesSongs(t *testing.T) {
	shell, backend := newShell(t)
	first := backend.SeedPlaylist("One", "")
	second := backend.SeedPlaylist("Two", "")
	backend.SeedSong(first, "A", "X", 60)
	backend.SeedSong(second, "B", "Y", 61)
	backend.SeedSong(second, "C", "Z", 0)
	ctx := context.Background()
	require.NoError(t, shell.Mount(ctx))

	require.NoError(t, shell.SelectPlaylistByID(ctx, first))
	require.Len(t, shell.Songs.Songs(), 1)
	require.NoError(t, shell.SelectPlaylistByID(ctx, second))

	songs := shell.Songs.Songs()
	require.Len(t, songs, 2)
	assert.Equal(t, "B", songs[0].Title)
	assert.Equal(t, 61, shell.Songs.TotalDuration())
}

// -- formatting --

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "Unknown", FormatSongDuration(nil))
	assert.Equal(t, "Unknown", FormatDuration(0))
	assert.Equal(t, "0:09", FormatDuration(9))
	assert.Equal(t, "3:05", FormatDuration(185))
	assert.Equal(t, "61:01", FormatDuration(3661))
	assert.Equal(t, "1 song", SongCountLabel(1))
	assert.Equal(t, "0 songs", SongCountLabel(0))
}
