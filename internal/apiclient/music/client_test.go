package music

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apitest"
)

func newMusic(t *testing.T) (*Client, *apitest.MusicBackend) {
	t.Helper()
	backend := apitest.NewMusicBackend(t)
	logger, _ := test.NewNullLogger()
	api := apiclient.New(backend.URL, apiclient.WithLogger(logger), apiclient.WithTimeout(2*time.Second))
	return NewClient(api), backend
}

// -- playlists --

func TestClient_ListPlaylists_IncludesSongs(t *testing.T) {
	client, backend := newMusic(t)
	id := backend.SeedPlaylist("Road Trip", "")
	backend.SeedSong(id, "Song A", "Artist", 185)
	backend.SeedSong(id, "Song B", "Artist", 0)

	playlists, err := client.ListPlaylists(context.Background())
	require.NoError(t, err)

	require.Len(t, playlists, 1)
	assert.Nil(t, playlists[0].Description)
	assert.Equal(t, "", playlists[0].DescriptionText())
	require.Len(t, playlists[0].Songs, 2)
	require.NotNil(t, playlists[0].Songs[0].Duration)
	assert.Equal(t, 185, *playlists[0].Songs[0].Duration)
	assert.Nil(t, playlists[0].Songs[1].Duration)
}

func TestClient_CreatePlaylist_OmitsBlankDescription(t *testing.T) {
	client, backend := newMusic(t)

	created, err := client.CreatePlaylist(context.Background(), NewPlaylistCreate("Focus", ""))
	require.NoError(t, err)
	assert.Equal(t, "Focus", created.Name)
	assert.Empty(t, created.Songs)

	calls := backend.Calls(http.MethodPost, "/playlists/")
	require.Len(t, calls, 1)
	assert.False(t, calls[0].JSON("description").Exists())
}

func TestClient_UpdatePlaylist(t *testing.T) {
	client, backend := newMusic(t)
	id := backend.SeedPlaylist("Old", "old words")

	updated, err := client.UpdatePlaylist(context.Background(), id, NewPlaylistCreate("New", "new words"))
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "new words", updated.DescriptionText())
	assert.Equal(t, 1, backend.CallCount(http.MethodPut, "/playlists/1"))
}

func TestClient_DeletePlaylist(t *testing.T) {
	client, backend := newMusic(t)
	id := backend.SeedPlaylist("Gone", "")

	msg, err := client.DeletePlaylist(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Playlist deleted successfully", msg.Message)

	_, err = client.GetPlaylist(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))
	assert.Equal(t, "Playlist not found", apiclient.MessageOf(err, ""))
}

// -- songs --

func TestClient_AddSong(t *testing.T) {
	client, backend := newMusic(t)
	id := backend.SeedPlaylist("Mix", "")
	duration := 200

	song, err := client.AddSong(context.Background(), id, SongCreate{Title: "Track", Artist: "Band", Duration: &duration})
	require.NoError(t, err)
	assert.Equal(t, id, song.PlaylistID)

	songs, err := client.ListPlaylistSongs(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Track", songs[0].Title)

	calls := backend.Calls(http.MethodPost, "/playlists/1/songs/")
	require.Len(t, calls, 1)
	assert.False(t, calls[0].JSON("album").Exists())
	assert.Equal(t, int64(200), calls[0].JSON("duration").Int())
}

func TestClient_AddSong_UnknownPlaylist(t *testing.T) {
	client, _ := newMusic(t)

	_, err := client.AddSong(context.Background(), 42, SongCreate{Title: "Track", Artist: "Band"})
	require.Error(t, err)
	assert.Equal(t, "Playlist not found", apiclient.MessageOf(err, "Failed to add song"))
}

func TestClient_ListSongsAndDelete(t *testing.T) {
	client, backend := newMusic(t)
	first := backend.SeedPlaylist("One", "")
	second := backend.SeedPlaylist("Two", "")
	backend.SeedSong(first, "A", "X", 60)
	songID := backend.SeedSong(second, "B", "Y", 61)

	songs, err := client.ListSongs(context.Background())
	require.NoError(t, err)
	assert.Len(t, songs, 2)

	msg, err := client.DeleteSong(context.Background(), songID)
	require.NoError(t, err)
	assert.Equal(t, "Song deleted successfully", msg.Message)

	_, err = client.DeleteSong(context.Background(), songID)
	assert.Equal(t, "Song not found", apiclient.MessageOf(err, ""))
}

func TestClient_Health(t *testing.T) {
	client, _ := newMusic(t)

	msg, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Contains(t, msg.Message, "Music Playlist API")
}
