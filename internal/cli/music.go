package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/views/playlists"
)

func newMusicCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "music",
		Short: "Playlists and songs.",
	}
	cmd.AddCommand(newPlaylistsCommand(app))
	cmd.AddCommand(newSongsCommand(app))
	cmd.AddCommand(newHealthCommand("Check the music service.", func(ctx context.Context) (string, error) {
		msg, err := app.musicClient().Health(ctx)
		if err != nil {
			return "", err
		}
		return msg.Message, nil
	}, app))
	return cmd
}

// -- playlists --

func newPlaylistsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List, create, update and delete playlists.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every playlist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.playlistShell()
			if err := shell.Mount(cmd.Context()); err != nil {
				return fail(app.errOut, shell.Playlists.Error(), err)
			}
			renderPlaylists(app, shell.Playlists.Playlists())
			return nil
		},
	})

	var createForm playlists.PlaylistForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a playlist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.playlistShell()
			m := shell.Playlists
			m.OpenCreate()
			m.Form().Set(createForm)
			saved, err := m.Save(cmd.Context())
			if err != nil {
				return fail(app.errOut, submitMessage(err, m.Error()), err)
			}
			success(app.out, "Created playlist %d: %s", saved.ID, saved.Name)
			return nil
		},
	}
	create.Flags().StringVar(&createForm.Name, "name", "", "playlist name")
	create.Flags().StringVar(&createForm.Description, "description", "", "optional description")
	cmd.AddCommand(create)

	var updateID int
	var name, description string
	update := &cobra.Command{
		Use:   "update",
		Short: "Rename or redescribe a playlist. Unset flags keep their current value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.playlistShell()
			m := shell.Playlists
			if err := shell.Mount(cmd.Context()); err != nil {
				return fail(app.errOut, m.Error(), err)
			}
			playlist, ok := m.Playlist(updateID)
			if !ok {
				return fail(app.errOut, "Playlist not found", fmt.Errorf("playlist %d not loaded", updateID))
			}
			m.Edit(playlist)
			m.Form().Update(func(v *playlists.PlaylistForm) {
				if cmd.Flags().Changed("name") {
					v.Name = name
				}
				if cmd.Flags().Changed("description") {
					v.Description = description
				}
			})
			saved, err := m.Save(cmd.Context())
			if err != nil {
				return fail(app.errOut, submitMessage(err, m.Error()), err)
			}
			success(app.out, "Updated playlist %d: %s", saved.ID, saved.Name)
			return nil
		},
	}
	update.Flags().IntVar(&updateID, "id", 0, "playlist id")
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&description, "description", "", "new description")
	_ = update.MarkFlagRequired("id")
	cmd.AddCommand(update)

	var deleteID int
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a playlist and its songs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.playlistShell()
			if err := shell.DeletePlaylist(cmd.Context(), deleteID); err != nil {
				return fail(app.errOut, submitMessage(err, shell.Playlists.Error()), err)
			}
			success(app.out, "Deleted playlist %d", deleteID)
			return nil
		},
	}
	del.Flags().IntVar(&deleteID, "id", 0, "playlist id")
	_ = del.MarkFlagRequired("id")
	cmd.AddCommand(del)

	return cmd
}

func renderPlaylists(app *App, items []music.Playlist) {
	if len(items) == 0 {
		empty(app.out, "playlists")
		return
	}
	t := newTable(app.out, "ID", "NAME", "SONGS", "DURATION", "DESCRIPTION")
	for _, p := range items {
		t.row(
			strconv.Itoa(p.ID),
			p.Name,
			playlists.SongCountLabel(len(p.Songs)),
			playlists.FormatDuration(playlists.TotalDuration(p.Songs)),
			p.DescriptionText(),
		)
	}
	t.flush()
	stat(app.out, "Playlists", strconv.Itoa(len(items)))
}

// -- songs --

func newSongsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List, add and delete a playlist's songs.",
	}

	selectPlaylist := func(ctx context.Context, playlistID int) (*playlists.Shell, error) {
		shell := app.playlistShell()
		if err := shell.Mount(ctx); err != nil {
			return nil, fail(app.errOut, shell.Playlists.Error(), err)
		}
		if err := shell.SelectPlaylistByID(ctx, playlistID); err != nil {
			if errors.Is(err, playlists.ErrNotLoaded) {
				return nil, fail(app.errOut, "Playlist not found", err)
			}
			return nil, fail(app.errOut, loadMessage(err, shell.Songs.Error()), err)
		}
		return shell, nil
	}

	var listID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the songs of a playlist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, err := selectPlaylist(cmd.Context(), listID)
			if err != nil {
				return err
			}
			selected, _ := shell.Selected().Get()
			stat(app.out, "Playlist", selected.Name)
			renderSongs(app, shell.Songs.Songs())
			return nil
		},
	}
	list.Flags().IntVar(&listID, "playlist", 0, "playlist id")
	_ = list.MarkFlagRequired("playlist")
	cmd.AddCommand(list)

	var addID, duration int
	var form playlists.SongForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a song to a playlist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, err := selectPlaylist(cmd.Context(), addID)
			if err != nil {
				return err
			}
			values := form
			if cmd.Flags().Changed("duration") {
				values.Duration = &duration
			}
			m := shell.Songs
			m.Form().Open(values)
			song, err := m.Add(cmd.Context())
			if err != nil {
				return fail(app.errOut, submitMessage(err, m.Error()), err)
			}
			success(app.out, "Added song %d: %s by %s (%s)", song.ID, song.Title, song.Artist, playlists.FormatSongDuration(song.Duration))
			return nil
		},
	}
	add.Flags().IntVar(&addID, "playlist", 0, "playlist id")
	add.Flags().StringVar(&form.Title, "title", "", "song title")
	add.Flags().StringVar(&form.Artist, "artist", "", "artist")
	add.Flags().StringVar(&form.Album, "album", "", "optional album")
	add.Flags().IntVar(&duration, "duration", 0, "optional duration in seconds")
	_ = add.MarkFlagRequired("playlist")
	cmd.AddCommand(add)

	var deletePlaylistID, songID int
	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove a song from a playlist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, err := selectPlaylist(cmd.Context(), deletePlaylistID)
			if err != nil {
				return err
			}
			if err := shell.Songs.Delete(cmd.Context(), songID); err != nil {
				return fail(app.errOut, submitMessage(err, shell.Songs.Error()), err)
			}
			success(app.out, "Deleted song %d", songID)
			return nil
		},
	}
	del.Flags().IntVar(&deletePlaylistID, "playlist", 0, "playlist id")
	del.Flags().IntVar(&songID, "id", 0, "song id")
	_ = del.MarkFlagRequired("playlist")
	_ = del.MarkFlagRequired("id")
	cmd.AddCommand(del)

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "List songs across every playlist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, err := app.musicClient().ListSongs(cmd.Context())
			if err != nil {
				return fail(app.errOut, apiclient.MessageOf(err, "Failed to load songs"), err)
			}
			renderSongs(app, songs)
			return nil
		},
	})

	return cmd
}

func renderSongs(app *App, songs []music.Song) {
	if len(songs) == 0 {
		empty(app.out, "songs")
		return
	}
	t := newTable(app.out, "ID", "PLAYLIST", "TITLE", "ARTIST", "ALBUM", "DURATION")
	for _, s := range songs {
		album := ""
		if s.Album != nil {
			album = *s.Album
		}
		t.row(strconv.Itoa(s.ID), strconv.Itoa(s.PlaylistID), s.Title, s.Artist, album, playlists.FormatSongDuration(s.Duration))
	}
	t.flush()
	stat(app.out, "Total", fmt.Sprintf("%s, %s", playlists.SongCountLabel(len(songs)), playlists.FormatDuration(playlists.TotalDuration(songs))))
}
