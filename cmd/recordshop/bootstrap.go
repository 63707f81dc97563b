package main

import (
	"context"
	"fmt"

	"recordshop/internal/logging"
	"recordshop/internal/store"
)

type albumSeeder interface {
	ListAlbums(ctx context.Context) ([]store.Album, error)
	InsertAlbum(ctx context.Context, album store.Album) (store.Album, error)
}

var demoAlbums = []store.Album{
	{AlbumName: "Thriller", Artist: "Michael Jackson", ReleaseYear: 1982, Genre: store.GenrePop},
	{AlbumName: "Abbey Road", Artist: "The Beatles", ReleaseYear: 1969, Genre: store.GenreRock},
	{AlbumName: "Illmatic", Artist: "Nas", ReleaseYear: 1994, Genre: store.GenreHipHop},
	{AlbumName: "Stillmatic", Artist: "Nas", ReleaseYear: 2001, Genre: store.GenreHipHop},
	{AlbumName: "Songs in the Key of Life", Artist: "Stevie Wonder", ReleaseYear: 1976, Genre: store.GenreRnB},
	{AlbumName: "At Folsom Prison", Artist: "Johnny Cash", ReleaseYear: 1968, Genre: store.GenreCountry},
	{AlbumName: "Kind of Blue", Artist: "Miles Davis", ReleaseYear: 1959, Genre: store.GenreJazz},
	{AlbumName: "Master of Puppets", Artist: "Metallica", ReleaseYear: 1986, Genre: store.GenreMetal},
	{AlbumName: "The Four Seasons", Artist: "Antonio Vivaldi", ReleaseYear: 1725, Genre: store.GenreClassical},
}

// seedDemoAlbums inserts the demo catalogue when the store holds no albums.
func seedDemoAlbums(ctx context.Context, s albumSeeder) (int, error) {
	existing, err := s.ListAlbums(ctx)
	if err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	if len(existing) > 0 {
		logging.WithContext(ctx).Info().Int("albums", len(existing)).Msg("catalogue not empty, skipping demo data")
		return 0, nil
	}

	for _, album := range demoAlbums {
		if _, err := s.InsertAlbum(ctx, album); err != nil {
			return 0, fmt.Errorf("seed album %q: %w", album.AlbumName, err)
		}
	}

	logging.WithContext(ctx).Info().Int("albums", len(demoAlbums)).Msg("seeded demo albums")
	return len(demoAlbums), nil
}
