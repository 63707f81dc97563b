package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Album models a record in the catalogue.
type Album struct {
	ID          int64  `json:"id"`
	AlbumName   string `json:"albumName"`
	Artist      string `json:"artist"`
	ReleaseYear int    `json:"releaseYear"`
	Genre       Genre  `json:"genre"`
}

const selectAlbumColumns = `
		SELECT id, album_name, artist, release_year, genre
		FROM albums
	`

// InsertAlbum persists a new album and returns it with the assigned id.
func (s *Store) InsertAlbum(ctx context.Context, album Album) (Album, error) {
	var id int64
	err := s.queryRow(ctx, `
		INSERT INTO albums (album_name, artist, release_year, genre)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, album.AlbumName, album.Artist, album.ReleaseYear, album.Genre).Scan(&id)
	if err != nil {
		if isConstraintViolation(err) {
			return Album{}, fmt.Errorf("%w: %v", ErrInvalidAlbum, err)
		}
		return Album{}, fmt.Errorf("insert album: %w", err)
	}

	album.ID = id
	return album, nil
}

// AlbumByID returns a single album by its identifier.
func (s *Store) AlbumByID(ctx context.Context, id int64) (Album, error) {
	row := s.queryRow(ctx, selectAlbumColumns+`WHERE id = $1`, id)

	album, err := scanAlbumRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Album{}, ErrAlbumNotFound
		}
		return Album{}, err
	}
	return album, nil
}

// AlbumExists reports whether an album with the id is stored.
func (s *Store) AlbumExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.queryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM albums WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup album: %w", err)
	}
	return exists, nil
}

// UpdateAlbum overwrites every non-id column of the stored album.
func (s *Store) UpdateAlbum(ctx context.Context, album Album) (Album, error) {
	res, err := s.exec(ctx, `
		UPDATE albums
		SET album_name = $1, artist = $2, release_year = $3, genre = $4
		WHERE id = $5
	`, album.AlbumName, album.Artist, album.ReleaseYear, album.Genre, album.ID)
	if err != nil {
		if isConstraintViolation(err) {
			return Album{}, fmt.Errorf("%w: %v", ErrInvalidAlbum, err)
		}
		return Album{}, fmt.Errorf("update album: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Album{}, fmt.Errorf("update album: %w", err)
	}
	if n == 0 {
		return Album{}, ErrAlbumNotFound
	}
	return album, nil
}

// DeleteAlbum removes the album with the given id.
func (s *Store) DeleteAlbum(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `
		DELETE FROM albums
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// ListAlbums returns every album ordered by id.
func (s *Store) ListAlbums(ctx context.Context) ([]Album, error) {
	return s.selectAlbums(ctx, selectAlbumColumns+`ORDER BY id ASC`)
}

// AlbumsByArtist returns albums whose artist matches exactly.
func (s *Store) AlbumsByArtist(ctx context.Context, artist string) ([]Album, error) {
	return s.selectAlbums(ctx, selectAlbumColumns+`WHERE artist = $1 ORDER BY id ASC`, artist)
}

// AlbumsByReleaseYear returns albums released in year.
func (s *Store) AlbumsByReleaseYear(ctx context.Context, year int) ([]Album, error) {
	return s.selectAlbums(ctx, selectAlbumColumns+`WHERE release_year = $1 ORDER BY id ASC`, year)
}

// AlbumsByGenre returns albums filed under genre.
func (s *Store) AlbumsByGenre(ctx context.Context, genre Genre) ([]Album, error) {
	return s.selectAlbums(ctx, selectAlbumColumns+`WHERE genre = $1 ORDER BY id ASC`, genre)
}

// AlbumsByName returns albums whose name matches exactly.
func (s *Store) AlbumsByName(ctx context.Context, name string) ([]Album, error) {
	return s.selectAlbums(ctx, selectAlbumColumns+`WHERE album_name = $1 ORDER BY id ASC`, name)
}

func (s *Store) selectAlbums(ctx context.Context, query string, args ...any) ([]Album, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select albums: %w", err)
	}
	defer rows.Close()

	albums, err := scanAlbumRows(rows)
	if err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}

	return albums, nil
}

type albumScanner interface {
	Scan(dest ...any) error
}

func scanAlbumRow(scanner albumScanner) (Album, error) {
	var a Album
	if err := scanner.Scan(&a.ID, &a.AlbumName, &a.Artist, &a.ReleaseYear, &a.Genre); err != nil {
		return Album{}, fmt.Errorf("scan album: %w", err)
	}
	return a, nil
}

func scanAlbumRows(rows *sql.Rows) ([]Album, error) {
	var albums []Album

	for rows.Next() {
		a, err := scanAlbumRow(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}

	return albums, nil
}
