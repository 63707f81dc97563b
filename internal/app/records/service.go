package records

import (
	"context"
	"errors"
	"strings"

	"recordshop/internal/logging"
	"recordshop/internal/store"
)

// Store captures the persistence needs for record workflows.
type Store interface {
	InsertAlbum(ctx context.Context, album store.Album) (store.Album, error)
	AlbumByID(ctx context.Context, id int64) (store.Album, error)
	AlbumExists(ctx context.Context, id int64) (bool, error)
	UpdateAlbum(ctx context.Context, album store.Album) (store.Album, error)
	DeleteAlbum(ctx context.Context, id int64) error
	ListAlbums(ctx context.Context) ([]store.Album, error)
	AlbumsByArtist(ctx context.Context, artist string) ([]store.Album, error)
	AlbumsByReleaseYear(ctx context.Context, year int) ([]store.Album, error)
	AlbumsByGenre(ctx context.Context, genre store.Genre) ([]store.Album, error)
	AlbumsByName(ctx context.Context, name string) ([]store.Album, error)
}

// Service validates record requests and resolves filter queries.
type Service interface {
	Create(ctx context.Context, payload *Patch) (store.Album, error)
	ReplaceOrCreate(ctx context.Context, payload *Patch, id *int64) (album store.Album, created bool, err error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Album, error)
	Get(ctx context.Context, id int64) (store.Album, error)
	ByArtist(ctx context.Context, artist string) ([]store.Album, error)
	ByReleaseYear(ctx context.Context, year int) ([]store.Album, error)
	ByGenre(ctx context.Context, genre store.Genre) ([]store.Album, error)
	ByName(ctx context.Context, name string) ([]store.Album, error)
	Search(ctx context.Context, params map[string]string) ([]store.Album, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, payload *Patch) (store.Album, error) {
	if err := ctx.Err(); err != nil {
		return store.Album{}, err
	}
	if payload == nil || !payload.Complete() {
		return store.Album{}, invalidf("You must provide an album with all fields except id filled!")
	}
	if payload.ID != nil {
		return store.Album{}, invalidf("You must not provide an id when posting new albums! The id is assigned by the database.")
	}
	return s.insert(ctx, *payload)
}

func (s *service) ReplaceOrCreate(ctx context.Context, payload *Patch, id *int64) (store.Album, bool, error) {
	if err := ctx.Err(); err != nil {
		return store.Album{}, false, err
	}
	if payload == nil {
		return store.Album{}, false, invalidf("You must provide an album when making this request!")
	}

	if id == nil {
		if !payload.Complete() {
			return store.Album{}, false, invalidf("You must provide an album with all fields except id filled when no id is given on the endpoint!")
		}
		if payload.ID != nil {
			return store.Album{}, false, invalidf("You must not provide an id in the album when no id is given on the endpoint! The id is assigned by the database.")
		}
		created, err := s.insert(ctx, *payload)
		if err != nil {
			return store.Album{}, false, err
		}
		return created, true, nil
	}

	exists, err := s.store.AlbumExists(ctx, *id)
	if err != nil {
		return store.Album{}, false, err
	}
	if !exists {
		return store.Album{}, false, invalidf("There is no album matching id '%d' in the database.", *id)
	}
	if payload.ID != nil && *payload.ID != *id {
		return store.Album{}, false, invalidf(
			"When providing an id both in the body and on the endpoint, they must match! Got '%d' in the body and '%d' on the endpoint.",
			*payload.ID, *id)
	}
	if blank(payload.AlbumName) || blank(payload.Artist) {
		return store.Album{}, false, invalidf("albumName and artist must not be blank!")
	}
	if payload.Genre != nil && !payload.Genre.Valid() {
		return store.Album{}, false, invalidf("Provided genre is not a valid genre!")
	}

	existing, err := s.store.AlbumByID(ctx, *id)
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			return store.Album{}, false, invalidf("There is no album matching id '%d' in the database.", *id)
		}
		return store.Album{}, false, err
	}

	updated, err := s.store.UpdateAlbum(ctx, Merge(existing, *payload))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlbumNotFound):
			return store.Album{}, false, invalidf("There is no album matching id '%d' in the database.", *id)
		case errors.Is(err, store.ErrInvalidAlbum):
			return store.Album{}, false, invalidf("%v", err)
		}
		return store.Album{}, false, err
	}

	logging.WithContext(ctx).Info().Int64("album_id", updated.ID).Msg("album updated")
	return updated, false, nil
}

func (s *service) insert(ctx context.Context, payload Patch) (store.Album, error) {
	created, err := s.store.InsertAlbum(ctx, payload.Album())
	if err != nil {
		if errors.Is(err, store.ErrInvalidAlbum) {
			return store.Album{}, invalidf("%v", err)
		}
		return store.Album{}, err
	}

	logging.WithContext(ctx).Info().Int64("album_id", created.ID).Msg("album created")
	return created, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			return notFoundf("No album found at id '%d' in the database.", id)
		}
		return err
	}

	logging.WithContext(ctx).Info().Int64("album_id", id).Msg("album deleted")
	return nil
}

func (s *service) List(ctx context.Context) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, notFoundf("There are no albums in the database!")
	}
	return albums, nil
}

func (s *service) Get(ctx context.Context, id int64) (store.Album, error) {
	if err := ctx.Err(); err != nil {
		return store.Album{}, err
	}
	album, err := s.store.AlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			return store.Album{}, notFoundf("There is no album with id '%d' in the database!", id)
		}
		return store.Album{}, err
	}
	return album, nil
}

func (s *service) ByArtist(ctx context.Context, artist string) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(artist) == "" {
		return nil, invalidf("An artist must be provided when searching albums by artist!")
	}
	albums, err := s.store.AlbumsByArtist(ctx, artist)
	return requireMatches(albums, err, "No albums found by artist '%s' in the database!", artist)
}

func (s *service) ByReleaseYear(ctx context.Context, year int) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if year == 0 {
		return nil, invalidf("A year must be provided when searching albums by release year!")
	}
	albums, err := s.store.AlbumsByReleaseYear(ctx, year)
	return requireMatches(albums, err, "No albums found in the database released in year '%d'!", year)
}

func (s *service) ByGenre(ctx context.Context, genre store.Genre) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !genre.Valid() {
		return nil, invalidf("A genre must be provided when searching albums by genre!")
	}
	albums, err := s.store.AlbumsByGenre(ctx, genre)
	return requireMatches(albums, err, "No albums found with genre '%s' in the database!", genre)
}

func (s *service) ByName(ctx context.Context, name string) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("A name must be provided when searching albums by name!")
	}
	albums, err := s.store.AlbumsByName(ctx, name)
	return requireMatches(albums, err, "No album found with name '%s' in the database!", name)
}

func requireMatches(albums []store.Album, err error, format string, args ...any) ([]store.Album, error) {
	if err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, notFoundf(format, args...)
	}
	return albums, nil
}
