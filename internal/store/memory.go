package store

import (
	"context"
	"sort"
	"sync"
)

// Memory stores albums in-memory for local runs and tests.
type Memory struct {
	mu     sync.RWMutex
	albums map[int64]Album
	nextID int64
}

// NewMemory returns an empty in-memory album store.
func NewMemory() *Memory {
	return &Memory{
		albums: make(map[int64]Album),
		nextID: 1,
	}
}

// Ping always succeeds; the memory store has no connection to lose.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// InsertAlbum stores the album under the next free id.
func (m *Memory) InsertAlbum(_ context.Context, album Album) (Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	album.ID = m.nextID
	m.nextID++
	m.albums[album.ID] = album
	return album, nil
}

// AlbumByID returns an album by id.
func (m *Memory) AlbumByID(_ context.Context, id int64) (Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	album, ok := m.albums[id]
	if !ok {
		return Album{}, ErrAlbumNotFound
	}
	return album, nil
}

// AlbumExists reports whether an album with the id is stored.
func (m *Memory) AlbumExists(_ context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.albums[id]
	return ok, nil
}

// UpdateAlbum replaces an existing album.
func (m *Memory) UpdateAlbum(_ context.Context, album Album) (Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.albums[album.ID]; !ok {
		return Album{}, ErrAlbumNotFound
	}
	m.albums[album.ID] = album
	return album, nil
}

// DeleteAlbum removes an album.
func (m *Memory) DeleteAlbum(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.albums[id]; !ok {
		return ErrAlbumNotFound
	}
	delete(m.albums, id)
	return nil
}

// ListAlbums returns every album ordered by id.
func (m *Memory) ListAlbums(_ context.Context) ([]Album, error) {
	return m.filter(func(Album) bool { return true }), nil
}

// AlbumsByArtist returns albums whose artist matches exactly.
func (m *Memory) AlbumsByArtist(_ context.Context, artist string) ([]Album, error) {
	return m.filter(func(a Album) bool { return a.Artist == artist }), nil
}

// AlbumsByReleaseYear returns albums released in year.
func (m *Memory) AlbumsByReleaseYear(_ context.Context, year int) ([]Album, error) {
	return m.filter(func(a Album) bool { return a.ReleaseYear == year }), nil
}

// AlbumsByGenre returns albums filed under genre.
func (m *Memory) AlbumsByGenre(_ context.Context, genre Genre) ([]Album, error) {
	return m.filter(func(a Album) bool { return a.Genre == genre }), nil
}

// AlbumsByName returns albums whose name matches exactly.
func (m *Memory) AlbumsByName(_ context.Context, name string) ([]Album, error) {
	return m.filter(func(a Album) bool { return a.AlbumName == name }), nil
}

func (m *Memory) filter(keep func(Album) bool) []Album {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Album
	for _, album := range m.albums {
		if keep(album) {
			result = append(result, album)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
