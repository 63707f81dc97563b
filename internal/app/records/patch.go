package records

import (
	"strings"

	"recordshop/internal/store"
)

// Patch is a partial album. Nil fields are missing on creation and left
// unchanged on update.
type Patch struct {
	ID          *int64       `json:"id"`
	AlbumName   *string      `json:"albumName"`
	Artist      *string      `json:"artist"`
	ReleaseYear *int         `json:"releaseYear"`
	Genre       *store.Genre `json:"genre"`
}

// Complete reports whether every non-id field is set and non-blank.
func (p Patch) Complete() bool {
	return present(p.AlbumName) && present(p.Artist) && p.ReleaseYear != nil && p.Genre != nil && p.Genre.Valid()
}

// Album converts a complete patch into an album without an id.
func (p Patch) Album() store.Album {
	return store.Album{
		AlbumName:   *p.AlbumName,
		Artist:      *p.Artist,
		ReleaseYear: *p.ReleaseYear,
		Genre:       *p.Genre,
	}
}

// Merge overwrites the fields of existing that are set in patch. The id is
// never changed.
func Merge(existing store.Album, patch Patch) store.Album {
	merged := existing
	if patch.AlbumName != nil {
		merged.AlbumName = *patch.AlbumName
	}
	if patch.Artist != nil {
		merged.Artist = *patch.Artist
	}
	if patch.ReleaseYear != nil {
		merged.ReleaseYear = *patch.ReleaseYear
	}
	if patch.Genre != nil {
		merged.Genre = *patch.Genre
	}
	return merged
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}
