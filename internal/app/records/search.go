package records

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"recordshop/internal/store"
)

// Filter parameter names accepted by Search.
const (
	ParamAlbumName   = "albumName"
	ParamArtist      = "artist"
	ParamReleaseYear = "releaseYear"
	ParamGenre       = "genre"
)

// IsFilterParam reports whether name is a recognized filter parameter.
func IsFilterParam(name string) bool {
	switch name {
	case ParamAlbumName, ParamArtist, ParamReleaseYear, ParamGenre:
		return true
	}
	return false
}

// ParseReleaseYear converts a raw releaseYear parameter.
func ParseReleaseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidf("Provided argument '%s' is not a valid year!", raw)
	}
	return year, nil
}

// ParseGenreParam converts a raw genre parameter, accepting aliases.
func ParseGenreParam(raw string) (store.Genre, error) {
	genre, err := store.ParseGenre(raw)
	if err != nil {
		return store.GenreUnknown, invalidf("Provided argument '%s' is not a valid genre!", raw)
	}
	return genre, nil
}

// criteria holds parsed filter values for a multi-parameter search.
type criteria struct {
	albumName   string
	artist      string
	releaseYear int
	genre       store.Genre
}

// filter is one link of the precedence chain: a store query for the first
// pass and a predicate for narrowing.
type filter struct {
	name  string
	query func(ctx context.Context, s Store, c criteria) ([]store.Album, error)
	match func(a store.Album, c criteria) bool
}

var precedence = []filter{
	{
		name: ParamAlbumName,
		query: func(ctx context.Context, s Store, c criteria) ([]store.Album, error) {
			return s.AlbumsByName(ctx, c.albumName)
		},
		match: func(a store.Album, c criteria) bool { return a.AlbumName == c.albumName },
	},
	{
		name: ParamArtist,
		query: func(ctx context.Context, s Store, c criteria) ([]store.Album, error) {
			return s.AlbumsByArtist(ctx, c.artist)
		},
		match: func(a store.Album, c criteria) bool { return a.Artist == c.artist },
	},
	{
		name: ParamReleaseYear,
		query: func(ctx context.Context, s Store, c criteria) ([]store.Album, error) {
			return s.AlbumsByReleaseYear(ctx, c.releaseYear)
		},
		match: func(a store.Album, c criteria) bool { return a.ReleaseYear == c.releaseYear },
	},
	{
		name: ParamGenre,
		query: func(ctx context.Context, s Store, c criteria) ([]store.Album, error) {
			return s.AlbumsByGenre(ctx, c.genre)
		},
		match: func(a store.Album, c criteria) bool { return a.Genre == c.genre },
	},
}

const noMatches = "No matches found in database for given filters."

func (s *service) Search(ctx context.Context, params map[string]string) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkParams(params); err != nil {
		return nil, err
	}

	c, err := parseCriteria(params)
	if err != nil {
		return nil, err
	}

	var (
		primary *filter
		rest    []filter
	)
	for i := range precedence {
		if _, ok := params[precedence[i].name]; !ok {
			continue
		}
		if primary == nil {
			primary = &precedence[i]
			continue
		}
		rest = append(rest, precedence[i])
	}
	if primary == nil {
		return nil, invalidf("No parameters provided for search with parameters!")
	}

	albums, err := primary.query(ctx, s.store, c)
	if err != nil {
		return nil, err
	}

	var matches []store.Album
	for _, a := range albums {
		keep := true
		for _, f := range rest {
			if !f.match(a, c) {
				keep = false
				break
			}
		}
		if keep {
			matches = append(matches, a)
		}
	}

	if len(matches) == 0 {
		return nil, notFoundf(noMatches)
	}
	return matches, nil
}

func checkParams(params map[string]string) error {
	var unknown []string
	for name := range params {
		if !IsFilterParam(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	joined := strings.Join(unknown, ", ")
	if len(unknown) == 1 {
		return invalidf("Given parameter '%s' is not valid on this endpoint!", joined)
	}
	return invalidf("Given parameters '%s' are not valid on this endpoint!", joined)
}

func parseCriteria(params map[string]string) (criteria, error) {
	var c criteria
	for _, f := range precedence {
		if raw, ok := params[f.name]; ok && strings.TrimSpace(raw) == "" {
			return criteria{}, invalidf("A value must be provided for parameter '%s'!", f.name)
		}
	}

	if v, ok := params[ParamAlbumName]; ok {
		c.albumName = v
	}
	if v, ok := params[ParamArtist]; ok {
		c.artist = v
	}
	if v, ok := params[ParamReleaseYear]; ok {
		year, err := ParseReleaseYear(v)
		if err != nil {
			return criteria{}, err
		}
		if year == 0 {
			return criteria{}, invalidf("A year must be provided when searching albums by release year!")
		}
		c.releaseYear = year
	}
	if v, ok := params[ParamGenre]; ok {
		genre, err := ParseGenreParam(v)
		if err != nil {
			return criteria{}, err
		}
		c.genre = genre
	}
	return c, nil
}
