package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGenre indicates a value that does not name a known genre.
var ErrInvalidGenre = errors.New("invalid genre")

// Genre is the closed set of genres an album may be filed under.
type Genre int

const (
	GenreUnknown Genre = iota
	GenrePop
	GenreRock
	GenreHipHop
	GenreRnB
	GenreCountry
	GenreJazz
	GenreMetal
	GenreClassical
)

var genreNames = map[Genre]string{
	GenrePop:       "Pop",
	GenreRock:      "Rock",
	GenreHipHop:    "Hip-Hop",
	GenreRnB:       "R&B",
	GenreCountry:   "Country",
	GenreJazz:      "Jazz",
	GenreMetal:     "Metal",
	GenreClassical: "Classical",
}

// genreAliases maps lower-cased inputs to genres. Canonical names and the
// upper-case constant spellings (POP, HIPHOP, RNB) are included.
var genreAliases = map[string]Genre{
	"pop":              GenrePop,
	"rock":             GenreRock,
	"hip-hop":          GenreHipHop,
	"hiphop":           GenreHipHop,
	"hip hop":          GenreHipHop,
	"rap":              GenreHipHop,
	"r&b":              GenreRnB,
	"rnb":              GenreRnB,
	"rhythm and blues": GenreRnB,
	"r'n'b":            GenreRnB,
	"country":          GenreCountry,
	"jazz":             GenreJazz,
	"metal":            GenreMetal,
	"classical":        GenreClassical,
}

// Genres lists every valid genre in declaration order.
func Genres() []Genre {
	return []Genre{GenrePop, GenreRock, GenreHipHop, GenreRnB, GenreCountry, GenreJazz, GenreMetal, GenreClassical}
}

// ParseGenre resolves s case-insensitively against genre names and aliases.
func ParseGenre(s string) (Genre, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if g, ok := genreAliases[key]; ok {
		return g, nil
	}
	return GenreUnknown, fmt.Errorf("%w: '%s' is not a valid genre", ErrInvalidGenre, s)
}

// String returns the display name of the genre.
func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether g is one of the declared genres.
func (g Genre) Valid() bool {
	_, ok := genreNames[g]
	return ok
}

func (g Genre) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGenre, int(g))
	}
	return json.Marshal(g.String())
}

func (g *Genre) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: genre must be a string", ErrInvalidGenre)
	}
	parsed, err := ParseGenre(raw)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Value stores the genre as its display name.
func (g Genre) Value() (driver.Value, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGenre, int(g))
	}
	return g.String(), nil
}

// Scan reads a genre column written by Value.
func (g *Genre) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrInvalidGenre, src)
	}
	parsed, err := ParseGenre(raw)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
