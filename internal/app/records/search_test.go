package records

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recordshop/internal/store"
)

func searchFixture(t *testing.T) Service {
	t.Helper()
	svc, _ := newTestService(t,
		store.Album{AlbumName: "The Test pt 1", Artist: "Test", ReleaseYear: 2024, Genre: store.GenrePop},
		store.Album{AlbumName: "The Test pt 2", Artist: "Test", ReleaseYear: 2023, Genre: store.GenreRock},
		store.Album{AlbumName: "The Test pt 3", Artist: "Test", ReleaseYear: 2024, Genre: store.GenreHipHop},
		store.Album{AlbumName: "Other", Artist: "Someone Else", ReleaseYear: 2024, Genre: store.GenrePop},
		store.Album{AlbumName: "The Test pt 1", Artist: "Tribute Band", ReleaseYear: 2020, Genre: store.GenrePop},
	)
	return svc
}

func albumIDs(albums []store.Album) []int64 {
	ids := make([]int64, 0, len(albums))
	for _, a := range albums {
		ids = append(ids, a.ID)
	}
	return ids
}

func sameIDs(got []store.Album, want ...int64) bool {
	ids := albumIDs(got)
	if len(ids) != len(want) {
		return false
	}
	for i := range ids {
		if ids[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSearchIntersectsFilters(t *testing.T) {
	svc := searchFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params map[string]string
		want   []int64
	}{
		{
			name:   "artist and year",
			params: map[string]string{"artist": "Test", "releaseYear": "2024"},
			want:   []int64{1, 3},
		},
		{
			name:   "year and genre",
			params: map[string]string{"releaseYear": "2024", "genre": "pop"},
			want:   []int64{1, 4},
		},
		{
			name:   "name narrowed by artist",
			params: map[string]string{"albumName": "The Test pt 1", "artist": "Tribute Band"},
			want:   []int64{5},
		},
		{
			name:   "genre alias",
			params: map[string]string{"artist": "Test", "genre": "RAP"},
			want:   []int64{3},
		},
		{
			name:   "all four",
			params: map[string]string{"albumName": "The Test pt 1", "artist": "Test", "releaseYear": "2024", "genre": "Pop"},
			want:   []int64{1},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tc.params)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if !sameIDs(got, tc.want...) {
				t.Fatalf("expected ids %v, got %v", tc.want, albumIDs(got))
			}
		})
	}
}

func TestSearchUnknownParams(t *testing.T) {
	svc := searchFixture(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, map[string]string{"bogus": "x"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err.Error() != "Given parameter 'bogus' is not valid on this endpoint!" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	_, err = svc.Search(ctx, map[string]string{"zeta": "1", "artist": "Test", "alpha": "2"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err.Error() != "Given parameters 'alpha, zeta' are not valid on this endpoint!" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSearchRejectsBadValues(t *testing.T) {
	svc := searchFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params map[string]string
	}{
		{name: "no params", params: map[string]string{}},
		{name: "non-numeric year", params: map[string]string{"artist": "Test", "releaseYear": "twenty"}},
		{name: "unknown genre", params: map[string]string{"artist": "Test", "genre": "polka"}},
		{name: "blank value", params: map[string]string{"artist": "", "releaseYear": "2024"}},
		{name: "zero year", params: map[string]string{"artist": "Test", "releaseYear": "0"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Search(ctx, tc.params); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSearchNoMatches(t *testing.T) {
	svc := searchFixture(t)
	ctx := context.Background()

	for _, params := range []map[string]string{
		{"artist": "Nobody", "releaseYear": "2024"},
		{"artist": "Test", "releaseYear": "1999"},
	} {
		_, err := svc.Search(ctx, params)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("%v: expected ErrNotFound, got %v", params, err)
		}
		if !strings.Contains(err.Error(), "No matches found") {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
}

func TestParseGenreParamAliases(t *testing.T) {
	for _, raw := range []string{"hip hop", "Hip-Hop", "RAP", "hiphop"} {
		g, err := ParseGenreParam(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if g != store.GenreHipHop {
			t.Fatalf("%q resolved to %v", raw, g)
		}
	}
	if _, err := ParseGenreParam("disco"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
