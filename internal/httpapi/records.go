package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"recordshop/internal/app/records"
	"recordshop/internal/store"
)

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := make(map[string]string, len(query))
	for key := range query {
		params[key] = query.Get(key)
	}

	albums, err := s.dispatchList(r, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

// dispatchList picks the lookup for the query: none lists everything, one
// recognized parameter uses its single-field lookup, anything else searches.
func (s *Server) dispatchList(r *http.Request, params map[string]string) ([]store.Album, error) {
	ctx := r.Context()

	if len(params) == 0 {
		return s.records.List(ctx)
	}
	if len(params) > 1 {
		return s.records.Search(ctx, params)
	}

	for name, value := range params {
		switch name {
		case records.ParamArtist:
			return s.records.ByArtist(ctx, value)
		case records.ParamAlbumName:
			return s.records.ByName(ctx, value)
		case records.ParamReleaseYear:
			year, err := records.ParseReleaseYear(value)
			if err != nil {
				return nil, err
			}
			return s.records.ByReleaseYear(ctx, year)
		case records.ParamGenre:
			genre, err := records.ParseGenreParam(value)
			if err != nil {
				return nil, err
			}
			return s.records.ByGenre(ctx, genre)
		}
	}
	return s.records.Search(ctx, params)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePatch(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.records.Create(r.Context(), payload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", recordLocation(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if id == nil {
		s.writeError(w, r, badRequest("No id supplied! You must supply an id to search for on this endpoint!"))
		return
	}

	album, err := s.records.Get(r.Context(), *id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payload, err := decodePatch(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	album, created, err := s.records.ReplaceOrCreate(r.Context(), payload, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if created {
		w.Header().Set("Location", recordLocation(album.ID))
		writeJSON(w, http.StatusCreated, album)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if id == nil {
		s.writeError(w, r, badRequest("No id supplied! You must supply an id to delete on this endpoint!"))
		return
	}

	if err := s.records.Delete(r.Context(), *id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID returns the {id} path variable, or nil when the route has none.
func pathID(r *http.Request) (*int64, error) {
	raw, ok := mux.Vars(r)["id"]
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, badRequest("invalid id parameter '%s'", raw)
	}
	return &id, nil
}

func recordLocation(id int64) string {
	return BasePath + "/records/" + strconv.FormatInt(id, 10)
}
