package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/atmdb/atmdb/pkg/catalog"
	"github.com/gorilla/mux"
)

const suggestionLimit = 5

// parseView reads search, sortBy and sortOrder. Unknown sort keys fall back
// to the default view's key.
func parseView(q url.Values) catalog.View {
	v := catalog.DefaultView().WithText(strings.TrimSpace(q.Get("search")))
	if key, err := catalog.ParseSortKey(q.Get("sortBy")); err == nil {
		v.Sort = key
	}
	v.Ascending = strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))) != "desc"
	return v
}

// lookup resolves /species/{number}?form=.
func (s *Server) lookup(r *http.Request) (catalog.Record, bool) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		return catalog.Record{}, false
	}
	return s.Catalog.Find(number, r.URL.Query().Get("form"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.Err(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": s.Catalog.Len(),
	})
}

func (s *Server) handleSpeciesList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Catalog.Query(parseView(r.URL.Query())))
}

func (s *Server) handleSpeciesGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(r)
	if !ok {
		respondError(w, http.StatusNotFound, "species not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSpeciesPage(w http.ResponseWriter, r *http.Request) {
	view := parseView(r.URL.Query())
	records := s.Catalog.Query(view)

	var suggestions []string
	if len(records) == 0 && view.Text != "" {
		suggestions = s.Catalog.Suggest(view.Text, suggestionLimit)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// HTMX swaps only the table container
	if r.Header.Get("HX-Request") == "true" {
		speciesTableInner(records, view, suggestions).Render(w)
		return
	}

	pageLayout("Species - atmdb", speciesContent(records, view, suggestions, s.Catalog.Err())).Render(w)
}

func (s *Server) handleDetailPage(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(r)
	if !ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		pageLayout("Not found - atmdb", notFoundContent()).Render(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	pageLayout(rec.Name+" - atmdb", detailContent(rec)).Render(w)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
