package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.ok(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// Options returns the style catalogue offered by the forms.
func (a *App) Options(w http.ResponseWriter, r *http.Request) {
	a.ok(w, http.StatusOK, a.Catalog, "")
}
