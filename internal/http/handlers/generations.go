package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"flatify/internal/domain"
	"flatify/pkg/datauri"
	"flatify/pkg/zip"
)

type saveResponse struct {
	Created bool `json:"created"`
	Record  any  `json:"record"`
}

func (a *App) kindParam(r *http.Request) (domain.Kind, error) {
	raw := chi.URLParam(r, "kind")
	kind, ok := domain.ParseKind(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown generation kind %q", domain.ErrValidation, raw)
	}
	return kind, nil
}

// SaveGeneration stores a generated logo for the signed-in user. Saving the
// same content twice returns the existing record with 200 instead of 201.
func (a *App) SaveGeneration(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	kind, err := a.kindParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	gen := domain.Generation{Kind: kind}
	switch kind {
	case domain.KindNovice:
		gen.Novice = &domain.NoviceGeneration{}
		err = a.decode(w, r, gen.Novice)
		gen.Novice.ID, gen.Novice.UserID = "", userID
	case domain.KindProfessional:
		gen.Professional = &domain.ProfessionalGeneration{}
		err = a.decode(w, r, gen.Professional)
		gen.Professional.ID, gen.Professional.UserID = "", userID
	case domain.KindImageEditor:
		gen.ImageEditor = &domain.ImageEditorGeneration{}
		err = a.decode(w, r, gen.ImageEditor)
		gen.ImageEditor.ID, gen.ImageEditor.UserID = "", userID
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	saved, created, err := a.Generations.Create(r.Context(), gen)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	code, msg := http.StatusCreated, fmt.Sprintf("%s logo generation saved", kind)
	if !created {
		code, msg = http.StatusOK, fmt.Sprintf("%s logo generation already saved", kind)
	}
	a.ok(w, code, saveResponse{Created: created, Record: saved.Record()}, msg)
}

func (a *App) ListGenerations(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	kind, err := a.kindParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	gens, err := a.Generations.ListByOwner(r.Context(), kind, userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	records := make([]any, 0, len(gens))
	for _, g := range gens {
		records = append(records, g.Record())
	}
	a.ok(w, http.StatusOK, records, "")
}

func (a *App) DeleteGeneration(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	kind, err := a.kindParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Generations.DeleteByIDAndOwner(r.Context(), kind, id, userID); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, nil, fmt.Sprintf("%s logo deleted successfully", kind))
}

// ExportGenerations streams the caller's saved logos of one kind as a zip.
func (a *App) ExportGenerations(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	kind, err := a.kindParam(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	gens, err := a.Generations.ListByOwner(r.Context(), kind, userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	assets := make([]zip.Asset, 0, len(gens))
	for i, g := range gens {
		blob, err := datauri.Parse(g.LogoDataURI())
		if err != nil {
			a.log(r).Warn().Err(err).Str("generation_id", g.ID()).Msg("skipping undecodable logo")
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: exportName(g, i) + datauri.Extension(blob.MIMEType),
			MIME:     blob.MIMEType,
			Data:     blob.Data,
		})
	}
	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="flatify-%s-logos.zip"`, kind))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func exportName(g domain.Generation, i int) string {
	var label string
	switch {
	case g.Novice != nil:
		label = g.Novice.BusinessName
	case g.ImageEditor != nil:
		label = g.ImageEditor.BusinessName
	}
	label = slug(label)
	if label == "" {
		label = string(g.Kind)
	}
	return fmt.Sprintf("%02d-%s-%s", i+1, label, g.CreatedAt().UTC().Format("20060102-150405"))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
