package handlers

import (
	"net/http"

	"flatify/internal/domain/jsoncfg"
	"flatify/internal/imagegen"
)

type logoResponse struct {
	LogoDataURI         string `json:"logoDataUri"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	UsedPrompt          string `json:"usedPrompt,omitempty"`
}

type refinePromptResponse struct {
	RefinedPrompt string `json:"refinedPrompt"`
}

// GenerateNovice expands the guided form and renders a logo. The expanded
// description is returned so the client can save exactly what was sent.
func (a *App) GenerateNovice(w http.ResponseWriter, r *http.Request) {
	var form jsoncfg.NoviceForm
	if err := a.decode(w, r, &form); err != nil {
		a.fail(w, r, err)
		return
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	if form.Layout == "" {
		form.Layout = a.Catalog.DefaultLayout
	}
	description := imagegen.BuildNoviceDescription(form)
	logo, err := a.Logos.GenerateFromText(r.Context(), form.BusinessName, description)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.recordPrompt(r, description)
	a.ok(w, http.StatusOK, logoResponse{LogoDataURI: logo, BusinessDescription: description}, "")
}

// GenerateProfessional renders a logo from a raw or refined prompt.
func (a *App) GenerateProfessional(w http.ResponseWriter, r *http.Request) {
	var form jsoncfg.ProfessionalForm
	if err := a.decode(w, r, &form); err != nil {
		a.fail(w, r, err)
		return
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	used := form.UsedPrompt()
	logo, err := a.Logos.GenerateFromText(r.Context(), imagegen.ExtractBusinessName(used), used)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.recordPrompt(r, used)
	a.ok(w, http.StatusOK, logoResponse{LogoDataURI: logo, UsedPrompt: used}, "")
}

// GenerateSimilar renders a new logo inspired by an uploaded image.
func (a *App) GenerateSimilar(w http.ResponseWriter, r *http.Request) {
	var form jsoncfg.SimilarForm
	if err := a.decode(w, r, &form); err != nil {
		a.fail(w, r, err)
		return
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	logo, err := a.Logos.GenerateFromImage(r.Context(), form)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, logoResponse{LogoDataURI: logo}, "")
}

func (a *App) RefineLogo(w http.ResponseWriter, r *http.Request) {
	var form jsoncfg.RefineLogoForm
	if err := a.decode(w, r, &form); err != nil {
		a.fail(w, r, err)
		return
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	logo, err := a.Logos.RefineLogo(r.Context(), form.LogoDataURI, form.RefinementPrompt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, logoResponse{LogoDataURI: logo}, "")
}

func (a *App) RefinePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	refined, err := a.Logos.RefinePrompt(r.Context(), req.Prompt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, refinePromptResponse{RefinedPrompt: refined}, "")
}
