// Package http exposes a populated container as a read-only JSON API, so the
// unified future-works output can be handed to authority systems without
// shipping the file itself.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/CHRISCARLON/uk-future-works-model/internal/application"
	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *application.ProfileService
	path    string
}

func NewRouter(service *application.ProfileService, path string) http.Handler {
	h := &Handler{service: service, path: path}
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(api chi.Router) {
		api.Get("/future-works", h.handleListFutureWorks)
		api.Get("/organisations", h.handleListOrganisations)
		api.Get("/codelists/{table}", h.handleListCodelist)
		api.Get("/summary", h.handleSummary)
	})

	return r
}

type futureWorkResponse struct {
	WorkID                string      `json:"work_id"`
	WorkName              string      `json:"work_name"`
	Description           string      `json:"description"`
	OrganisationName      *string     `json:"organisation_name"`
	OrganisationShortName *string     `json:"organisation_shortname"`
	OrganisationType      *string     `json:"organisation_type"`
	SWACode               *string     `json:"swa_code"`
	UtilityType           string      `json:"utility_type"`
	UtilitySubtype        string      `json:"utility_subtype"`
	USRN                  string      `json:"usrn"`
	StreetName            string      `json:"street_name"`
	LinkStatus            string      `json:"link_status"`
	SchemeStatus          string      `json:"scheme_status"`
	WorkType              string      `json:"work_type"`
	PlannedStartDate      string      `json:"planned_start_date"`
	PlannedEndDate        string      `json:"planned_end_date"`
	ConfidenceLevel       string      `json:"confidence_level"`
	Material              string      `json:"material"`
	InstallationMethod    string      `json:"installation_method"`
	DepthMetres           float64     `json:"depth_metres"`
	ProgrammeName         *string     `json:"programme_name"`
	ProgrammeType         *string     `json:"programme_type"`
	ContactName           *string     `json:"contact_name"`
	ContactEmail          *string     `json:"contact_email"`
	ContactPhone          *string     `json:"contact_phone"`
	LastUpdated           time.Time   `json:"last_updated"`
	DataSensitivity       string      `json:"data_sensitivity"`
	SRSID                 int32       `json:"srs_id"`
	Coordinates           [][]float64 `json:"coordinates"`
}

func toFutureWorkResponse(fw domain.FutureWork) futureWorkResponse {
	coords := make([][]float64, 0, len(fw.Geometry.Points))
	for _, p := range fw.Geometry.Points {
		coords = append(coords, []float64{p.X, p.Y})
	}
	return futureWorkResponse{
		WorkID:                fw.WorkID,
		WorkName:              fw.WorkName,
		Description:           fw.Description,
		OrganisationName:      fw.OrganisationName,
		OrganisationShortName: fw.OrganisationShortName,
		OrganisationType:      fw.OrganisationType,
		SWACode:               fw.SWACode,
		UtilityType:           fw.UtilityType,
		UtilitySubtype:        fw.UtilitySubtype,
		USRN:                  fw.USRN,
		StreetName:            fw.StreetName,
		LinkStatus:            fw.LinkStatus,
		SchemeStatus:          fw.SchemeStatus,
		WorkType:              fw.WorkType,
		PlannedStartDate:      fw.PlannedStartDate,
		PlannedEndDate:        fw.PlannedEndDate,
		ConfidenceLevel:       fw.ConfidenceLevel,
		Material:              fw.Material,
		InstallationMethod:    fw.InstallationMethod,
		DepthMetres:           fw.DepthMetres,
		ProgrammeName:         fw.ProgrammeName,
		ProgrammeType:         fw.ProgrammeType,
		ContactName:           fw.ContactName,
		ContactEmail:          fw.ContactEmail,
		ContactPhone:          fw.ContactPhone,
		LastUpdated:           fw.LastUpdated,
		DataSensitivity:       fw.DataSensitivity,
		SRSID:                 fw.Geometry.SRSID,
		Coordinates:           coords,
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "geopackage": h.path})
}

func (h *Handler) handleListFutureWorks(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid limit"})
			return
		}
		limit = v
	}

	works, err := h.service.FutureWorks(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	out := make([]futureWorkResponse, 0, len(works))
	for _, fw := range works {
		out = append(out, toFutureWorkResponse(fw))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListOrganisations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.Organisations(r.Context(), 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	type organisationResponse struct {
		SystemID         string `json:"systemid"`
		Name             string `json:"name"`
		ShortName        string `json:"shortname"`
		OrganisationType string `json:"organisation_type"`
		SWACode          string `json:"swa_code"`
		WebsiteURL       string `json:"website_url"`
	}
	out := make([]organisationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, organisationResponse{
			SystemID:         org.SystemID,
			Name:             org.Name,
			ShortName:        org.ShortName,
			OrganisationType: org.OrganisationType,
			SWACode:          org.SWACode,
			WebsiteURL:       org.WebsiteURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListCodelist(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	entries, err := h.service.Codelist(r.Context(), table)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	}

	type codelistResponse struct {
		Code              string `json:"code"`
		Value             string `json:"value"`
		ApplicableDomains string `json:"applicable_domains,omitempty"`
	}
	out := make([]codelistResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, codelistResponse{Code: e.SystemID, Value: e.Value, ApplicableDomains: e.ApplicableDomains})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Summary(r.Context(), h.path)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	counts := make(map[string]int64, len(report.TableCounts))
	for _, tc := range report.TableCounts {
		counts[tc.Table] = tc.Count
	}
	groups := func(items []domain.GroupCount) map[string]int64 {
		out := make(map[string]int64, len(items))
		for _, g := range items {
			out[g.Key] = g.Count
		}
		return out
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"geopackage":             report.Path,
		"generated_at":           report.GeneratedAt,
		"table_counts":           counts,
		"active_network_links":   report.ActiveLinks,
		"earliest_planned_start": report.EarliestPlannedStart,
		"latest_planned_start":   report.LatestPlannedStart,
		"by_utility_type":        groups(report.ByUtilityType),
		"by_link_status":         groups(report.ByLinkStatus),
		"by_scheme_status":       groups(report.BySchemeStatus),
		"by_installation_method": groups(report.ByInstallationMethod),
		"by_work_type":           groups(report.ByWorkType),
		"by_organisation":        groups(report.ByOrganisation),
		"quality_findings":       len(report.QualityFindings),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
