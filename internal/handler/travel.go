package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/internal/docext"
	"github.com/onetrip/travel-planner/internal/middleware"
	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/internal/planner"
	"github.com/onetrip/travel-planner/pkg/logger"
)

// maxFormMemory bounds in-memory multipart parsing; larger parts spill to
// temp files.
const maxFormMemory = 32 << 20

// TravelHandler handles the travel planning endpoints.
type TravelHandler struct {
	planService *planner.PlanService
	docService  *docext.Service
	logger      *logger.Logger
}

// NewTravelHandler creates a new travel handler.
func NewTravelHandler(planSvc *planner.PlanService, docSvc *docext.Service, log *logger.Logger) *TravelHandler {
	return &TravelHandler{
		planService: planSvc,
		docService:  docSvc,
		logger:      log,
	}
}

// Analyze handles POST /api/v1/travel/analyze
//
// Accepts a multipart form with travel_style, travel_info and optional
// PDF/image files, and returns a full travel plan.
func (h *TravelHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	style, travelInfo, files, ok := h.parseAnalyzeForm(w, r)
	if !ok {
		return
	}

	extracted := ""
	if len(files) > 0 {
		extracted = h.docService.ProcessFiles(files)
	}
	combined := planner.CombineText(travelInfo, extracted)

	plan, err := h.planService.CreatePlan(r.Context(), combined, style)
	if err != nil {
		h.logger.Error("plan generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate travel plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// Styles handles GET /api/v1/travel/styles
func (h *TravelHandler) Styles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]model.StyleInfo{
		"styles": planner.StyleCatalog(),
	})
}

// Ambiguities handles POST /api/v1/travel/analyze/ambiguities
//
// Same input as Analyze; returns clarification questions instead of a plan.
func (h *TravelHandler) Ambiguities(w http.ResponseWriter, r *http.Request) {
	style, travelInfo, files, ok := h.parseAnalyzeForm(w, r)
	if !ok {
		return
	}

	extracted := ""
	if len(files) > 0 {
		extracted = h.docService.ProcessFiles(files)
	}
	combined := planner.CombineText(travelInfo, extracted)

	report, err := h.planService.DetectAmbiguities(r.Context(), combined, style)
	if err != nil {
		h.logger.Error("ambiguity detection failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to detect ambiguities")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Clarify handles POST /api/v1/travel/clarify
//
// Takes the original narrative plus answered questions and returns a
// revised plan.
func (h *TravelHandler) Clarify(w http.ResponseWriter, r *http.Request) {
	var req model.ClarifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid clarification payload")
		return
	}

	if err := middleware.ValidateStyleTag(req.TravelStyle); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateTravelInfo(req.OriginalInfo); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers cannot be empty")
		return
	}

	plan, err := h.planService.Clarify(r.Context(), req)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidStyle) {
			writeError(w, http.StatusBadRequest, "invalid travel style")
			return
		}
		h.logger.Error("clarification failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate revised plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// parseAnalyzeForm validates the shared form contract of the analyze
// endpoints. On failure it writes the error response and returns ok=false.
func (h *TravelHandler) parseAnalyzeForm(w http.ResponseWriter, r *http.Request) (model.TravelStyle, string, []*multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		// Not multipart; fall back to a plain form body.
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return "", "", nil, false
		}
	}

	rawStyle := r.FormValue("travel_style")
	if err := middleware.ValidateStyleTag(rawStyle); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", nil, false
	}
	style, ok := model.ParseTravelStyle(rawStyle)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid travel style")
		return "", "", nil, false
	}

	travelInfo := r.FormValue("travel_info")
	if err := middleware.ValidateTravelInfo(travelInfo); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", nil, false
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["files"]
	}

	return style, travelInfo, files, true
}
