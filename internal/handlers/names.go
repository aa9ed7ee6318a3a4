package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/platform/config"
	"github.com/ireum-lab/api/internal/platform/httpx"
	"github.com/ireum-lab/api/internal/platform/pagination"
	"github.com/ireum-lab/api/internal/services"
)

const maxEvaluateRequestBody = 16 * 1024

const (
	birthDateLayout = "2006-01-02"
	birthTimeLayout = "15:04"
)

// NameHandlers exposes the name search and evaluation endpoints.
type NameHandlers struct {
	naming services.NamingService
	search config.SearchConfig
}

// NewNameHandlers constructs the name handler set.
func NewNameHandlers(svc services.NamingService, search config.SearchConfig) *NameHandlers {
	return &NameHandlers{naming: svc, search: search}
}

// Routes registers the name endpoints beneath /names.
func (h *NameHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/search", h.searchNames)
	r.Post("/evaluate", h.evaluateName)
}

func (h *NameHandlers) searchNames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.naming == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "naming service not available", http.StatusServiceUnavailable))
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "query parameter q is required", http.StatusBadRequest))
		return
	}

	params, err := pagination.ParseParamsBounded(r, h.search.DefaultLimit, h.search.MaxLimit)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	birth, err := birthFromQuery(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	req := domain.SearchRequest{
		Query:       query,
		Birth:       birth,
		Gender:      strings.TrimSpace(r.URL.Query().Get("gender")),
		Limit:       params.Limit,
		Offset:      params.Offset,
		IncludeSaju: parseBoolParam(r, "includeSaju"),
	}

	result, err := h.naming.Search(ctx, req)
	if err != nil {
		writeNamingError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

type evaluateRequest struct {
	Query  string            `json:"query"`
	Name   *nameInputPayload `json:"name"`
	Birth  *birthInfoPayload `json:"birth"`
	Gender string            `json:"gender"`
}

type nameInputPayload struct {
	SurnameHangul string `json:"surnameHangul"`
	SurnameHanja  string `json:"surnameHanja"`
	GivenHangul   string `json:"givenHangul"`
	GivenHanja    string `json:"givenHanja"`
}

type birthInfoPayload struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Calendar  string  `json:"calendar"`
	Location  string  `json:"location"`
	Longitude float64 `json:"longitude"`
}

func (h *NameHandlers) evaluateName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.naming == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "naming service not available", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxEvaluateRequestBody)
	if err != nil {
		switch {
		case errors.Is(err, errBodyTooLarge):
			httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		}
		return
	}
	if len(body) == 0 {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body is required", http.StatusBadRequest))
		return
	}

	var req evaluateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	birth, err := birthFromPayload(req.Birth)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	cmd := services.EvaluateCommand{
		Query:  strings.TrimSpace(req.Query),
		Birth:  birth,
		Gender: strings.TrimSpace(req.Gender),
	}
	if req.Name != nil {
		cmd.Name = &domain.NameInput{
			SurnameHangul: strings.TrimSpace(req.Name.SurnameHangul),
			SurnameHanja:  strings.TrimSpace(req.Name.SurnameHanja),
			GivenHangul:   strings.TrimSpace(req.Name.GivenHangul),
			GivenHanja:    strings.TrimSpace(req.Name.GivenHanja),
		}
	}

	resp, err := h.naming.Evaluate(ctx, cmd)
	if err != nil {
		writeNamingError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

func writeNamingError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNamingInvalidQuery):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_query", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrNamingInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrNamingRepositoryFailure):
		httpx.WriteError(ctx, w, httpx.NewError("repository_unavailable", "dictionary store unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
	}
}

// birthFromQuery reads the optional birth parameters from the query
// string: birthDate (YYYY-MM-DD), birthTime (HH:MM), calendar, location,
// longitude.
func birthFromQuery(r *http.Request) (*domain.BirthInfo, error) {
	q := r.URL.Query()
	return parseBirth(
		strings.TrimSpace(q.Get("birthDate")),
		strings.TrimSpace(q.Get("birthTime")),
		strings.TrimSpace(q.Get("calendar")),
		strings.TrimSpace(q.Get("location")),
		0,
	)
}

func birthFromPayload(p *birthInfoPayload) (*domain.BirthInfo, error) {
	if p == nil {
		return nil, nil
	}
	return parseBirth(
		strings.TrimSpace(p.Date),
		strings.TrimSpace(p.Time),
		strings.TrimSpace(p.Calendar),
		strings.TrimSpace(p.Location),
		p.Longitude,
	)
}

func parseBirth(date, timeOfDay, calendar, location string, longitude float64) (*domain.BirthInfo, error) {
	if date == "" {
		if timeOfDay != "" {
			return nil, errors.New("birth time requires a birth date")
		}
		return nil, nil
	}

	day, err := time.Parse(birthDateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q", date)
	}

	info := &domain.BirthInfo{
		Year:      day.Year(),
		Month:     int(day.Month()),
		Day:       day.Day(),
		Location:  location,
		Calendar:  calendar,
		Longitude: longitude,
	}
	if info.Calendar == "" {
		info.Calendar = "solar"
	}

	if timeOfDay != "" {
		clock, err := time.Parse(birthTimeLayout, timeOfDay)
		if err != nil {
			return nil, fmt.Errorf("invalid birth time %q", timeOfDay)
		}
		info.Hour = clock.Hour()
		info.Minute = clock.Minute()
		info.HasTime = true
	}

	return info, nil
}

func parseBoolParam(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
