package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/platform/config"
	"github.com/ireum-lab/api/internal/services"
)

type fakeNamingService struct {
	searchReq    domain.SearchRequest
	searchResult domain.SearchResult
	searchErr    error

	evaluateCmd  services.EvaluateCommand
	evaluateResp domain.SeedResponse
	evaluateErr  error
}

func (f *fakeNamingService) Search(_ context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	f.searchReq = req
	return f.searchResult, f.searchErr
}

func (f *fakeNamingService) Evaluate(_ context.Context, cmd services.EvaluateCommand) (domain.SeedResponse, error) {
	f.evaluateCmd = cmd
	return f.evaluateResp, f.evaluateErr
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{DefaultLimit: 10, MaxLimit: 100}
}

func newTestRouter(svc services.NamingService) http.Handler {
	h := NewNameHandlers(svc, testSearchConfig())
	return NewRouter(WithNameRoutes(h.Routes))
}

func TestSearchEndpointBindsRequest(t *testing.T) {
	svc := &fakeNamingService{searchResult: domain.SearchResult{
		Query:      "[최/崔][_/_][_/_]",
		TotalCount: 1,
		Responses:  []domain.SeedResponse{{Name: domain.NameView{Hangul: "최성수"}}},
	}}
	router := newTestRouter(svc)

	target := "/api/v1/names/search?q=" + "%5B최%2F崔%5D%5B_%2F_%5D%5B_%2F_%5D" +
		"&limit=20&offset=5&includeSaju=true&gender=M" +
		"&birthDate=1986-04-19&birthTime=05:45"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req := svc.searchReq
	if req.Query != "[최/崔][_/_][_/_]" {
		t.Fatalf("Query = %q", req.Query)
	}
	if req.Limit != 20 || req.Offset != 5 || !req.IncludeSaju || req.Gender != "M" {
		t.Fatalf("request = %+v", req)
	}
	if req.Birth == nil || req.Birth.Year != 1986 || req.Birth.Month != 4 || req.Birth.Day != 19 {
		t.Fatalf("Birth = %+v", req.Birth)
	}
	if !req.Birth.HasTime || req.Birth.Hour != 5 || req.Birth.Minute != 45 {
		t.Fatalf("Birth time = %+v", req.Birth)
	}

	var result domain.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.TotalCount != 1 || len(result.Responses) != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	router := newTestRouter(&fakeNamingService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/names/search", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSearchEndpointRejectsBadPagination(t *testing.T) {
	router := newTestRouter(&fakeNamingService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/names/search?q=%5B_%2F_%5D&limit=-1", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSearchEndpointMapsInvalidQuery(t *testing.T) {
	svc := &fakeNamingService{searchErr: services.ErrNamingInvalidQuery}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/names/search?q=broken", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_query") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSearchEndpointMapsRepositoryFailure(t *testing.T) {
	svc := &fakeNamingService{searchErr: services.ErrNamingRepositoryFailure}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/names/search?q=%5B_%2F_%5D", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestEvaluateEndpointBindsQueryForm(t *testing.T) {
	svc := &fakeNamingService{evaluateResp: domain.SeedResponse{
		Name:           domain.NameView{Hangul: "최성수", Hanja: "崔成秀"},
		Interpretation: domain.Interpretation{Score: 88, Passed: true, Status: "excellent"},
	}}
	router := newTestRouter(svc)

	body := `{"query":"[최/崔][성/成][수/秀]","birth":{"date":"1986-04-19","time":"05:45"},"gender":"M"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/names/evaluate", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.evaluateCmd.Query != "[최/崔][성/成][수/秀]" {
		t.Fatalf("Query = %q", svc.evaluateCmd.Query)
	}
	if svc.evaluateCmd.Birth == nil || svc.evaluateCmd.Birth.Year != 1986 || !svc.evaluateCmd.Birth.HasTime {
		t.Fatalf("Birth = %+v", svc.evaluateCmd.Birth)
	}

	var resp domain.SeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Interpretation.Score != 88 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestEvaluateEndpointBindsNameForm(t *testing.T) {
	svc := &fakeNamingService{}
	router := newTestRouter(svc)

	body := `{"name":{"surnameHangul":"강","surnameHanja":"姜","givenHangul":"나예","givenHanja":"奈藝"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/names/evaluate", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.evaluateCmd.Name == nil || svc.evaluateCmd.Name.GivenHanja != "奈藝" {
		t.Fatalf("Name = %+v", svc.evaluateCmd.Name)
	}
}

func TestEvaluateEndpointValidatesBody(t *testing.T) {
	router := newTestRouter(&fakeNamingService{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty", "", http.StatusBadRequest},
		{"badJSON", "{", http.StatusBadRequest},
		{"badDate", `{"query":"[강/姜][나/奈]","birth":{"date":"19-04-1986"}}`, http.StatusBadRequest},
		{"timeWithoutDate", `{"query":"[강/姜][나/奈]","birth":{"time":"05:45"}}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/names/evaluate", strings.NewReader(tc.body)))
		if rec.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestEvaluateEndpointMapsInvalidInput(t *testing.T) {
	svc := &fakeNamingService{evaluateErr: services.ErrNamingInvalidInput}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/names/evaluate", strings.NewReader(`{"query":"[강/姜]"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterAssignsRequestID(t *testing.T) {
	router := newTestRouter(&fakeNamingService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "client-supplied" {
		t.Fatalf("request id = %q", got)
	}
}

func TestRouterNotFound(t *testing.T) {
	router := newTestRouter(&fakeNamingService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "route_not_found") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
