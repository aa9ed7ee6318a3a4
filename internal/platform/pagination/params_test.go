package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/names/search", nil)
	params, err := ParseParams(r)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if params.Limit != DefaultLimit || params.Offset != 0 {
		t.Fatalf("params = %+v", params)
	}
}

func TestParseParamsExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/names/search?limit=25&offset=50", nil)
	params, err := ParseParams(r)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if params.Limit != 25 || params.Offset != 50 {
		t.Fatalf("params = %+v", params)
	}
}

func TestParseParamsClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=1000", nil)
	params, err := ParseParams(r)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if params.Limit != MaxLimit {
		t.Fatalf("Limit = %d, want %d", params.Limit, MaxLimit)
	}
}

func TestParseParamsBounded(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=40", nil)
	params, err := ParseParamsBounded(r, 5, 20)
	if err != nil {
		t.Fatalf("ParseParamsBounded: %v", err)
	}
	if params.Limit != 20 {
		t.Fatalf("Limit = %d, want 20", params.Limit)
	}

	r = httptest.NewRequest("GET", "/", nil)
	params, err = ParseParamsBounded(r, 5, 20)
	if err != nil {
		t.Fatalf("ParseParamsBounded: %v", err)
	}
	if params.Limit != 5 {
		t.Fatalf("Limit = %d, want 5", params.Limit)
	}
}

func TestParseParamsRejectsInvalid(t *testing.T) {
	for _, target := range []string{
		"/?limit=abc",
		"/?limit=0",
		"/?limit=-3",
		"/?offset=-1",
		"/?offset=x",
	} {
		r := httptest.NewRequest("GET", target, nil)
		if _, err := ParseParams(r); err == nil {
			t.Fatalf("%s: expected error", target)
		}
	}
}
