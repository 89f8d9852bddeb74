package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext("/"))

	if p.Page != 1 {
		t.Errorf("expected default page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default pageSize %d, got %d", DefaultPageSize, p.PageSize)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := FromContext(newContext("/?page=3&pageSize=25"))

	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.PageSize != 25 {
		t.Errorf("expected pageSize 25, got %d", p.PageSize)
	}
	if p.Offset() != 50 {
		t.Errorf("expected offset 50, got %d", p.Offset())
	}
	if p.Limit() != 25 {
		t.Errorf("expected limit 25, got %d", p.Limit())
	}
}

func TestFromContext_ClampsInvalid(t *testing.T) {
	p := FromContext(newContext("/?page=-2&pageSize=0"))
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected clamped defaults, got page=%d pageSize=%d", p.Page, p.PageSize)
	}

	p = FromContext(newContext("/?pageSize=9999"))
	if p.PageSize != MaxPageSize {
		t.Errorf("expected pageSize capped at %d, got %d", MaxPageSize, p.PageSize)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     int
	}{
		{25, 10, 3},
		{30, 10, 3},
		{1, 10, 1},
		{0, 10, 0},
		{101, 100, 2},
	}
	for _, tc := range cases {
		p := Params{Page: 1, PageSize: tc.pageSize}
		if got := p.TotalPages(tc.total); got != tc.want {
			t.Errorf("TotalPages(total=%d, pageSize=%d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestNewResponse_OutOfRangePage(t *testing.T) {
	p := Params{Page: 4, PageSize: 10}
	resp := NewResponse([]string{}, 25, p)

	if resp.Total != 25 {
		t.Errorf("expected total 25, got %d", resp.Total)
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected totalPages 3, got %d", resp.TotalPages)
	}
	if resp.Page != 4 {
		t.Errorf("expected page 4, got %d", resp.Page)
	}
}
