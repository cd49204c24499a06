package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(Options{
		Organization: "Acme Media",
		Table:        config.DefaultRatioTable,
		Defaults:     model.Inputs{CurrentYear: 2026, TVFactor: 1},
		Logger:       zerolog.Nop(),
		Now:          func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	})
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func exampleJSON() []byte {
	body, _ := json.Marshal(model.Inputs{
		Brand:           "Sparkle",
		CurrentYear:     2026,
		CurrentSOM:      10,
		NextSOM:         12,
		LeaderName:      "MegaCola",
		LeaderSOM:       15,
		CompGRP:         1000,
		CompGRPIncrease: 10,
		CPRP:            500,
		TVFactor:        1.2,
	})
	return body
}

func exampleForm() url.Values {
	return url.Values{
		"brand":             {"Sparkle"},
		"current_year":      {"2026"},
		"current_som":       {"10"},
		"next_som":          {"12"},
		"leader_name":       {"MegaCola"},
		"leader_som":        {"15"},
		"comp_grp":          {"1000"},
		"comp_grp_increase": {"10"},
		"cprp":              {"500"},
		"tv_factor":         {"1.2"},
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("no request id assigned")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = serve(s, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}

func TestFormDefaults(t *testing.T) {
	s := newTestServer(t)
	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	if n := doc.Find("#plan-form input").Length(); n != 11 {
		t.Fatalf("inputs = %d, want 11", n)
	}
	if v, _ := doc.Find("#current_year").Attr("value"); v != "2026" {
		t.Fatalf("current_year = %q, want 2026", v)
	}
	if got := doc.Find("label[for=next_som]").Text(); got != "2027 SOM (%)" {
		t.Fatalf("next_som label = %q", got)
	}
	if got := doc.Find(".brand").Text(); got != "Brand: Not specified" {
		t.Fatalf("brand line = %q", got)
	}
	if got := doc.Find("footer").Text(); got != "© 2026 Acme Media." {
		t.Fatalf("footer = %q", got)
	}
}

func TestFormPost(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(exampleForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	if got := doc.Find("#headline").Text(); got != "Total Projected Budget (All Media): 111,028" {
		t.Fatalf("headline = %q", got)
	}
	if v, _ := doc.Find("#brand").Attr("value"); v != "Sparkle" {
		t.Fatalf("brand input = %q, want Sparkle", v)
	}
	if n := doc.Find("table.section").Length(); n != 5 {
		t.Fatalf("sections = %d, want 5", n)
	}
	if doc.Find(".warnings").Length() != 0 {
		t.Fatal("warnings shown for valid inputs")
	}
}

func TestFormEscapesBrand(t *testing.T) {
	s := newTestServer(t)
	form := exampleForm()
	form.Set("brand", `<script>alert(1)</script>`)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(s, req)

	if strings.Contains(w.Body.String(), "<script>alert(1)") {
		t.Fatal("brand rendered unescaped")
	}
}

func TestAPIPlan(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader(exampleJSON()))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Plan.MarketType != model.MarketLarge {
		t.Fatalf("MarketType = %s, want Large", resp.Plan.MarketType)
	}
	if resp.Plan.TotalBudget < 111028 || resp.Plan.TotalBudget > 111028.1 {
		t.Fatalf("TotalBudget = %f, want ~111028.04", resp.Plan.TotalBudget)
	}
	if resp.Warnings == nil || len(resp.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want empty", resp.Warnings)
	}
	if resp.RatioTable != config.DefaultRatioTable.Name {
		t.Fatalf("RatioTable = %q", resp.RatioTable)
	}
}

func TestAPIPlanBadJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"cprp": "lots"`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAPIBands(t *testing.T) {
	s := newTestServer(t)
	w := serve(s, httptest.NewRequest(http.MethodGet, "/api/bands", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var table config.RatioTable
	if err := json.Unmarshal(w.Body.Bytes(), &table); err != nil {
		t.Fatalf("decoding bands: %v", err)
	}
	if len(table.Bands) != 5 {
		t.Fatalf("bands = %d, want 5", len(table.Bands))
	}
	if table.Bands[0].Max != nil || *table.Bands[0].Min != 1.0 {
		t.Fatalf("first band = %+v", table.Bands[0])
	}
}

func TestAPIReportPDF(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/report?format=pdf", bytes.NewReader(exampleJSON()))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("Content-Type = %q", got)
	}
	want := `attachment; filename="Budget_Plan_Sparkle.pdf"`
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Fatalf("Content-Disposition = %q, want %q", got, want)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("body is not a PDF")
	}
}

func TestAPIReportFormBlankBrand(t *testing.T) {
	s := newTestServer(t)
	form := exampleForm()
	form.Del("brand")
	req := httptest.NewRequest(http.MethodPost, "/api/report?format=md", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "Budget_Plan_Report.md") {
		t.Fatalf("Content-Disposition = %q", got)
	}
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), "Brand: Not specified") {
		t.Fatalf("markdown missing blank brand line:\n%s", body)
	}
}

func TestAPIReportUnknownFormat(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/report?format=docx", bytes.NewReader(exampleJSON()))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New(Options{Addr: "127.0.0.1:0", Logger: zerolog.Nop()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func overflowJSON() []byte {
	var in model.Inputs
	_ = json.Unmarshal(exampleJSON(), &in)
	in.CompGRP = 1e308
	in.CompGRPIncrease = 100
	body, _ := json.Marshal(in)
	return body
}

func TestFormPostIgnoresInfinityText(t *testing.T) {
	s := newTestServer(t)
	form := exampleForm()
	form.Set("cprp", "inf")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	if got := doc.Find("#headline").Text(); got != "Total Projected Budget (All Media): 0" {
		t.Fatalf("headline = %q", got)
	}
}

func TestFormPostOverflowRenders(t *testing.T) {
	s := newTestServer(t)
	form := exampleForm()
	form.Set("comp_grp", "1e308")
	form.Set("comp_grp_increase", "100")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Infinity") {
		t.Fatal("overflowed totals not shown as Infinity")
	}
}

func TestAPIPlanOverflowRejected(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader(overflowJSON()))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", w.Code, w.Body.String())
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("body = %q, want an error object", w.Body.String())
	}
}

func TestAPIReportOverflow(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/report?format=md", bytes.NewReader(overflowJSON()))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "| Competitor GRP 2027 | Infinity |") {
		t.Fatalf("markdown missing Infinity row:\n%s", w.Body.String())
	}
}
