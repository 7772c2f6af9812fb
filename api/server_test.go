package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"vfx-cost/core/pricing"
	"vfx-cost/core/style"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/metrics"
)

const projectBody = `[
  {"id": "a", "name": "Opening", "description": "", "data": {
    "basePrice": 10000, "duration": 5, "resolution": "1080p", "fps": "30",
    "roto": "None", "cleanup": "None", "keying": "None", "cameraTracking": "None",
    "objectTracking": "None", "matchMove": "None", "model3d": "None", "rigging": "None",
    "sceneReconstruction": "None", "propsEnvs": "None", "animation": "None", "mocap": "None",
    "simulation": "None", "compositing3d": "None", "compositing2d": "None",
    "layerAnimation": "None", "urgent": "None", "brief": "Clear",
    "onSceneManagement": "No", "allowOnReel": "No"}},
  {"id": "b", "name": "Chase", "description": "night", "data": {
    "basePrice": 200, "duration": 5, "resolution": "1080p", "fps": "30",
    "roto": "None", "cleanup": "None", "keying": "None", "cameraTracking": "None",
    "objectTracking": "None", "matchMove": "None", "model3d": "None", "rigging": "None",
    "sceneReconstruction": "None", "propsEnvs": "None", "animation": "None", "mocap": "None",
    "simulation": "None", "compositing3d": "None", "compositing2d": "None",
    "layerAnimation": "None", "urgent": "None", "brief": "Clear",
    "onSceneManagement": "Yes", "allowOnReel": "Yes"}}
]`

func newTestServer(opts ...Option) *Server {
	return NewServer("test", opts...)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	return resp.Error
}

func TestEstimate_DefaultsFillOmittedFields(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/estimate", `{"basePrice": 10000, "duration": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp EstimateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Breakdown.Total.Equal(resp.Breakdown.ShotBaseCost) || resp.Breakdown.Total.String() != "50000" {
		t.Errorf("Expected total 50000, got %s", resp.Breakdown.Total)
	}
	if resp.Display.Total != "50,000 MMK" {
		t.Errorf("Expected display total %q, got %q", "50,000 MMK", resp.Display.Total)
	}
	if resp.CostPerSecond.String() != "10000" {
		t.Errorf("Expected cost per second 10000, got %s", resp.CostPerSecond)
	}
	if resp.Metadata == nil || resp.Metadata.EngineVersion != "test" || resp.Metadata.RequestID == "" {
		t.Errorf("Expected metadata with version and request id, got %+v", resp.Metadata)
	}
	if resp.Metadata != nil && resp.Metadata.FPSPolicy != string(pricing.FPSPolicySubtotal) {
		t.Errorf("Expected fps policy %s, got %s", pricing.FPSPolicySubtotal, resp.Metadata.FPSPolicy)
	}
}

func TestEstimate_WithDrivers(t *testing.T) {
	body := `{"basePrice": 10000, "duration": 5, "resolution": "4K", "fps": "60",
		"roto": "Easy", "simulation": "Hard"}`
	rec := do(t, newTestServer(), http.MethodPost, "/estimate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp EstimateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Breakdown.Total.String() != "393000" {
		t.Errorf("Expected total 393000, got %s", resp.Breakdown.Total)
	}
	if len(resp.Lines) == 0 || resp.Lines[len(resp.Lines)-1].Label != "Total" {
		t.Errorf("Expected lines ending with Total, got %+v", resp.Lines)
	}
	if len(resp.Chart) == 0 {
		t.Error("Expected chart segments")
	}
}

func TestEstimate_RejectsBadBody(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/estimate", `{"basePrice":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Code != string(errors.TypeInput) {
		t.Errorf("Expected code %s, got %s", errors.TypeInput, body.Code)
	}
}

func TestEstimate_CoercesAmounts(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		baseCost string
	}{
		{"cleared price", `{"basePrice": ""}`, "0"},
		{"non-numeric price", `{"basePrice": "abc", "duration": 5}`, "0"},
		{"null duration", `{"basePrice": 200, "duration": null}`, "0"},
		{"numeric text", `{"basePrice": " 200 ", "duration": "5"}`, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, "/estimate", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var resp EstimateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Breakdown.ShotBaseCost.String() != tt.baseCost {
				t.Errorf("Expected base cost %s, got %s", tt.baseCost, resp.Breakdown.ShotBaseCost)
			}
		})
	}
}

func TestEstimate_UnknownValueIsUnprocessable(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/estimate", `{"roto": "Extreme"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Code != string(errors.TypePricing) {
		t.Errorf("Expected code %s, got %s", errors.TypePricing, body.Code)
	}
	if body.Context["field"] != "roto" {
		t.Errorf("Expected field roto in context, got %v", body.Context)
	}
	if strings.HasPrefix(body.Message, "[") {
		t.Errorf("Expected message without type prefix, got %q", body.Message)
	}
}

func TestProject_SumsScenes(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/project", projectBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report struct {
		Title  string `json:"title"`
		Total  string `json:"total"`
		Scenes []struct {
			ID     string   `json:"id"`
			Badges []string `json:"badges"`
		} `json:"scenes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Total != "50902.5" {
		t.Errorf("Expected total 50902.5, got %s", report.Total)
	}
	if len(report.Scenes) != 2 || report.Scenes[1].ID != "b" {
		t.Fatalf("Expected scenes a, b; got %+v", report.Scenes)
	}
	if len(report.Scenes[1].Badges) != 2 {
		t.Errorf("Expected two discount badges on scene b, got %v", report.Scenes[1].Badges)
	}
}

func TestProject_RendersMarkdown(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/project?format=markdown&title=Trailer", projectBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Expected markdown content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Trailer") {
		t.Error("Expected the title in the rendered report")
	}
}

func TestProject_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"empty array", "/project", `[]`, http.StatusBadRequest},
		{"not an array", "/project", `{"id": "a"}`, http.StatusBadRequest},
		{"unknown format", "/project?format=pdf", projectBody, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRates(t *testing.T) {
	card := pricing.NewRateCard(pricing.WithFPSPolicy(pricing.FPSPolicyResolution))
	rec := do(t, newTestServer(WithEngine(pricing.NewEngine(card))), http.MethodGet, "/rates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp RatesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FPSPolicy != pricing.FPSPolicyResolution {
		t.Errorf("Expected fps policy %s, got %s", pricing.FPSPolicyResolution, resp.FPSPolicy)
	}
	if resp.Fingerprint != card.Fingerprint().Hex() {
		t.Errorf("Expected fingerprint %s, got %s", card.Fingerprint().Hex(), resp.Fingerprint)
	}
	if resp.Unselected != style.Unselected {
		t.Errorf("Expected unselected classes %q, got %q", style.Unselected, resp.Unselected)
	}
	if len(resp.Tables) == 0 || len(resp.Fields) == 0 || len(resp.Chart) == 0 {
		t.Errorf("Expected tables, fields and chart, got %d/%d/%d", len(resp.Tables), len(resp.Fields), len(resp.Chart))
	}
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer()
	for _, path := range []string{"/health", "/version"} {
		rec := do(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"test"`) {
			t.Errorf("%s: expected version in body, got %s", path, rec.Body.String())
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	if rec := do(t, newTestServer(), http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected /metrics to be absent without a manager, got %d", rec.Code)
	}

	m := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
	s := newTestServer(WithMetrics(m))
	do(t, s, http.MethodPost, "/estimate", `{}`)
	do(t, s, http.MethodPost, "/estimate", `{"roto": "Extreme"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`vfxcost_pricing_estimates_total{source="http"} 1`,
		`vfxcost_pricing_estimate_errors_total{type="PRICING_ERROR"} 1`,
		`route="/estimate"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics to contain %s", want)
		}
	}
}

func TestStream(t *testing.T) {
	ts := httptest.NewServer(newTestServer())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/estimate"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	resp.Body.Close()

	exchange := func(payload string) StreamMessage {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			t.Fatalf("write: %v", err)
		}
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		return msg
	}

	msg := exchange(`{"basePrice": 200, "duration": 5, "onSceneManagement": "Yes", "allowOnReel": "Yes"}`)
	if msg.Type != "estimate" || msg.Estimate == nil {
		t.Fatalf("Expected estimate frame, got %+v", msg)
	}
	if msg.Estimate.Breakdown.Total.String() != "902.5" {
		t.Errorf("Expected total 902.5, got %s", msg.Estimate.Breakdown.Total)
	}

	// Clearing a field mid-edit still prices
	msg = exchange(`{"basePrice": ""}`)
	if msg.Type != "estimate" || msg.Estimate == nil || !msg.Estimate.Breakdown.Total.IsZero() {
		t.Fatalf("Expected a zero estimate for a cleared price, got %+v", msg)
	}
	msg = exchange(`{"basePrice": "abc", "duration": null}`)
	if msg.Type != "estimate" || msg.Estimate == nil || !msg.Estimate.Breakdown.Total.IsZero() {
		t.Fatalf("Expected a zero estimate for non-numeric amounts, got %+v", msg)
	}

	msg = exchange(`{"fps": "24"}`)
	if msg.Type != "error" || msg.Error == nil || msg.Error.Code != string(errors.TypePricing) {
		t.Fatalf("Expected pricing error frame, got %+v", msg)
	}

	msg = exchange(`not json`)
	if msg.Type != "error" || msg.Error.Code != string(errors.TypeInput) {
		t.Fatalf("Expected input error frame, got %+v", msg)
	}
}

func TestStream_Disabled(t *testing.T) {
	rec := do(t, newTestServer(WithWebsocket(false)), http.MethodGet, "/ws/estimate", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestEstimate_ETag(t *testing.T) {
	s := newTestServer()
	body := `{"basePrice": 10000, "roto": "Easy"}`

	first := do(t, s, http.MethodPost, "/estimate", body)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("Expected an ETag")
	}

	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(body))
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("Expected 304, got %d", rec.Code)
	}

	other := do(t, s, http.MethodPost, "/estimate", `{"basePrice": 10000, "roto": "Hard"}`)
	if other.Header().Get("ETag") == etag {
		t.Error("Expected a different ETag for a different shot")
	}

	card := pricing.NewRateCard(pricing.WithFPSPolicy(pricing.FPSPolicyResolution))
	resolution := do(t, newTestServer(WithEngine(pricing.NewEngine(card))), http.MethodPost, "/estimate", body)
	if resolution.Header().Get("ETag") == etag {
		t.Error("Expected a different ETag under a different rate card")
	}
}
