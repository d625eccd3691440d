package risk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/canopy/internal/risk"
	"github.com/JaimeStill/canopy/pkg/process"
)

func setupMux() *http.ServeMux {
	a := risk.NewAssessor(risk.Config{}, process.New(), discardLogger())
	h := risk.NewHandler(a, discardLogger())

	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerAssessment(t *testing.T) {
	mux := setupMux()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLevel  risk.Level
	}{
		{"high risk", `{"temperature":20,"humidity":72}`, http.StatusOK, risk.High},
		{"with extras", `{"temperature":12,"humidity":60,"rain":2,"windSpeed":3,"cloudiness":80}`, http.StatusOK, risk.Medium},
		{"temperature too low", `{"temperature":-60,"humidity":50}`, http.StatusBadRequest, ""},
		{"humidity too high", `{"temperature":20,"humidity":120}`, http.StatusBadRequest, ""},
		{"invalid json", `{temperature`, http.StatusBadRequest, ""},
		{"empty body object", `{}`, http.StatusBadRequest, ""},
		{"missing humidity", `{"temperature":20}`, http.StatusBadRequest, ""},
		{"missing temperature", `{"humidity":80}`, http.StatusBadRequest, ""},
		{"null temperature", `{"temperature":null,"humidity":80}`, http.StatusBadRequest, ""},
		{"explicit zeros", `{"temperature":0,"humidity":0}`, http.StatusOK, risk.Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/risk/assessment", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got risk.Assessment
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("riskLevel = %s, want %s", got.RiskLevel, tt.wantLevel)
			}
		})
	}
}

func TestHandlerAssessmentErrorMessage(t *testing.T) {
	mux := setupMux()

	tests := []struct {
		body string
		want string
	}{
		{`{"temperature":70,"humidity":50}`, "temperature must be between -50 and 60 degrees Celsius"},
		{`{"humidity":50}`, "temperature is required"},
		{`{"temperature":20}`, "humidity is required"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/risk/assessment", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.Contains(body["error"], tt.want) {
			t.Errorf("%s: error = %q, want %q", tt.body, body["error"], tt.want)
		}
	}
}

func TestHandlerForecast(t *testing.T) {
	mux := setupMux()

	t.Run("preserves order", func(t *testing.T) {
		body := `{"observations":[
			{"temperature":5,"humidity":40},
			{"temperature":20,"humidity":72},
			{"temperature":12,"humidity":60}
		]}`
		req := httptest.NewRequest("POST", "/risk/forecast", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got risk.ForecastResult
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}

		want := []risk.Level{risk.Low, risk.High, risk.Medium}
		if len(got.Assessments) != len(want) {
			t.Fatalf("assessments = %d, want %d", len(got.Assessments), len(want))
		}
		for i, level := range want {
			if got.Assessments[i].RiskLevel != level {
				t.Errorf("assessments[%d] = %s, want %s", i, got.Assessments[i].RiskLevel, level)
			}
		}
		if got.Highest != risk.High {
			t.Errorf("highest = %s, want High", got.Highest)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/risk/forecast", strings.NewReader(`{"observations":[]}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects too many", func(t *testing.T) {
		obs := make([]risk.Observation, risk.MaxObservations+1)
		for i := range obs {
			obs[i] = risk.Observation{Temperature: ptr(20), Humidity: ptr(50)}
		}
		data, _ := json.Marshal(risk.ForecastRequest{Observations: obs})

		req := httptest.NewRequest("POST", "/risk/forecast", strings.NewReader(string(data)))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		bodies := []string{
			`{"observations":[{}]}`,
			`{"observations":[{"temperature":20,"humidity":50},{"temperature":20}]}`,
			`{"observations":[{"humidity":50}]}`,
		}
		for _, body := range bodies {
			req := httptest.NewRequest("POST", "/risk/forecast", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", body, rec.Code)
			}
		}
	})

	t.Run("rejects invalid observation", func(t *testing.T) {
		body := `{"observations":[{"temperature":20,"humidity":50},{"temperature":20,"humidity":-5}]}`
		req := httptest.NewRequest("POST", "/risk/forecast", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHighest(t *testing.T) {
	tests := []struct {
		name   string
		levels []risk.Level
		want   risk.Level
	}{
		{"empty", nil, risk.Low},
		{"all low", []risk.Level{risk.Low, risk.Low}, risk.Low},
		{"medium wins over low", []risk.Level{risk.Low, risk.Medium}, risk.Medium},
		{"high wins", []risk.Level{risk.Medium, risk.High, risk.Low}, risk.High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var as []risk.Assessment
			for _, l := range tt.levels {
				as = append(as, risk.Assessment{RiskLevel: l})
			}
			if got := risk.Highest(as); got != tt.want {
				t.Errorf("Highest = %s, want %s", got, tt.want)
			}
		})
	}
}
