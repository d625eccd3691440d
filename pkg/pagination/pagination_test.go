package pagination_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/canopy/pkg/pagination"
	"github.com/JaimeStill/canopy/pkg/query"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("got (%d, %d), want (20, 100)", cfg.DefaultPageSize, cfg.MaxPageSize)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "10")
		t.Setenv("TEST_MAX_PAGE", "50")

		cfg := pagination.Config{}
		err := cfg.Finalize(&pagination.ConfigEnv{
			DefaultPageSize: "TEST_PAGE_SIZE",
			MaxPageSize:     "TEST_MAX_PAGE",
		})
		if err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 10 || cfg.MaxPageSize != 50 {
			t.Errorf("got (%d, %d), want (10, 50)", cfg.DefaultPageSize, cfg.MaxPageSize)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		err := cfg.Finalize(nil)
		if err == nil || !strings.Contains(err.Error(), "cannot exceed") {
			t.Errorf("error = %v, want default/max violation", err)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := defaultConfig()
	base.Merge(&pagination.Config{DefaultPageSize: 50})

	if base.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", base.DefaultPageSize)
	}
	if base.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", base.MaxPageSize)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", pagination.PageRequest{}, 1, 20},
		{"negative page corrected", pagination.PageRequest{Page: -1, PageSize: 10}, 1, 10},
		{"page size clamped to max", pagination.PageRequest{Page: 1, PageSize: 500}, 1, 100},
		{"valid values preserved", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(defaultConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 10}
	if got := req.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"page":      {"2"},
			"page_size": {"15"},
			"search":    {"blight"},
			"sort":      {"DiseaseName,-CreatedAt"},
		}

		req := pagination.PageRequestFromQuery(values, defaultConfig())

		if req.Page != 2 || req.PageSize != 15 {
			t.Errorf("page = (%d, %d), want (2, 15)", req.Page, req.PageSize)
		}
		if req.Search == nil || *req.Search != "blight" {
			t.Errorf("Search = %v, want blight", req.Search)
		}
		want := []query.SortField{
			{Field: "DiseaseName"},
			{Field: "CreatedAt", Descending: true},
		}
		if len(req.Sort) != len(want) {
			t.Fatalf("Sort length = %d, want %d", len(req.Sort), len(want))
		}
		for i := range want {
			if req.Sort[i] != want[i] {
				t.Errorf("Sort[%d] = %v, want %v", i, req.Sort[i], want[i])
			}
		}
	})

	t.Run("empty params get defaults", func(t *testing.T) {
		req := pagination.PageRequestFromQuery(url.Values{}, defaultConfig())
		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("page = (%d, %d), want (1, 20)", req.Page, req.PageSize)
		}
		if req.Search != nil {
			t.Errorf("Search = %v, want nil", req.Search)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		wantTotalPages int
	}{
		{"exact division", 100, 5},
		{"remainder", 101, 6},
		{"single page", 5, 1},
		{"empty result", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, 1, 20)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Total != tt.total {
				t.Errorf("Total = %d, want %d", result.Total, tt.total)
			}
		})
	}

	if got := pagination.NewPageResult[string](nil, 0, 1, 20); got.Data == nil {
		t.Error("nil data should become an empty slice")
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string form", `"DiseaseName,-CreatedAt"`},
		{"array form", `[{"Field":"DiseaseName","Descending":false},{"Field":"CreatedAt","Descending":true}]`},
	}

	want := []query.SortField{
		{Field: "DiseaseName"},
		{Field: "CreatedAt", Descending: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sf pagination.SortFields
			if err := json.Unmarshal([]byte(tt.input), &sf); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if len(sf) != len(want) {
				t.Fatalf("length = %d, want %d", len(sf), len(want))
			}
			for i := range want {
				if sf[i] != want[i] {
					t.Errorf("sf[%d] = %v, want %v", i, sf[i], want[i])
				}
			}
		})
	}
}
