package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/icsuite/wireplan/internal/catalog"
	"github.com/icsuite/wireplan/internal/config"
	"github.com/icsuite/wireplan/internal/engine"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cat, err := catalog.New()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{HTTPPort: 0},
		Engine: config.EngineConfig{SparePercent: 0.20, Vendor: "Yokogawa"},
		Tags:   engine.DefaultTagConfig(),
	}

	return NewServer(cfg, cat, zap.NewNop())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wireplan")
}

func TestSummarizeIOList(t *testing.T) {
	body := map[string]any{
		"instruments": []map[string]string{
			{"tag": "PP01-601-TIT0001", "type": "TIT", "area": "601"},
			{"tag": "PP01-601-ZSC0001", "type": "ZSC", "area": "601"},
		},
	}

	rec := doJSON(t, testServer(t), http.MethodPost, "/api/v1/iolist/summary", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Summary engine.SignalSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.AnalogCount)
	assert.Equal(t, 1, resp.Summary.DigitalCount)
	assert.Equal(t, 2, resp.Summary.TotalJBsNeeded)
}

func TestSummarizeIOListRejectsEmptyBody(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/api/v1/iolist/summary", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllocateJunctionBoxes(t *testing.T) {
	instruments := make([]map[string]string, 0, 4)
	for _, tag := range []string{"TIT0001", "PIT0001", "FIT0001", "LIT0001"} {
		instruments = append(instruments, map[string]string{
			"tag": "PP01-601-" + tag, "area": "601",
		})
	}

	rec := doJSON(t, testServer(t), http.MethodPost, "/api/v1/allocations/junction-boxes", map[string]any{
		"instruments": instruments,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RunID       string            `json:"run_id"`
		CabinetTag  string            `json:"cabinet_tag"`
		Assignments map[string]string `json:"assignments"`
		Analog      struct {
			Cables []engine.CableSizingResult `json:"cables"`
		} `json:"analog"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "PP01-601-MC001", resp.CabinetTag)
	assert.Len(t, resp.Assignments, 4)
	assert.Equal(t, "PP01-601-IAJB0001", resp.Assignments["PP01-601-TIT0001"])
	require.Len(t, resp.Analog.Cables, 1)
	assert.Equal(t, 5, resp.Analog.Cables[0].MultipairCable.PairCount)
	assert.Equal(t, "5PRx1.0mm²/ISP-OS", resp.Analog.Cables[0].MultipairCable.Specification)
}

func TestAllocateJunctionBoxesRejectsBadSize(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/api/v1/allocations/junction-boxes", map[string]any{
		"instruments": []map[string]string{{"tag": "PP01-601-TIT0001"}},
		"jb_size":     "HUGE",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllocateIOCards(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/api/v1/allocations/io-cards", map[string]any{
		"instruments": []map[string]string{
			{"tag": "PP01-601-TIT0001", "type": "TIT", "area": "601"},
			{"tag": "PP01-601-TZT0001", "type": "TZT", "area": "601"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Vendor     string `json:"vendor"`
		Allocation struct {
			DCSCards []json.RawMessage `json:"dcs_cards"`
			SISCards []json.RawMessage `json:"sis_cards"`
		} `json:"allocation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Yokogawa", resp.Vendor)
	assert.Len(t, resp.Allocation.DCSCards, 1)
	assert.Len(t, resp.Allocation.SISCards, 1)
}

func TestAllocateIOCardsUnknownVendor(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/api/v1/allocations/io-cards", map[string]any{
		"instruments": []map[string]string{{"tag": "PP01-601-TIT0001", "type": "TIT"}},
		"vendor":      "Siemens",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "vendor_unsupported")
}

func TestListVendors(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/api/v1/catalog/vendors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Yokogawa")
}

func TestGetVendorModules(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/api/v1/catalog/vendors/Yokogawa", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAI143-H00")

	rec = doJSON(t, testServer(t), http.MethodGet, "/api/v1/catalog/vendors/Siemens", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
