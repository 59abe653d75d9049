package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	auction "silent-auction/internal/auctionService"
	"silent-auction/internal/events"
	"silent-auction/internal/identity"
	"silent-auction/internal/ledger"
	"silent-auction/internal/server"
)

// SetupTestRouter initializes the full stack on an in-memory ledger: real
// service, real visibility checks, header-based identity resolution and an
// event hub.
func SetupTestRouter(t *testing.T) (*gin.Engine, *events.Hub) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	store := ledger.NewMemoryStore()
	hub := events.NewHub()
	t.Cleanup(hub.Close)

	svc := auction.NewAuctionService(store, hub)
	router := server.SetupRouter(svc, identity.HeaderResolver{}, hub)
	return router, hub
}

// ExecuteRequestAs executes an HTTP request as the given caller and parses the
// response envelope.
func ExecuteRequestAs(t *testing.T, router *gin.Engine, caller, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(identity.DefaultIdentityHeader, caller)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Data extracts the data object from a response envelope.
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}

// DataList extracts the data array from a response envelope.
func DataList(t *testing.T, resp map[string]any) []any {
	t.Helper()
	data, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("response has no data array: %v", resp)
	}
	return data
}
