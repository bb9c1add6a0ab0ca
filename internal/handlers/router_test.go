package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xelth-com/scanordergo/internal/cart"
	"github.com/xelth-com/scanordergo/internal/catalog"
	"github.com/xelth-com/scanordergo/internal/config"
	"github.com/xelth-com/scanordergo/internal/utils"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	cfg := &config.Config{Port: "0", JWTSecret: testSecret}
	hub := websocket.NewHub()
	go hub.Run()
	return NewRouter(cfg, nil, catalog.NewStore(), cart.NewLedger(), nil, hub, nil)
}

func authedRequest(t *testing.T, method, target string, body *bytes.Buffer) *http.Request {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	token, err := utils.GenerateToken("test-user", "tester", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func uploadRequest(t *testing.T, fileName, content, aiFlag string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("part write failed: %v", err)
	}
	if aiFlag != "" {
		mw.WriteField("ai", aiFlag)
	}
	mw.Close()

	req := authedRequest(t, "POST", "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

const samplePriceList = "Marchio;Codice;EAN;Descrizione;Conf;Prezzo\n" +
	"BTICINO;L4411;8005543400111;Interruttore unipolare;1;4,85\n" +
	"VIMAR;14001;8007352140011;Deviatore bianco;10;3,10\n"

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIRejectsMissingToken(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/cart", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestImportThenScanFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "listino.csv", samplePriceList, ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("import: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var summary BatchSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("import response decode failed: %v", err)
	}
	if summary.ProductCount != 2 {
		t.Fatalf("expected 2 products, got %d", summary.ProductCount)
	}

	// Scan by barcode
	body := bytes.NewBufferString(`{"code":"8005543400111"}`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/scan", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("scan: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var scanResp ScanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &scanResp); err != nil {
		t.Fatalf("scan response decode failed: %v", err)
	}
	if !scanResp.Known {
		t.Error("expected a known product for an imported barcode")
	}
	if scanResp.Product.Code != "L4411" {
		t.Errorf("expected code L4411, got %q", scanResp.Product.Code)
	}
	if scanResp.Line.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", scanResp.Line.Quantity)
	}
	if scanResp.Cart.TotalQuantity != 1 {
		t.Errorf("expected cart total quantity 1, got %d", scanResp.Cart.TotalQuantity)
	}
}

func TestScanUnknownCodeAddsPlaceholder(t *testing.T) {
	router := newTestRouter(t)

	body := bytes.NewBufferString(`{"code":"XYZ-404"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/scan", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var scanResp ScanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &scanResp); err != nil {
		t.Fatalf("scan response decode failed: %v", err)
	}
	if scanResp.Known {
		t.Error("expected unknown product")
	}
	if scanResp.Product.Code != "XYZ-404" {
		t.Errorf("placeholder should carry the scanned code, got %q", scanResp.Product.Code)
	}
	if scanResp.Product.Price != 0 {
		t.Errorf("placeholder price should be 0, got %f", scanResp.Product.Price)
	}
}

func TestScanRejectsEmptyCode(t *testing.T) {
	router := newTestRouter(t)

	body := bytes.NewBufferString(`{"code":"   "}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/scan", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdjustAndClearCart(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "listino.csv", samplePriceList, ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("import failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/scan", bytes.NewBufferString(`{"code":"L4411"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("scan failed: %d", rec.Code)
	}
	var scanResp ScanResponse
	json.Unmarshal(rec.Body.Bytes(), &scanResp)
	key := scanResp.Line.Key

	// Bump quantity by 4
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST",
		fmt.Sprintf("/api/cart/%s/adjust", key), bytes.NewBufferString(`{"delta":4}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("adjust: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"quantity":5`) {
		t.Errorf("expected quantity 5 in response, got %s", rec.Body.String())
	}

	// Unknown key is a 404
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/cart/nope/adjust", bytes.NewBufferString(`{"delta":1}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown line, got %d", rec.Code)
	}

	// Driving quantity to zero removes the line
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST",
		fmt.Sprintf("/api/cart/%s/adjust", key), bytes.NewBufferString(`{"delta":-5}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("adjust to zero: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"removed":true`) {
		t.Errorf("expected removed=true, got %s", rec.Body.String())
	}

	// Clear on an already empty cart is fine
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "DELETE", "/api/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
}

func TestDeleteBatchDropsItsProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "listino.csv", samplePriceList, ""))
	var summary BatchSummary
	json.Unmarshal(rec.Body.Bytes(), &summary)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "DELETE", "/api/batches/"+summary.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	// The barcode no longer resolves
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/scan", bytes.NewBufferString(`{"code":"8005543400111"}`)))
	var scanResp ScanResponse
	json.Unmarshal(rec.Body.Bytes(), &scanResp)
	if scanResp.Known {
		t.Error("deleted batch should not resolve scans anymore")
	}

	// Deleting again is a 404
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "DELETE", "/api/batches/"+summary.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestGetBatchSearch(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "listino.csv", samplePriceList, ""))
	var summary BatchSummary
	json.Unmarshal(rec.Body.Bytes(), &summary)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "GET", "/api/batches/"+summary.ID+"?q=vimar", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Products []struct {
		} `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(payload.Products) != 1 {
		t.Fatalf("expected 1 matching product, got %d", len(payload.Products))
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "note.txt", "just some words\nno structure here\n", ""))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unparseable upload, got %d", rec.Code)
	}
}

func TestExportsRequireLines(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/export/csv", "/api/export/mexal", "/api/export/pdf", "/api/export/share"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "GET", path, nil))
		if rec.Code != http.StatusConflict {
			t.Errorf("%s: expected 409 on empty cart, got %d", path, rec.Code)
		}
	}
}

func TestExportCSVAfterScan(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "listino.csv", samplePriceList, ""))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/api/scan", bytes.NewBufferString(`{"code":"L4411"}`)))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "GET", "/api/export/csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "L4411") {
		t.Errorf("export missing scanned line: %s", rec.Body.String())
	}
}
