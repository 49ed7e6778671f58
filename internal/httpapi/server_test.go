package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postJSON(t *testing.T, mux *http.ServeMux, path, data string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(request{Data: data})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleTranspilationSuccess(t *testing.T) {
	mux := NewMux()
	rec := postJSON(t, mux, "/api/v1/transpilation", "5.")

	var resp response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("Status = %q, want success", resp.Status)
	}
	if resp.Data == nil || !strings.Contains(resp.Data.TranspilationResult, "li") {
		t.Errorf("Data = %+v, want TranspilationResult containing an li instruction", resp.Data)
	}
	if resp.Data.ExecutionResult != "" {
		t.Errorf("transpilation-only endpoint should not run the simulator, got ExecutionResult=%q", resp.Data.ExecutionResult)
	}
}

func TestHandleTranspilationFailureStillReturnsSuccessStatus(t *testing.T) {
	// The HTTP status reflects whether the request was well-formed,
	// not whether the program transpiled cleanly: a bad Cat program
	// still gets a 200 with the rendered diagnostics.
	mux := NewMux()
	rec := postJSON(t, mux, "/api/v1/transpilation", "let := 1.")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Data.TranspilationResult, "error:") {
		t.Errorf("expected rendered diagnostics in TranspilationResult, got %q", resp.Data.TranspilationResult)
	}
}

func TestDecodeRequestRejectsMalformedBody(t *testing.T) {
	mux := NewMux()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transpilation", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTranspilationAndExecutionRoutesToExecution(t *testing.T) {
	mux := NewMux()
	rec := postJSON(t, mux, "/api/v1/transpilation_and_execution", "5.")

	var resp response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data == nil || resp.Data.TranspilationResult == "" {
		t.Fatal("expected a non-empty transpilation result")
	}
}
