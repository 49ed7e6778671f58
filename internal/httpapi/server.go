// Package httpapi exposes the transpiler and the external simulator
// over HTTP. It is built directly on net/http's ServeMux: three fixed
// POST routes need nothing a third-party router would add (see
// DESIGN.md).
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/aloussase/cat/internal/driver"
	"github.com/aloussase/cat/internal/runner"
)

// request is the shared JSON body shape for all three endpoints.
type request struct {
	Data string `json:"data"`
}

// response is the shared JSON response envelope. Fields are omitted
// when not applicable to the endpoint or outcome.
type response struct {
	Status string        `json:"status"`
	Data   *responseData `json:"data,omitempty"`
}

type responseData struct {
	TranspilationResult string `json:"transpilation_result"`
	ExecutionResult     string `json:"execution_result,omitempty"`
}

// NewMux builds the ServeMux backing the three endpoints: transpilation,
// execution, and both combined.
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/transpilation", handleTranspilation)
	mux.HandleFunc("POST /api/v1/execution", handleExecution)
	mux.HandleFunc("POST /api/v1/transpilation_and_execution", handleBoth)
	return mux
}

// ListenAndServe starts the HTTP surface on the PORT environment
// variable's port, defaulting to 8080.
func ListenAndServe() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Printf("httpapi: listening on %s", addr)
	return http.ListenAndServe(addr, NewMux())
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (request, bool) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(response{Status: "error"})
		return request{}, false
	}
	return req, true
}

func handleTranspilation(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	out, _ := driver.Transpile(req.Data, driver.ReplFile)

	writeJSON(w, response{
		Status: "success",
		Data:   &responseData{TranspilationResult: out},
	})
}

func handleExecution(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	out, success := driver.Transpile(req.Data, driver.ReplFile)

	data := &responseData{TranspilationResult: out}
	if success {
		data.ExecutionResult = runner.Execute(out)
	}

	writeJSON(w, response{Status: "success", Data: data})
}

func handleBoth(w http.ResponseWriter, r *http.Request) {
	handleExecution(w, r)
}

func writeJSON(w http.ResponseWriter, body response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}
