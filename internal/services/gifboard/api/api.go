// Package api serves the greeting and data endpoints.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/louisbranch/gifboard/internal/services/gifboard/catalog"
	"github.com/louisbranch/gifboard/internal/services/gifboard/platform/httpx"
)

// Route patterns mounted by Register.
const (
	HelloPath = "/api/hello"
	DataPath  = "/api/data"
)

// DefaultName is greeted when the request carries no name.
const DefaultName = "stranger"

// Register mounts the API routes on mux.
func Register(mux *http.ServeMux, doc *catalog.Document) error {
	if mux == nil {
		return errors.New("api mux is required")
	}
	if doc == nil {
		return errors.New("catalog document is required")
	}
	mux.HandleFunc("GET "+HelloPath, Hello)
	mux.Handle("GET "+DataPath, Data(doc))
	return nil
}

// Hello greets the optional name query parameter.
func Hello(w http.ResponseWriter, r *http.Request) {
	if err := httpx.WriteText(w, http.StatusOK, Greeting(r.URL.Query().Get("name"))); err != nil {
		log.Printf("write hello response: %v", err)
	}
}

// Greeting builds the hello text, substituting DefaultName for an empty name.
func Greeting(name string) string {
	if name == "" {
		name = DefaultName
	}
	return "hello " + name
}

// Data writes doc verbatim.
func Data(doc *catalog.Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if err := httpx.WriteJSONBytes(w, http.StatusOK, doc); err != nil {
			log.Printf("write data response: %v", err)
		}
	})
}
