package api

import (
	"fmt"
	"net/http"

	"github.com/Tenchi88/flask-shop/internal/api/handlers"
	"github.com/Tenchi88/flask-shop/internal/api/middleware"
	service "github.com/Tenchi88/flask-shop/internal/services"
)

// AddResource wires one entity service to its two endpoints under the given
// API version: the collection endpoint (GET list, POST create) and the item
// endpoint (GET, PUT, PATCH, DELETE). Purely declarative, no runtime state.
func AddResource(mux *http.ServeMux, version int, collection string, svc service.ResourceService, gate *middleware.Gate) {
	h := handlers.NewResourceHandler(svc)

	guard := func(next http.HandlerFunc) http.HandlerFunc {
		if gate == nil {
			return next
		}

		return gate.Guard(next)
	}

	base := fmt.Sprintf("/v%d/%s/", version, collection)
	item := base + "{id}/"

	mux.HandleFunc("GET "+base+"{$}", guard(h.List()))
	mux.HandleFunc("POST "+base+"{$}", guard(h.Create()))
	mux.HandleFunc("GET "+item+"{$}", guard(h.Get()))
	mux.HandleFunc("PUT "+item+"{$}", guard(h.Replace()))
	mux.HandleFunc("PATCH "+item+"{$}", guard(h.Update()))
	mux.HandleFunc("DELETE "+item+"{$}", guard(h.Delete()))
}
