// internal/component/registry.go
//
// Component contract and mounting.
//
// Each concrete component lives under components/<name>, is constructed
// explicitly in cmd/web with the Deps it needs, and is handed to Mount.
// Nothing registers itself at init time, so the set of live routes is
// exactly what the wiring code lists.

package component

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Component contract.
//
// Routes() should add BOTH page and API endpoints to r, e.g:
//
//	r.Post("/donate", c.donateHTML)
//	r.Post("/api/registrations", c.donateJSON)
//
// Components share one router, so patterns must not collide.
type Component interface {
	Name() string
	Routes(r chi.Router)
}

// Mount adds every component's routes to r, in order.
func Mount(r chi.Router, comps ...Component) {
	for _, c := range comps {
		c.Routes(r)
		zap.S().Debugw("component mounted", "component", c.Name())
	}
}
