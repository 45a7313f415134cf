package marketplace

import (
	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/escrow"
	"github.com/feral-file/ff-marketplace/internal/events"
	"github.com/feral-file/ff-marketplace/internal/guard"
	"github.com/feral-file/ff-marketplace/internal/ledger"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/sale"
	"github.com/feral-file/ff-marketplace/internal/settlement"
	"github.com/feral-file/ff-marketplace/internal/store"
)

// Dependencies are the collaborators the marketplace core is assembled from
type Dependencies struct {
	Store      store.Store
	Settlement settlement.Driver
	Dispatcher events.Dispatcher
	Clock      adapter.Clock
	JSON       adapter.JSON
	JCS        adapter.JCS
	Escrow     escrow.Config
}

// New assembles registry, escrow, ledger and sale engine around one write guard
func New(deps Dependencies) Service {
	g := guard.New()

	reg := registry.NewRegistry(deps.Store, g, deps.Clock)
	esc := escrow.NewEscrow(deps.Store, reg, deps.Settlement, g, deps.Clock, deps.Escrow)
	led := ledger.NewLedger(deps.Store, deps.JSON, deps.JCS)
	engine := sale.NewEngine(deps.Store, reg, esc, led, deps.Settlement, g, deps.Clock)

	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewDiscard(deps.Clock)
	}

	return NewService(reg, esc, led, engine, dispatcher, g)
}
