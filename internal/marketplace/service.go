package marketplace

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/escrow"
	"github.com/feral-file/ff-marketplace/internal/events"
	"github.com/feral-file/ff-marketplace/internal/guard"
	"github.com/feral-file/ff-marketplace/internal/ledger"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/sale"
	"github.com/feral-file/ff-marketplace/internal/types"
)

// Service is the public operation surface of the marketplace. The caller identity of every
// state-changing operation is supplied by the transport (for the REST API, the JWT subject).
//
//go:generate mockgen -source=service.go -destination=../mocks/marketplace_service.go -package=mocks -mock_names=Service=MockMarketplaceService
type Service interface {
	// Mint creates an asset; the caller becomes its creator and owner
	Mint(ctx context.Context, caller common.Address, contentRef string, royaltyRate domain.RoyaltyRate) (*domain.Asset, error)
	// List places an asset owned by the caller into custody
	List(ctx context.Context, caller common.Address, id domain.AssetID, askPrice, feePaid *big.Int) error
	// Cancel withdraws a listing made by the caller
	Cancel(ctx context.Context, caller common.Address, id domain.AssetID) error
	// Buy purchases a listed asset; the caller becomes its owner
	Buy(ctx context.Context, caller common.Address, id domain.AssetID, payment *big.Int) (*domain.SaleRecord, error)

	OwnerOf(ctx context.Context, id domain.AssetID) (common.Address, error)
	ContentRefOf(ctx context.Context, id domain.AssetID) (string, error)
	Asset(ctx context.Context, id domain.AssetID) (*domain.Asset, error)
	AllAssets(ctx context.Context) ([]*domain.Asset, error)
	HistoryOf(ctx context.Context, id domain.AssetID) ([]*domain.SaleRecord, error)
	BalanceOf(ctx context.Context, identity common.Address) (uint64, error)
	// ListingFee returns the flat fee a seller pays to list
	ListingFee() *big.Int
}

type service struct {
	registry   registry.Registry
	escrow     escrow.Escrow
	ledger     ledger.Ledger
	engine     sale.Engine
	dispatcher events.Dispatcher
	guard      *guard.Guard
}

// NewService creates the marketplace service. g must be the guard the components were built with.
func NewService(
	reg registry.Registry,
	esc escrow.Escrow,
	led ledger.Ledger,
	engine sale.Engine,
	dispatcher events.Dispatcher,
	g *guard.Guard,
) Service {
	return &service{
		registry:   reg,
		escrow:     esc,
		ledger:     led,
		engine:     engine,
		dispatcher: dispatcher,
		guard:      g,
	}
}

// emit dispatches event once the write it describes is final. Events of writes made
// reentrantly inside another call wait for that call and are dropped if it fails.
func (s *service) emit(ctx context.Context, event *domain.MarketEvent) {
	guard.OnCommit(ctx, func() {
		s.dispatcher.Dispatch(ctx, event)
	})
}

func (s *service) Mint(ctx context.Context, caller common.Address, contentRef string, royaltyRate domain.RoyaltyRate) (*domain.Asset, error) {
	id, err := s.registry.Mint(ctx, contentRef, caller, royaltyRate)
	if err != nil {
		return nil, err
	}

	asset, err := s.Asset(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, &domain.MarketEvent{
		Type:    domain.EventTypeMinted,
		AssetID: id,
		Actor:   caller.Hex(),
		Owner:   caller.Hex(),
	})

	return asset, nil
}

func (s *service) List(ctx context.Context, caller common.Address, id domain.AssetID, askPrice, feePaid *big.Int) error {
	if err := s.escrow.List(ctx, id, caller, askPrice, feePaid); err != nil {
		return err
	}

	s.emit(ctx, &domain.MarketEvent{
		Type:    domain.EventTypeListed,
		AssetID: id,
		Actor:   caller.Hex(),
		Owner:   s.escrow.Custody().Hex(),
		Price:   types.AmountString(askPrice),
	})

	return nil
}

func (s *service) Cancel(ctx context.Context, caller common.Address, id domain.AssetID) error {
	if err := s.escrow.Cancel(ctx, id, caller); err != nil {
		return err
	}

	s.emit(ctx, &domain.MarketEvent{
		Type:    domain.EventTypeUnlisted,
		AssetID: id,
		Actor:   caller.Hex(),
		Owner:   caller.Hex(),
	})

	return nil
}

func (s *service) Buy(ctx context.Context, caller common.Address, id domain.AssetID, payment *big.Int) (*domain.SaleRecord, error) {
	record, err := s.engine.ExecuteSale(ctx, id, caller, payment)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, &domain.MarketEvent{
		Type:      domain.EventTypeSold,
		AssetID:   id,
		Actor:     caller.Hex(),
		Owner:     caller.Hex(),
		Price:     types.AmountString(record.Price),
		Royalty:   types.AmountString(record.Royalty),
		Sequence:  record.Sequence,
		Receipt:   record.Receipt.Hex(),
		Timestamp: record.Timestamp,
	})

	return record, nil
}

func (s *service) OwnerOf(ctx context.Context, id domain.AssetID) (common.Address, error) {
	defer s.guard.Read(ctx)()
	return s.registry.OwnerOf(ctx, id)
}

func (s *service) ContentRefOf(ctx context.Context, id domain.AssetID) (string, error) {
	defer s.guard.Read(ctx)()
	return s.registry.ContentRefOf(ctx, id)
}

func (s *service) Asset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	defer s.guard.Read(ctx)()
	return s.registry.Asset(ctx, id)
}

func (s *service) AllAssets(ctx context.Context) ([]*domain.Asset, error) {
	defer s.guard.Read(ctx)()
	return s.ledger.AllAssets(ctx)
}

func (s *service) HistoryOf(ctx context.Context, id domain.AssetID) ([]*domain.SaleRecord, error) {
	defer s.guard.Read(ctx)()
	return s.ledger.HistoryOf(ctx, id)
}

func (s *service) BalanceOf(ctx context.Context, identity common.Address) (uint64, error) {
	defer s.guard.Read(ctx)()
	return s.registry.BalanceOf(ctx, identity)
}

func (s *service) ListingFee() *big.Int {
	return s.escrow.ListingFee()
}
