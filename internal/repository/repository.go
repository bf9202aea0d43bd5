package repository

import (
	"fmt"
	"sync"

	"reverse-auction-coordinator/internal/auctionerrors"
	model "reverse-auction-coordinator/internal/models"
)

// AuctionStore defines the persistence boundary of the coordinator.
// ReplaceLotBids is the atomic read-modify-write unit required by the
// ledger: a lot's full bid set is swapped in one call, never patched
// row by row.
type AuctionStore interface {
	AddAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	SetAuctionStatus(auctionID string, from, to model.AuctionStatus) error

	AddLot(lot model.Lot) error
	GetLot(lotID string) (model.Lot, error)
	LotsByAuction(auctionID string) ([]model.Lot, error)

	GetBid(bidID string) (model.Bid, error)
	BidsByLot(lotID string) ([]model.Bid, error)
	ReplaceLotBids(lotID string, bids []model.Bid) error
	BidsBySupplier(supplierID string) ([]model.Bid, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of
// AuctionStore, swappable for a transactional store without touching
// ranking logic.
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction // key: auctionID
	lots     map[string]model.Lot     // key: lotID
	lotBids  map[string][]model.Bid   // key: lotID -> full bid set (Active and Withdrawn)
	bidLot   map[string]string        // key: bidID -> lotID
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
		lots:     make(map[string]model.Lot),
		lotBids:  make(map[string][]model.Bid),
		bidLot:   make(map[string]string),
	}
}

// AddAuction registers an auction at scheduling time
func (s *MemoryStore) AddAuction(a model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[a.AuctionID] = a
	return nil
}

// GetAuction returns an auction by id
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// SetAuctionStatus persists a lifecycle transition. The write is
// conditional on the stored status still being from, so two racing
// transitions validated against the same read cannot both apply.
func (s *MemoryStore) SetAuctionStatus(auctionID string, from, to model.AuctionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("set status for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != from {
		return fmt.Errorf("set status for auction %s: stored %s, expected %s: %w",
			auctionID, a.Status, from, auctionerrors.ErrInvalidTransition)
	}
	a.Status = to
	s.auctions[auctionID] = a
	return nil
}

// AddLot registers a lot under its parent auction
func (s *MemoryStore) AddLot(lot model.Lot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[lot.AuctionID]; !ok {
		return fmt.Errorf("add lot %s: %w", lot.LotID, auctionerrors.ErrAuctionNotFound)
	}
	s.lots[lot.LotID] = lot
	return nil
}

// GetLot returns a lot by id
func (s *MemoryStore) GetLot(lotID string) (model.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lot, ok := s.lots[lotID]
	if !ok {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return lot, nil
}

// LotsByAuction returns all lots belonging to an auction
func (s *MemoryStore) LotsByAuction(auctionID string) ([]model.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("lots for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	lots := make([]model.Lot, 0)
	for _, lot := range s.lots {
		if lot.AuctionID == auctionID {
			lots = append(lots, lot)
		}
	}
	return lots, nil
}

// GetBid returns a bid by id
func (s *MemoryStore) GetBid(bidID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lotID, ok := s.bidLot[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	for _, b := range s.lotBids[lotID] {
		if b.BidID == bidID {
			return b, nil
		}
	}
	return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
}

// BidsByLot returns a copy of the full bid set for a lot
func (s *MemoryStore) BidsByLot(lotID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lots[lotID]; !ok {
		return nil, fmt.Errorf("bids for lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return append([]model.Bid(nil), s.lotBids[lotID]...), nil
}

// ReplaceLotBids atomically swaps the full bid set of a lot
func (s *MemoryStore) ReplaceLotBids(lotID string, bids []model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lots[lotID]; !ok {
		return fmt.Errorf("replace bids for lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}

	for _, b := range s.lotBids[lotID] {
		delete(s.bidLot, b.BidID)
	}
	s.lotBids[lotID] = append([]model.Bid(nil), bids...)
	for _, b := range bids {
		s.bidLot[b.BidID] = lotID
	}
	return nil
}

// BidsBySupplier returns the supplier's Active bids across lots
func (s *MemoryStore) BidsBySupplier(supplierID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := make([]model.Bid, 0)
	for _, lotBids := range s.lotBids {
		for _, b := range lotBids {
			if b.SupplierID == supplierID && b.Status == model.BidActive {
				bids = append(bids, b)
			}
		}
	}
	return bids, nil
}
