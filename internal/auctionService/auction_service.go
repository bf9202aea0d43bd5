package auction

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reverse-auction-coordinator/internal/auctionerrors"
	"reverse-auction-coordinator/internal/broadcast"
	"reverse-auction-coordinator/internal/clock"
	"reverse-auction-coordinator/internal/currency"
	"reverse-auction-coordinator/internal/ledger"
	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/internal/repository"
	"reverse-auction-coordinator/internal/statemachine"
	"reverse-auction-coordinator/utils"
)

// DefaultTickInterval is the cadence of the per-auction timer task.
const DefaultTickInterval = time.Second

// StatusPayload is the body of a StatusChanged room event.
type StatusPayload struct {
	Status           model.AuctionStatus `json:"status"`
	RemainingSeconds int64               `json:"remaining_seconds"`
}

// ExtensionPayload is the body of a ClockExtended room event.
type ExtensionPayload struct {
	RemainingSeconds int64 `json:"remaining_seconds"`
}

// AuctionService coordinates the state machine, the per-auction clock,
// the bid ledger and the event broadcaster. The timer task it runs per
// auction is the only writer of auction status and remaining time.
type AuctionService struct {
	store        repository.AuctionStore
	ledger       *ledger.Ledger
	hub          *broadcast.Hub
	timeSource   clock.TimeSource
	tickInterval time.Duration

	mu      sync.Mutex
	clocks  map[string]*clock.AuctionClock // key: auctionID
	cancels map[string]context.CancelFunc  // key: auctionID

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

// NewAuctionService wires the core. The service registers itself as the
// ledger's top-bid signal so accepted rank-1 bids feed extension
// evaluation without a lock spanning ledger and clock.
func NewAuctionService(store repository.AuctionStore, rates currency.RateProvider, ts clock.TimeSource, tickInterval, lockWait time.Duration) *AuctionService {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	svc := &AuctionService{
		store:        store,
		timeSource:   ts,
		tickInterval: tickInterval,
		clocks:       make(map[string]*clock.AuctionClock),
		cancels:      make(map[string]context.CancelFunc),
		rootCtx:      ctx,
		rootCancel:   cancel,
	}
	svc.hub = broadcast.NewHub(ts.Now)

	opts := []ledger.Option{
		ledger.WithTopBidSignal(svc),
		ledger.WithEventSink(svc.hub),
	}
	if lockWait > 0 {
		opts = append(opts, ledger.WithLockWait(lockWait))
	}
	svc.ledger = ledger.NewLedger(store, rates, ts, opts...)
	return svc
}

// RegisterAuction stores a scheduled auction with its lots and starts
// its timer task. The auction always enters as Scheduled; activation is
// clock-driven at start time, never user-driven.
func (s *AuctionService) RegisterAuction(a model.Auction, lots []model.Lot) error {
	a.Status = model.StatusScheduled
	if err := s.store.AddAuction(a); err != nil {
		return fmt.Errorf("service: register auction %s: %w", a.AuctionID, err)
	}
	for _, lot := range lots {
		if err := s.store.AddLot(lot); err != nil {
			return fmt.Errorf("service: register lot %s: %w", lot.LotID, err)
		}
	}

	ctx, cancel := context.WithCancel(s.rootCtx)
	s.mu.Lock()
	s.clocks[a.AuctionID] = clock.NewAuctionClock(a)
	s.cancels[a.AuctionID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, a.AuctionID)
	return nil
}

// run is the recurring timer task for one auction. On exit the cancel
// entry is released; the clock stays registered for post-end queries.
func (s *AuctionService) run(ctx context.Context, auctionID string) {
	defer s.wg.Done()
	defer s.releaseTimer(auctionID)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := s.tick(auctionID); done {
				return
			}
		}
	}
}

// tick advances one auction: Scheduled auctions activate at start time,
// Active auctions end when the clock runs out. Remaining time is always
// recomputed from the authoritative deadline, so a missed tick heals
// itself. Returns true when the auction reached its terminal state.
func (s *AuctionService) tick(auctionID string) bool {
	now := s.timeSource.Now()
	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		utils.Error("service: tick lost its auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return true
	}
	clk := s.clockFor(auctionID)
	if clk == nil {
		return true
	}

	switch a.Status {
	case model.StatusScheduled:
		if !now.Before(a.StartTime) {
			if err := s.transition(a.AuctionID, a.Status, model.StatusActive, clk); err != nil {
				utils.Error("service: activation failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
			}
		}
	case model.StatusActive:
		if clk.Expired(now) {
			if err := s.transition(a.AuctionID, a.Status, model.StatusEnded, clk); err != nil {
				// Lost a race against an operator transition; the next
				// tick re-reads the fresh status.
				utils.Error("service: termination failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
				return false
			}
			return true
		}
	case model.StatusEnded:
		return true
	}
	return false
}

// transition applies a lifecycle change, drives the clock accordingly
// and broadcasts StatusChanged. The status write is conditional on the
// caller's observed status, so a transition racing another writer
// fails with ErrInvalidTransition instead of applying against a stale
// read. In particular, nothing can move an auction out of Ended.
func (s *AuctionService) transition(auctionID string, from, to model.AuctionStatus, clk *clock.AuctionClock) error {
	next, err := statemachine.Transition(from, to)
	if err != nil {
		return err
	}
	if err := s.store.SetAuctionStatus(auctionID, from, next); err != nil {
		return err
	}

	now := s.timeSource.Now()
	switch next {
	case model.StatusActive:
		if from == model.StatusPaused {
			clk.Resume(now)
		} else {
			clk.Start()
		}
	case model.StatusPaused:
		clk.Pause(now)
	case model.StatusEnded:
		clk.Stop()
	}

	remaining := clk.Remaining(s.timeSource.Now())
	s.hub.Publish(auctionID, model.EventStatusChanged, StatusPayload{
		Status:           next,
		RemainingSeconds: int64(remaining / time.Second),
	})
	utils.Info("service: auction status changed", map[string]any{
		"auction_id": auctionID,
		"from":       string(from),
		"to":         string(next),
		"remaining":  remaining.String(),
	})
	return nil
}

// PauseAuction freezes an Active auction. While paused the ledger
// rejects all mutations and the clock preserves its remainder.
func (s *AuctionService) PauseAuction(auctionID string) (model.AuctionStatus, error) {
	return s.operatorTransition(auctionID, model.StatusPaused)
}

// ResumeAuction continues a Paused auction from its frozen remainder.
func (s *AuctionService) ResumeAuction(auctionID string) (model.AuctionStatus, error) {
	return s.operatorTransition(auctionID, model.StatusActive)
}

// EndAuction force-terminates an auction ahead of its clock.
func (s *AuctionService) EndAuction(auctionID string) (model.AuctionStatus, error) {
	return s.operatorTransition(auctionID, model.StatusEnded)
}

func (s *AuctionService) operatorTransition(auctionID string, to model.AuctionStatus) (model.AuctionStatus, error) {
	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}
	clk := s.clockFor(auctionID)
	if clk == nil {
		return "", fmt.Errorf("service: clock for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err := s.transition(auctionID, a.Status, to, clk); err != nil {
		return a.Status, fmt.Errorf("service: %w", err)
	}
	return to, nil
}

// OnTopBidImproved is the ledger's asynchronous signal that a rank-1
// bid landed. Inside the extension window it stretches the clock and
// broadcasts ClockExtended.
func (s *AuctionService) OnTopBidImproved(auctionID string) {
	clk := s.clockFor(auctionID)
	if clk == nil {
		return
	}
	extended, remaining := clk.OnTopBidImproved(s.timeSource.Now())
	if !extended {
		return
	}
	s.hub.Publish(auctionID, model.EventClockExtended, ExtensionPayload{
		RemainingSeconds: int64(remaining / time.Second),
	})
	utils.Info("service: auction clock extended", map[string]any{
		"auction_id": auctionID,
		"remaining":  remaining.String(),
	})
}

// SubmitBid records a supplier's first bid on a lot.
func (s *AuctionService) SubmitBid(auctionID, lotID, supplierID string, components model.BidComponents) (model.Bid, error) {
	return s.ledger.SubmitBid(auctionID, lotID, supplierID, components)
}

// UpdateBid improves a supplier's standing bid in place.
func (s *AuctionService) UpdateBid(bidID string, components model.BidComponents) (model.Bid, error) {
	return s.ledger.UpdateBid(bidID, components)
}

// WithdrawBid removes a bid from competition.
func (s *AuctionService) WithdrawBid(bidID string) error {
	return s.ledger.WithdrawBid(bidID)
}

// Ranking returns the ordered Active bids for a lot.
func (s *AuctionService) Ranking(lotID string) ([]model.Bid, error) {
	return s.ledger.Rank(lotID)
}

// BidsBySupplier returns the supplier's Active bids across lots.
func (s *AuctionService) BidsBySupplier(supplierID string) ([]model.Bid, error) {
	if supplierID == "" {
		return nil, fmt.Errorf("service: %w - empty supplier id", auctionerrors.ErrInvalidBid)
	}
	bids, err := s.store.BidsBySupplier(supplierID)
	if err != nil {
		return nil, fmt.Errorf("service: bids for supplier %s: %w", supplierID, err)
	}
	return bids, nil
}

// AuctionState returns the current status and server-reconciled clock
// for one auction.
func (s *AuctionService) AuctionState(auctionID string) (model.AuctionSnapshot, error) {
	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.AuctionSnapshot{}, fmt.Errorf("service: %w", err)
	}
	clk := s.clockFor(auctionID)
	if clk == nil {
		return model.AuctionSnapshot{}, fmt.Errorf("service: clock for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	now := s.timeSource.Now()
	return model.AuctionSnapshot{
		AuctionID:        a.AuctionID,
		Status:           a.Status,
		RemainingSeconds: int64(clk.Remaining(now) / time.Second),
		ServerTime:       now,
	}, nil
}

// Resync is the pull-based recovery path for subscribers that missed
// pushes: full status, clock and per-lot ranking snapshots.
func (s *AuctionService) Resync(auctionID string) (model.AuctionSnapshot, error) {
	snap, err := s.AuctionState(auctionID)
	if err != nil {
		return model.AuctionSnapshot{}, err
	}

	lots, err := s.store.LotsByAuction(auctionID)
	if err != nil {
		return model.AuctionSnapshot{}, fmt.Errorf("service: %w", err)
	}
	snap.Lots = make([]model.LotRanking, 0, len(lots))
	for _, lot := range lots {
		bids, err := s.ledger.Rank(lot.LotID)
		if err != nil {
			return model.AuctionSnapshot{}, fmt.Errorf("service: resync lot %s: %w", lot.LotID, err)
		}
		snap.Lots = append(snap.Lots, model.LotRanking{LotID: lot.LotID, Bids: bids})
	}
	return snap, nil
}

// Subscribe joins the auction's room for live events.
func (s *AuctionService) Subscribe(auctionID string) (*broadcast.Subscriber, error) {
	if _, err := s.store.GetAuction(auctionID); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return s.hub.Join(auctionID), nil
}

// Unsubscribe leaves the auction's room.
func (s *AuctionService) Unsubscribe(auctionID string, sub *broadcast.Subscriber) {
	s.hub.Leave(auctionID, sub)
}

// Now exposes the authoritative server time so clients can derive a
// local clock offset instead of trusting their own wall clock.
func (s *AuctionService) Now() time.Time {
	return s.timeSource.Now()
}

// Close stops every timer task and waits for them to exit.
func (s *AuctionService) Close() {
	s.rootCancel()
	s.wg.Wait()
}

func (s *AuctionService) clockFor(auctionID string) *clock.AuctionClock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clocks[auctionID]
}

func (s *AuctionService) releaseTimer(auctionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[auctionID]; ok {
		cancel()
		delete(s.cancels, auctionID)
	}
}
