package ledger

import (
	"fmt"
	"sort"
	"time"

	"reverse-auction-coordinator/internal/auctionerrors"
	"reverse-auction-coordinator/internal/clock"
	"reverse-auction-coordinator/internal/currency"
	"reverse-auction-coordinator/internal/landedcost"
	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/internal/repository"
	"reverse-auction-coordinator/internal/statemachine"
	"reverse-auction-coordinator/utils"

	"github.com/shopspring/decimal"
)

// DefaultLockWait bounds how long a bid operation waits for its lot
// before failing with ErrLotBusy.
const DefaultLockWait = 2 * time.Second

// TopBidSignal receives the asynchronous "new top bid" notification the
// auction clock uses for extension evaluation.
type TopBidSignal interface {
	OnTopBidImproved(auctionID string)
}

// EventSink receives room events produced by ledger mutations.
type EventSink interface {
	Publish(auctionID string, eventType model.EventType, payload any)
}

// Ledger owns the authoritative bid set per lot. All mutations for one
// lot are serialized through a per-lot lock with a bounded wait;
// independent lots never block each other. Every accepted mutation
// recomputes the lot's ranking from scratch.
type Ledger struct {
	store      repository.AuctionStore
	rates      currency.RateProvider
	timeSource clock.TimeSource
	locks      *lotLocks
	lockWait   time.Duration
	signal     TopBidSignal
	events     EventSink
}

// Option configures optional ledger collaborators.
type Option func(*Ledger)

// WithTopBidSignal wires the clock-extension notification target.
func WithTopBidSignal(s TopBidSignal) Option {
	return func(l *Ledger) { l.signal = s }
}

// WithEventSink wires the room broadcaster.
func WithEventSink(e EventSink) Option {
	return func(l *Ledger) { l.events = e }
}

// WithLockWait overrides the bounded per-lot lock wait.
func WithLockWait(d time.Duration) Option {
	return func(l *Ledger) { l.lockWait = d }
}

// NewLedger creates a Ledger over the given store, rate source and time
// source.
func NewLedger(store repository.AuctionStore, rates currency.RateProvider, ts clock.TimeSource, opts ...Option) *Ledger {
	l := &Ledger{
		store:      store,
		rates:      rates,
		timeSource: ts,
		locks:      newLotLocks(),
		lockWait:   DefaultLockWait,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SubmitBid validates and records a supplier's first bid on a lot.
// Rejections are all-or-nothing: no state changes unless the bid is
// accepted.
func (l *Ledger) SubmitBid(auctionID, lotID, supplierID string, components model.BidComponents) (model.Bid, error) {
	if auctionID == "" || lotID == "" || supplierID == "" {
		return model.Bid{}, fmt.Errorf("ledger: %w - missing auction, lot or supplier id", auctionerrors.ErrInvalidBid)
	}
	if !components.Amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("ledger: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	release, err := l.locks.acquire(lotID, l.lockWait)
	if err != nil {
		return model.Bid{}, fmt.Errorf("ledger: submit bid for lot %s: %w", lotID, err)
	}
	defer release()

	lot, auction, err := l.gate(lotID)
	if err != nil {
		return model.Bid{}, err
	}
	if lot.AuctionID != auctionID {
		return model.Bid{}, fmt.Errorf("ledger: lot %s does not belong to auction %s: %w", lotID, auctionID, auctionerrors.ErrLotNotFound)
	}

	bids, err := l.store.BidsByLot(lotID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("ledger: load bids for lot %s: %w", lotID, err)
	}
	for _, b := range bids {
		if b.SupplierID == supplierID && b.Status == model.BidActive {
			return model.Bid{}, fmt.Errorf("ledger: supplier %s on lot %s: %w", supplierID, lotID, auctionerrors.ErrDuplicateActiveBid)
		}
	}

	total, err := l.price(components, auction)
	if err != nil {
		return model.Bid{}, err
	}

	now := l.timeSource.Now()
	bid := model.Bid{
		BidID:      utils.GenerateID(),
		AuctionID:  auction.AuctionID,
		LotID:      lotID,
		SupplierID: supplierID,
		Components: components,
		TotalCost:  total,
		Status:     model.BidActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	bids = append(bids, bid)
	stored, err := l.commit(lotID, bids, bid.BidID)
	if err != nil {
		return model.Bid{}, err
	}

	l.notify(auction.AuctionID, lotID, stored, model.EventBidPlaced)
	return stored, nil
}

// UpdateBid mutates a supplier's standing bid in place. The recomputed
// total cost must not exceed the stored one: bids only improve while
// the auction is live.
func (l *Ledger) UpdateBid(bidID string, components model.BidComponents) (model.Bid, error) {
	if bidID == "" {
		return model.Bid{}, fmt.Errorf("ledger: %w - empty bid id", auctionerrors.ErrInvalidBid)
	}
	if !components.Amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("ledger: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	existing, err := l.store.GetBid(bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("ledger: update bid %s: %w", bidID, err)
	}

	release, err := l.locks.acquire(existing.LotID, l.lockWait)
	if err != nil {
		return model.Bid{}, fmt.Errorf("ledger: update bid for lot %s: %w", existing.LotID, err)
	}
	defer release()

	_, auction, err := l.gate(existing.LotID)
	if err != nil {
		return model.Bid{}, err
	}

	bids, err := l.store.BidsByLot(existing.LotID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("ledger: load bids for lot %s: %w", existing.LotID, err)
	}

	idx := -1
	for i, b := range bids {
		if b.BidID == bidID {
			idx = i
			break
		}
	}
	if idx == -1 || bids[idx].Status != model.BidActive {
		return model.Bid{}, fmt.Errorf("ledger: update bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}

	total, err := l.price(components, auction)
	if err != nil {
		return model.Bid{}, err
	}
	if total.GreaterThan(bids[idx].TotalCost) {
		return model.Bid{}, fmt.Errorf("ledger: new total cost %s is above stored %s: %w",
			total.String(), bids[idx].TotalCost.String(), auctionerrors.ErrBidNotImprovement)
	}

	bids[idx].Components = components
	bids[idx].TotalCost = total
	bids[idx].UpdatedAt = l.timeSource.Now()

	stored, err := l.commit(existing.LotID, bids, bidID)
	if err != nil {
		return model.Bid{}, err
	}

	l.notify(auction.AuctionID, existing.LotID, stored, model.EventRankingChanged)
	return stored, nil
}

// WithdrawBid marks a bid Withdrawn and removes it from the ranking.
func (l *Ledger) WithdrawBid(bidID string) error {
	if bidID == "" {
		return fmt.Errorf("ledger: %w - empty bid id", auctionerrors.ErrInvalidBid)
	}

	existing, err := l.store.GetBid(bidID)
	if err != nil {
		return fmt.Errorf("ledger: withdraw bid %s: %w", bidID, err)
	}

	release, err := l.locks.acquire(existing.LotID, l.lockWait)
	if err != nil {
		return fmt.Errorf("ledger: withdraw bid for lot %s: %w", existing.LotID, err)
	}
	defer release()

	_, auction, err := l.gate(existing.LotID)
	if err != nil {
		return err
	}

	bids, err := l.store.BidsByLot(existing.LotID)
	if err != nil {
		return fmt.Errorf("ledger: load bids for lot %s: %w", existing.LotID, err)
	}

	found := false
	for i, b := range bids {
		if b.BidID == bidID && b.Status == model.BidActive {
			bids[i].Status = model.BidWithdrawn
			bids[i].Rank = 0
			bids[i].UpdatedAt = l.timeSource.Now()
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("ledger: withdraw bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}

	rankActive(bids)
	if err := l.store.ReplaceLotBids(existing.LotID, bids); err != nil {
		return fmt.Errorf("ledger: persist bids for lot %s: %w", existing.LotID, err)
	}

	if l.events != nil {
		l.events.Publish(auction.AuctionID, model.EventRankingChanged, model.LotRanking{
			LotID: existing.LotID,
			Bids:  activeSorted(bids),
		})
	}
	return nil
}

// Rank returns the lot's Active bids ordered by ascending total cost,
// ranks contiguous from 1. Ties go to the bid updated earliest.
func (l *Ledger) Rank(lotID string) ([]model.Bid, error) {
	if lotID == "" {
		return nil, fmt.Errorf("ledger: %w - empty lot id", auctionerrors.ErrInvalidBid)
	}
	bids, err := l.store.BidsByLot(lotID)
	if err != nil {
		return nil, fmt.Errorf("ledger: rank lot %s: %w", lotID, err)
	}
	return activeSorted(bids), nil
}

// gate loads the lot and its auction and verifies the state machine
// currently admits bid mutations.
func (l *Ledger) gate(lotID string) (model.Lot, model.Auction, error) {
	lot, err := l.store.GetLot(lotID)
	if err != nil {
		return model.Lot{}, model.Auction{}, fmt.Errorf("ledger: %w", err)
	}
	auction, err := l.store.GetAuction(lot.AuctionID)
	if err != nil {
		return model.Lot{}, model.Auction{}, fmt.Errorf("ledger: %w", err)
	}
	if !statemachine.AcceptsBids(auction.Status) {
		return model.Lot{}, model.Auction{}, fmt.Errorf("ledger: auction %s is %s: %w",
			auction.AuctionID, auction.Status, auctionerrors.ErrAuctionNotActive)
	}
	return lot, auction, nil
}

// price computes the landed cost and enforces the reserve ceiling.
func (l *Ledger) price(components model.BidComponents, auction model.Auction) (decimal.Decimal, error) {
	total, err := landedcost.ComputeTotalCost(components, auction.SettlementCurrency, l.rates.Rates())
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger: %w", err)
	}
	if total.GreaterThan(auction.ReservePrice) {
		return decimal.Zero, fmt.Errorf("ledger: total cost %s exceeds reserve %s: %w",
			total.String(), auction.ReservePrice.String(), auctionerrors.ErrReserveExceeded)
	}
	return total, nil
}

// commit reranks the lot, persists the full bid set atomically and
// returns the stored copy of the touched bid. A rank-1 result raises
// the top-bid signal for clock extension evaluation.
func (l *Ledger) commit(lotID string, bids []model.Bid, touchedBidID string) (model.Bid, error) {
	rankActive(bids)
	if err := l.store.ReplaceLotBids(lotID, bids); err != nil {
		return model.Bid{}, fmt.Errorf("ledger: persist bids for lot %s: %w", lotID, err)
	}

	var stored model.Bid
	for _, b := range bids {
		if b.BidID == touchedBidID {
			stored = b
			break
		}
	}
	if stored.Rank == 1 && l.signal != nil {
		l.signal.OnTopBidImproved(stored.AuctionID)
	}
	return stored, nil
}

// notify publishes the mutation event followed by the fresh ranking
// snapshot. Delivery failures never unwind the committed mutation.
func (l *Ledger) notify(auctionID, lotID string, bid model.Bid, eventType model.EventType) {
	if l.events == nil {
		return
	}
	bids, err := l.store.BidsByLot(lotID)
	if err != nil {
		utils.Error("ledger: snapshot for broadcast failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}
	if eventType == model.EventBidPlaced {
		l.events.Publish(auctionID, model.EventBidPlaced, bid)
	}
	l.events.Publish(auctionID, model.EventRankingChanged, model.LotRanking{
		LotID: lotID,
		Bids:  activeSorted(bids),
	})
}

// rankActive assigns 1-based ranks to the Active bids in place,
// recomputed from scratch. Withdrawn bids keep rank zero.
func rankActive(bids []model.Bid) {
	idx := make([]int, 0, len(bids))
	for i := range bids {
		if bids[i].Status == model.BidActive {
			idx = append(idx, i)
		} else {
			bids[i].Rank = 0
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		bi, bj := bids[idx[a]], bids[idx[b]]
		if !bi.TotalCost.Equal(bj.TotalCost) {
			return bi.TotalCost.LessThan(bj.TotalCost)
		}
		return bi.UpdatedAt.Before(bj.UpdatedAt)
	})
	for pos, i := range idx {
		bids[i].Rank = pos + 1
	}
}

// activeSorted returns the Active bids ordered by rank.
func activeSorted(bids []model.Bid) []model.Bid {
	active := make([]model.Bid, 0, len(bids))
	for _, b := range bids {
		if b.Status == model.BidActive {
			active = append(active, b)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Rank < active[j].Rank })
	return active
}
