package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrWatcherStopped = errors.New("proposal watcher stopped")

// ProposalWatcher pushes proposal updates to subscribers.
//
// Updates arrive from two sources: Publish, called by the use case after each
// commit on this instance, and Poll, run periodically to catch writes made by
// other instances. Each subscription sees a given version at most once and
// versions in increasing order.
type ProposalWatcher struct {
	repo   interfaces.IProposalRepository
	logger *zap.Logger

	deliverMu sync.Mutex

	mu      sync.Mutex
	subs    map[string]map[uint64]*Subscription
	nextID  uint64
	stopped bool
}

var _ interfaces.IProposalNotifier = (*ProposalWatcher)(nil)

type Subscription struct {
	id          uint64
	proposalID  string
	fn          func(entities.Proposal)
	lastVersion int64
	watcher     *ProposalWatcher
	once        sync.Once
}

func NewProposalWatcher(repo interfaces.IProposalRepository, logger *zap.Logger) *ProposalWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalWatcher{
		repo:   repo,
		logger: logger,
		subs:   map[string]map[uint64]*Subscription{},
	}
}

// Subscribe registers fn for updates of proposalID. fn runs on the
// publishing goroutine and must not block.
func (w *ProposalWatcher) Subscribe(proposalID string, fn func(entities.Proposal)) (*Subscription, error) {
	return w.SubscribeFrom(proposalID, 0, fn)
}

// SubscribeFrom is Subscribe for a caller that already holds fromVersion:
// only later versions are delivered.
func (w *ProposalWatcher) SubscribeFrom(proposalID string, fromVersion int64, fn func(entities.Proposal)) (*Subscription, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return nil, ErrInvalidProposalID
	}
	if fn == nil {
		return nil, errors.New("nil subscription callback")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil, ErrWatcherStopped
	}
	w.nextID++
	s := &Subscription{id: w.nextID, proposalID: proposalID, fn: fn, lastVersion: fromVersion, watcher: w}
	if w.subs[proposalID] == nil {
		w.subs[proposalID] = map[uint64]*Subscription{}
	}
	w.subs[proposalID][s.id] = s
	w.logger.Debug("proposal subscription started", zap.String("proposal_id", proposalID), zap.Uint64("subscription_id", s.id))
	return s, nil
}

func (s *Subscription) ProposalID() string {
	return s.proposalID
}

// Seen marks every version up to version as delivered, so neither Publish
// nor Poll hands it to the callback again.
func (s *Subscription) Seen(version int64) {
	w := s.watcher
	w.mu.Lock()
	defer w.mu.Unlock()
	if version > s.lastVersion {
		s.lastVersion = version
	}
}

// Stop ends the subscription. It is safe to call more than once and from
// inside the callback.
func (s *Subscription) Stop() {
	s.once.Do(func() {
		w := s.watcher
		w.mu.Lock()
		defer w.mu.Unlock()
		if subs, ok := w.subs[s.proposalID]; ok {
			delete(subs, s.id)
			if len(subs) == 0 {
				delete(w.subs, s.proposalID)
			}
		}
		w.logger.Debug("proposal subscription stopped", zap.String("proposal_id", s.proposalID), zap.Uint64("subscription_id", s.id))
	})
}

func (w *ProposalWatcher) Publish(p entities.Proposal) {
	if p.ID == "" {
		return
	}
	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()

	w.mu.Lock()
	targets := make([]*Subscription, 0, len(w.subs[p.ID]))
	for _, s := range w.subs[p.ID] {
		if p.Version > s.lastVersion {
			s.lastVersion = p.Version
			targets = append(targets, s)
		}
	}
	w.mu.Unlock()

	for _, s := range targets {
		s.fn(p.Clone())
	}
}

// Poll reloads every watched proposal and publishes versions subscribers
// have not seen yet.
func (w *ProposalWatcher) Poll(ctx context.Context) {
	w.mu.Lock()
	ids := make([]string, 0, len(w.subs))
	for id := range w.subs {
		ids = append(ids, id)
	}
	w.mu.Unlock()

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		p, err := w.repo.GetByID(ctx, id)
		if err != nil {
			w.logger.Warn("proposal watcher poll failed", zap.String("proposal_id", id), zap.Error(err))
			continue
		}
		w.Publish(p)
	}
}

func (w *ProposalWatcher) SubscriberCount(proposalID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs[proposalID])
}

// Stop drops every subscription and refuses new ones.
func (w *ProposalWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.subs = map[string]map[uint64]*Subscription{}
}
