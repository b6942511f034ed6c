package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/riskibarqy/leetstreak/internal/platform/id"
)

// ChallengeRepository keeps challenges, memberships, results and penalties in
// process memory. It backs REPOSITORY_DRIVER=memory and tests.
type ChallengeRepository struct {
	mu          sync.RWMutex
	ids         id.Generator
	challenges  map[string]challenge.Challenge
	order       []string
	memberships map[string]challenge.Membership
	memberOrder []string
	results     map[string][]challenge.DailyResult
	penalties   map[string][]challenge.Penalty
	now         func() time.Time
}

func NewChallengeRepository(ids id.Generator) *ChallengeRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &ChallengeRepository{
		ids:         ids,
		challenges:  make(map[string]challenge.Challenge),
		memberships: make(map[string]challenge.Membership),
		results:     make(map[string][]challenge.DailyResult),
		penalties:   make(map[string][]challenge.Penalty),
		now:         time.Now,
	}
}

func (r *ChallengeRepository) AddChallenge(item challenge.Challenge) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.challenges[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.challenges[item.ID] = item
	return nil
}

func (r *ChallengeRepository) AddMembership(item challenge.Membership) error {
	if item.ID == "" || item.ChallengeID == "" || item.UserID == "" {
		return fmt.Errorf("membership id, challenge id and user id are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.challenges[item.ChallengeID]; !ok {
		return fmt.Errorf("challenge %s not found", item.ChallengeID)
	}
	if _, exists := r.memberships[item.ID]; !exists {
		r.memberOrder = append(r.memberOrder, item.ID)
	}
	r.memberships[item.ID] = item
	return nil
}

func (r *ChallengeRepository) GetChallenge(_ context.Context, challengeID string) (challenge.Challenge, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.challenges[challengeID]
	return item, ok, nil
}

func (r *ChallengeRepository) ListActiveChallenges(_ context.Context) ([]challenge.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]challenge.Challenge, 0, len(r.order))
	for _, challengeID := range r.order {
		if item := r.challenges[challengeID]; item.Status == challenge.StatusActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ChallengeRepository) FindActiveMemberships(_ context.Context, challengeID string) ([]challenge.Membership, error) {
	return r.filterMemberships(func(m challenge.Membership) bool {
		return m.ChallengeID == challengeID && m.Active
	}), nil
}

func (r *ChallengeRepository) FindMembership(_ context.Context, challengeID, userID string) (challenge.Membership, bool, error) {
	items := r.filterMemberships(func(m challenge.Membership) bool {
		return m.ChallengeID == challengeID && m.UserID == userID
	})
	if len(items) == 0 {
		return challenge.Membership{}, false, nil
	}
	return items[0], true, nil
}

func (r *ChallengeRepository) ListMembershipsByUser(_ context.Context, userID string) ([]challenge.Membership, error) {
	return r.filterMemberships(func(m challenge.Membership) bool {
		return m.UserID == userID
	}), nil
}

func (r *ChallengeRepository) FindDailyResults(_ context.Context, membershipID string, limit int) ([]challenge.DailyResult, error) {
	r.mu.RLock()
	items := append([]challenge.DailyResult(nil), r.results[membershipID]...)
	r.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *ChallengeRepository) FindDailyResult(_ context.Context, challengeID, membershipID string, date time.Time) (challenge.DailyResult, bool, error) {
	key := ranking.DayKey(date)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.results[membershipID] {
		if item.ChallengeID == challengeID && ranking.DayKey(item.Date) == key {
			return item, true, nil
		}
	}
	return challenge.DailyResult{}, false, nil
}

func (r *ChallengeRepository) FindPenalties(_ context.Context, membershipID string) ([]challenge.Penalty, error) {
	r.mu.RLock()
	items := append([]challenge.Penalty(nil), r.penalties[membershipID]...)
	r.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func (r *ChallengeRepository) RecordDailyResult(_ context.Context, result challenge.DailyResult) (challenge.DailyResult, error) {
	if !ranking.IsDay(result.Date) {
		return challenge.DailyResult{}, fmt.Errorf("result date %s is not truncated to a day", result.Date)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memberships[result.MembershipID]
	if !ok || m.ChallengeID != result.ChallengeID {
		return challenge.DailyResult{}, fmt.Errorf("membership %s not found in challenge %s", result.MembershipID, result.ChallengeID)
	}

	key := ranking.DayKey(result.Date)
	for _, existing := range r.results[result.MembershipID] {
		if ranking.DayKey(existing.Date) == key {
			return challenge.DailyResult{}, fmt.Errorf("%w: membership %s on %s", challenge.ErrDuplicateDailyResult, result.MembershipID, key)
		}
	}

	if result.ID == "" {
		newID, err := r.ids.NewID()
		if err != nil {
			return challenge.DailyResult{}, err
		}
		result.ID = newID
	}
	if result.EvaluatedAt.IsZero() {
		result.EvaluatedAt = r.now()
	}
	r.results[result.MembershipID] = append(r.results[result.MembershipID], result)
	return result, nil
}

// RecordPenalty stores the penalty and adds its amount to the membership's
// running total.
func (r *ChallengeRepository) RecordPenalty(_ context.Context, penalty challenge.Penalty) (challenge.Penalty, error) {
	if penalty.Amount.IsNegative() {
		return challenge.Penalty{}, fmt.Errorf("penalty amount must not be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memberships[penalty.MembershipID]
	if !ok {
		return challenge.Penalty{}, fmt.Errorf("membership %s not found", penalty.MembershipID)
	}

	if penalty.ID == "" {
		newID, err := r.ids.NewID()
		if err != nil {
			return challenge.Penalty{}, err
		}
		penalty.ID = newID
	}
	if penalty.CreatedAt.IsZero() {
		penalty.CreatedAt = r.now()
	}
	r.penalties[penalty.MembershipID] = append(r.penalties[penalty.MembershipID], penalty)
	m.TotalPenalties = m.TotalPenalties.Add(penalty.Amount)
	r.memberships[m.ID] = m
	return penalty, nil
}

func (r *ChallengeRepository) filterMemberships(keep func(challenge.Membership) bool) []challenge.Membership {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]challenge.Membership, 0)
	for _, membershipID := range r.memberOrder {
		if m := r.memberships[membershipID]; keep(m) {
			out = append(out, m)
		}
	}
	return out
}
