package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/casafin/casafin-backend/internal/domain"
)

// ActionKind identifies a gated mutation type. The same two-step protocol
// applies to every kind.
type ActionKind string

const (
	ActionAddTransaction ActionKind = "add_transaction"
	ActionUpsertBudget   ActionKind = "upsert_budget"
	ActionBillPayment    ActionKind = "bill_payment"
	ActionUpsertSnapshot ActionKind = "upsert_snapshot"
	ActionImport         ActionKind = "import"
	ActionAddIncome      ActionKind = "add_income"
)

type gateKey struct {
	kind   ActionKind
	months string
}

// ConfirmationGate implements the two-step confirm/cancel protocol for writes
// that target a closed month. A write against an open month passes through
// untouched. A write against a closed month must be proposed first, then
// re-issued with confirmation; confirming is single-use, so a repeated write
// is never silently re-authorized. The closed/open status is re-checked at
// every proposal, never cached.
type ConfirmationGate struct {
	closingRepo domain.ClosingRepository

	mu      sync.Mutex
	pending map[gateKey]struct{}
}

// NewConfirmationGate creates a new ConfirmationGate
func NewConfirmationGate(closingRepo domain.ClosingRepository) *ConfirmationGate {
	return &ConfirmationGate{
		closingRepo: closingRepo,
		pending:     make(map[gateKey]struct{}),
	}
}

func keyFor(kind ActionKind, months []string) gateKey {
	uniq := make([]string, 0, len(months))
	seen := make(map[string]struct{}, len(months))
	for _, m := range months {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		uniq = append(uniq, m)
	}
	sort.Strings(uniq)
	return gateKey{kind: kind, months: strings.Join(uniq, ",")}
}

// Propose checks whether the write needs confirmation. When any target month
// is closed the proposal is armed and true is returned; otherwise any stale
// pending state for the key is dropped.
func (g *ConfirmationGate) Propose(kind ActionKind, months ...string) (bool, error) {
	closed, err := g.anyClosed(months)
	if err != nil {
		return false, err
	}

	key := keyFor(kind, months)
	g.mu.Lock()
	defer g.mu.Unlock()
	if !closed {
		delete(g.pending, key)
		return false, nil
	}
	g.pending[key] = struct{}{}
	return true, nil
}

// Confirm consumes a pending proposal. It returns true exactly once per
// proposal; the pending state is cleared either way.
func (g *ConfirmationGate) Confirm(kind ActionKind, months ...string) bool {
	key := keyFor(kind, months)
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.pending[key]; ok {
		delete(g.pending, key)
		return true
	}
	return false
}

// Cancel discards a pending proposal with no side effect
func (g *ConfirmationGate) Cancel(kind ActionKind, months ...string) {
	key := keyFor(kind, months)
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key)
}

// Authorize combines the two steps for callers: an unconfirmed request is a
// proposal, a confirmed request consumes the pending proposal. It returns
// true when the write may proceed now.
func (g *ConfirmationGate) Authorize(kind ActionKind, confirmed bool, months ...string) (bool, error) {
	if confirmed && g.Confirm(kind, months...) {
		return true, nil
	}
	requires, err := g.Propose(kind, months...)
	if err != nil {
		return false, err
	}
	return !requires, nil
}

func (g *ConfirmationGate) anyClosed(months []string) (bool, error) {
	for _, m := range months {
		closed, err := g.closingRepo.IsClosed(m)
		if err != nil {
			return false, err
		}
		if closed {
			return true, nil
		}
	}
	return false, nil
}
