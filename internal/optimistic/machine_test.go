package optimistic

import (
	"testing"

	"github.com/google/uuid"

	"github.com/AdejohOS/feather-mart-sub001/internal/cart"
)

func line(productID uuid.UUID, priceCents, quantity int) cart.Item {
	return cart.Item{
		ID:             uuid.NewString(),
		ProductID:      productID,
		Name:           "Broiler feed",
		UnitPriceCents: priceCents,
		Quantity:       quantity,
		Unit:           "bag",
	}
}

func TestSpeculativeFoldsPendingActions(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	m := NewMachine(cart.Empty())

	m.Dispatch(AddItem{Item: line(productID, 500, 2)})
	m.Dispatch(AddItem{Item: line(productID, 500, 3)})

	got := m.Speculative()
	if len(got.Items) != 1 {
		t.Fatalf("expected merged line, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 5 || got.SubtotalCents != 2500 {
		t.Fatalf("unexpected speculative cart: %+v", got)
	}
	if m.Status() != StatusPending {
		t.Fatalf("expected pending status, got %s", m.Status())
	}
	if confirmed := m.Confirmed(); len(confirmed.Items) != 0 {
		t.Fatalf("confirmed state mutated: %+v", confirmed)
	}
}

func TestResolveAdoptsAuthoritativeState(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	m := NewMachine(cart.Empty())

	seq := m.Dispatch(AddItem{Item: line(productID, 500, 2)})

	// The server applied its own arithmetic; its answer wins verbatim.
	authoritative := cart.Recompute([]cart.Item{line(productID, 450, 2)})
	m.Resolve(seq, authoritative)

	if m.Status() != StatusIdle {
		t.Fatalf("expected idle after resolve, got %s", m.Status())
	}
	got := m.Speculative()
	if got.SubtotalCents != 900 {
		t.Fatalf("expected server subtotal 900, got %d", got.SubtotalCents)
	}
}

func TestResolveKeepsLaterPendingActions(t *testing.T) {
	t.Parallel()

	first := uuid.New()
	second := uuid.New()
	m := NewMachine(cart.Empty())

	seq1 := m.Dispatch(AddItem{Item: line(first, 500, 1)})
	m.Dispatch(AddItem{Item: line(second, 300, 1)})

	m.Resolve(seq1, cart.Recompute([]cart.Item{line(first, 500, 1)}))

	if m.Status() != StatusPending {
		t.Fatalf("expected second action still pending")
	}
	got := m.Speculative()
	if len(got.Items) != 2 {
		t.Fatalf("expected both lines visible, got %+v", got.Items)
	}
}

func TestStaleResolutionIsDiscarded(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	m := NewMachine(cart.Empty())

	seq1 := m.Dispatch(UpdateQuantity{ItemID: uuid.NewString(), Quantity: 1})
	seq2 := m.Dispatch(AddItem{Item: line(productID, 500, 2)})

	newer := cart.Recompute([]cart.Item{line(productID, 500, 2)})
	m.Resolve(seq2, newer)

	// The reply for seq1 arrives late; it must not roll the state back.
	m.Resolve(seq1, cart.Empty())

	got := m.Confirmed()
	if len(got.Items) != 1 || got.SubtotalCents != 1000 {
		t.Fatalf("stale resolution applied: %+v", got)
	}
}

func TestFailClearsQueueAndSnapsBack(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	base := cart.Recompute([]cart.Item{line(productID, 500, 1)})
	m := NewMachine(base)

	seq := m.Dispatch(AddItem{Item: line(productID, 500, 9)})
	m.Dispatch(RemoveItem{ItemID: base.Items[0].ID})

	refetched := cart.Recompute([]cart.Item{line(productID, 500, 1)})
	m.Fail(seq, refetched)

	if m.Status() != StatusIdle {
		t.Fatalf("expected idle after fail, got %s", m.Status())
	}
	got := m.Speculative()
	if len(got.Items) != 1 || got.Items[0].Quantity != 1 {
		t.Fatalf("expected snap back to server truth, got %+v", got)
	}
}

func TestApplyUpdateZeroRemovesLine(t *testing.T) {
	t.Parallel()

	item := line(uuid.New(), 500, 2)
	state := cart.Recompute([]cart.Item{item})

	got := Apply(state, UpdateQuantity{ItemID: item.ID, Quantity: 0})
	if len(got.Items) != 0 || got.SubtotalCents != 0 {
		t.Fatalf("expected line removed, got %+v", got)
	}
}

func TestApplyRemoveUnknownLineIsNoop(t *testing.T) {
	t.Parallel()

	item := line(uuid.New(), 500, 2)
	state := cart.Recompute([]cart.Item{item})

	got := Apply(state, RemoveItem{ItemID: uuid.NewString()})
	if len(got.Items) != 1 {
		t.Fatalf("expected line untouched, got %+v", got)
	}
}
