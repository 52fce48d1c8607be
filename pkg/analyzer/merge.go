package analyzer

// joinFrames merges an already-recorded frame at pc with a freshly-computed
// incoming frame from one more predecessor edge. joined is the full set of
// predecessor pcs observed feeding pc so far, which any Phi synthesized here
// records as its JoinedPCs. It returns the merged frame and whether the
// merge changed anything relative to existing (so the caller knows whether
// pc needs to be re-queued).
func joinFrames(gen *idGen, pc uint16, existing, incoming *Frame, joined []uint16) (*Frame, bool, error) {
	if len(existing.Stack) != len(incoming.Stack) {
		return nil, false, errInconsistentStackHeight(pc, existing.height(), incoming.height())
	}

	changed := false
	merged := &Frame{
		Stack:  make([]Value, len(existing.Stack)),
		Locals: make([]localSlot, len(existing.Locals)),
	}

	for i := range existing.Stack {
		a, b := existing.Stack[i], incoming.Stack[i]
		if a.Kind.category() != b.Kind.category() {
			return nil, false, errTypeCategoryMismatch(pc, "operand stack disagrees on value category across incoming edges")
		}
		if a.ID == b.ID {
			merged.Stack[i] = a
			continue
		}
		merged.Stack[i] = gen.freshPhi(joinKind(a.Kind, b.Kind), joined)
		changed = true
	}

	for i := range existing.Locals {
		a, b := existing.Locals[i], incoming.Locals[i]
		switch {
		case a.occupied && b.occupied && !a.reserved && !b.reserved:
			if a.value.Kind.category() != b.value.Kind.category() {
				merged.Locals[i] = localSlot{}
				changed = changed || a.occupied
				continue
			}
			if a.value.ID == b.value.ID {
				merged.Locals[i] = a
				continue
			}
			merged.Locals[i] = localSlot{value: gen.freshPhi(joinKind(a.value.Kind, b.value.Kind), joined), occupied: true}
			changed = true
		case a.reserved && b.reserved:
			merged.Locals[i] = a
		default:
			// Disagreement on whether this slot even holds a live value:
			// conservatively mark it empty, matching a verifier that can no
			// longer account for what it holds.
			if a.occupied || a.reserved {
				changed = true
			}
			merged.Locals[i] = localSlot{}
		}
	}

	return merged, changed, nil
}

// joinKind picks the Value kind to use for a synthesized Phi. The two
// incoming kinds always share a category (checked by the caller). Equal
// kinds are kept. Two different category-1 kinds (e.g. Int on one branch
// and Float or Reference on the other) join as Reference, without
// pretending to know a common static type the analyzer doesn't compute;
// two different category-2 kinds (Long and Double) keep a's kind.
func joinKind(a, b ValueKind) ValueKind {
	if a == b {
		return a
	}
	if a.category() == 1 {
		return KindReference
	}
	return a
}
