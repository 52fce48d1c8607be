// Package analyzer lifts decoded bytecode into a pc-indexed IR by
// abstractly interpreting a method's Code attribute: a worklist-based
// fixpoint over symbolic stack/local state, with Phi values synthesized at
// control-flow joins that disagree.
package analyzer

import (
	"sort"

	"github.com/jvmkit/jvmkit/pkg/classfile"
)

// Analyzer lifts one method body at a time. It carries no state between
// calls to Analyze.
type Analyzer struct{}

// New returns a ready-to-use Analyzer.
func New() *Analyzer { return &Analyzer{} }

// Analyze abstractly interprets m's Code attribute and returns its
// instructions lifted to IR, keyed by pc. A method with no body (NATIVE,
// ABSTRACT, or the Code-less `<clinit>` case) yields an empty map.
func (a *Analyzer) Analyze(m *classfile.Method) (map[uint16]IrInstruction, error) {
	if m.Body == nil {
		return map[uint16]IrInstruction{}, nil
	}
	body := m.Body

	order := make([]uint16, 0, len(body.Instructions))
	for pc := range body.Instructions {
		order = append(order, pc)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	valid := make(map[uint16]bool, len(order))
	nextOf := make(map[uint16]uint16, len(order))
	for i, pc := range order {
		valid[pc] = true
		if i+1 < len(order) {
			nextOf[pc] = order[i+1]
		}
	}

	gen := &idGen{}
	seed := newFrame(body.MaxLocals)
	slot := uint16(0)
	if !m.Flags.Has(classfile.AccStatic) {
		if err := seed.setLocal(0, slot, gen.fresh(KindReference)); err != nil {
			return nil, err
		}
		slot++
	}
	for _, p := range m.Descriptor.Parameters {
		if err := seed.setLocal(0, slot, gen.fresh(kindOfFieldType(p))); err != nil {
			return nil, err
		}
		slot += uint16(kindOfFieldType(p).category())
	}

	frames := map[uint16]*Frame{0: seed}
	// predecessors accumulates, per pc, every distinct program point whose
	// edge has fed frames[pc] so far, so a Phi synthesized at a merge can
	// record real provenance instead of just its own pc.
	predecessors := map[uint16][]uint16{}
	worklist := []uint16{0}
	ir := make(map[uint16]IrInstruction, len(order))

	enqueue := func(pc uint16, incoming *Frame, fromPC uint16) error {
		if !valid[pc] {
			return errInvalidJumpTarget(pc)
		}
		predecessors[pc] = addPredecessor(predecessors[pc], fromPC)

		existing, ok := frames[pc]
		if !ok {
			frames[pc] = incoming
			worklist = append(worklist, pc)
			return nil
		}
		merged, changed, err := joinFrames(gen, pc, existing, incoming, predecessors[pc])
		if err != nil {
			return err
		}
		if changed {
			frames[pc] = merged
			worklist = append(worklist, pc)
		}
		return nil
	}

	for len(worklist) > 0 {
		pc := worklist[0]
		worklist = worklist[1:]

		insn, ok := body.Instructions[pc]
		if !ok {
			return nil, errInvalidJumpTarget(pc)
		}
		frame := frames[pc].clone()

		irInsn, successors, err := step(gen, pc, insn, frame, nextOf)
		if err != nil {
			return nil, err
		}
		ir[pc] = irInsn

		for _, succ := range successors {
			if err := enqueue(succ.pc, succ.frame, pc); err != nil {
				return nil, err
			}
		}

		for _, exc := range body.ExceptionTable {
			if pc < exc.StartPC || pc >= exc.EndPC {
				continue
			}
			handler := &Frame{
				Locals: append([]localSlot(nil), frames[pc].Locals...),
				Stack:  []Value{gen.fresh(KindReference)},
			}
			if err := enqueue(exc.HandlerPC, handler, pc); err != nil {
				return nil, err
			}
		}
	}

	return ir, nil
}

// addPredecessor appends from to preds if not already present, keeping the
// slice sorted so JoinedPCs is deterministic regardless of worklist order.
func addPredecessor(preds []uint16, from uint16) []uint16 {
	i := sort.Search(len(preds), func(i int) bool { return preds[i] >= from })
	if i < len(preds) && preds[i] == from {
		return preds
	}
	preds = append(preds, 0)
	copy(preds[i+1:], preds[i:])
	preds[i] = from
	return preds
}

type edge struct {
	pc    uint16
	frame *Frame
}
