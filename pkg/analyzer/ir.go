package analyzer

import "github.com/jvmkit/jvmkit/pkg/classfile"

// OpKind classifies an IrInstruction by the family of effect it has on the
// operand stack/locals, independent of the exact bytecode opcode.
type OpKind int

const (
	OpKindNop OpKind = iota
	OpKindConst
	OpKindLoad
	OpKindStore
	OpKindArithmetic
	OpKindCompare
	OpKindStackOp
	OpKindArrayAccess
	OpKindAllocation
	OpKindFieldAccess
	OpKindInvoke
	OpKindBranch
	OpKindSwitch
	OpKindReturn
	OpKindThrow
	OpKindMonitor
	OpKindCast
)

// IrInstruction is the per-pc record the analyzer produces: the bytecode
// instruction it came from, the symbolic values it consumed and produced,
// and (for control-transfer instructions) the successor program points.
type IrInstruction struct {
	PC     uint16
	Op     classfile.Op
	OpKind OpKind

	Uses    []Value
	Defines *Value

	FieldRef        *classfile.FieldReference
	MethodRef       *classfile.MethodReference
	InterfaceMethod *classfile.InterfaceMethodReference
	ClassRef        *classfile.ClassReference
	ArrayType       *classfile.FieldType
	DynamicCallSite *classfile.InvokeDynamicValue

	// BranchTargets lists every statically-known successor pc reachable
	// directly from this instruction (fallthrough is not included here; the
	// analyzer records it separately since most instructions fall through).
	BranchTargets []uint16
	SwitchDefault uint16
	SwitchTargets map[int32]uint16

	Falls bool // true when control may also reach PC+len(insn) normally
}
