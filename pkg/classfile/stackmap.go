package classfile

// VerificationKind enumerates the JVMS §4.7.4 verification_type_info tags.
type VerificationKind int

const (
	VerifyTop VerificationKind = iota
	VerifyInteger
	VerifyFloat
	VerifyDouble
	VerifyLong
	VerifyNull
	VerifyUninitializedThis
	VerifyObject       // carries a ClassReference
	VerifyUninitialized // carries the offset of the `new` that created it
)

// VerificationTypeInfo is one verification-type entry of a stack map frame.
type VerificationTypeInfo struct {
	Kind              VerificationKind
	Object            ClassReference // when Kind == VerifyObject
	UninitializedOffset uint16       // when Kind == VerifyUninitialized
}

func parseVerificationTypeInfo(r *reader, pool *ConstantPool) (VerificationTypeInfo, error) {
	tag, err := r.u1()
	if err != nil {
		return VerificationTypeInfo{}, err
	}
	switch tag {
	case 0:
		return VerificationTypeInfo{Kind: VerifyTop}, nil
	case 1:
		return VerificationTypeInfo{Kind: VerifyInteger}, nil
	case 2:
		return VerificationTypeInfo{Kind: VerifyFloat}, nil
	case 3:
		return VerificationTypeInfo{Kind: VerifyDouble}, nil
	case 4:
		return VerificationTypeInfo{Kind: VerifyLong}, nil
	case 5:
		return VerificationTypeInfo{Kind: VerifyNull}, nil
	case 6:
		return VerificationTypeInfo{Kind: VerifyUninitializedThis}, nil
	case 7:
		idx, err := r.u2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		cr, err := pool.GetClassRef(idx)
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Kind: VerifyObject, Object: cr}, nil
	case 8:
		off, err := r.u2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Kind: VerifyUninitialized, UninitializedOffset: off}, nil
	default:
		return VerificationTypeInfo{}, errInvalidVerificationTypeInfoTag(tag)
	}
}

// StackMapFrameKind enumerates the JVMS §4.7.4 frame_type ranges.
type StackMapFrameKind int

const (
	FrameSame StackMapFrameKind = iota
	FrameSameLocals1StackItem
	FrameSameLocals1StackItemExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

// StackMapFrame is one entry of a StackMapTable attribute.
type StackMapFrame struct {
	Kind StackMapFrameKind

	OffsetDelta uint16
	ChopCount   uint8 // FrameChop

	Stack  []VerificationTypeInfo // FrameSameLocals1StackItem(Extended), FrameFull
	Locals []VerificationTypeInfo // FrameAppend, FrameFull
}

func parseStackMapFrame(r *reader, pool *ConstantPool) (StackMapFrame, error) {
	frameType, err := r.u1()
	if err != nil {
		return StackMapFrame{}, err
	}
	switch {
	case frameType <= 63:
		return StackMapFrame{Kind: FrameSame, OffsetDelta: uint16(frameType)}, nil

	case frameType <= 127:
		vti, err := parseVerificationTypeInfo(r, pool)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItem,
			OffsetDelta: uint16(frameType) - 64,
			Stack:       []VerificationTypeInfo{vti},
		}, nil

	case frameType == 247:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		vti, err := parseVerificationTypeInfo(r, pool)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItemExtended,
			OffsetDelta: offsetDelta,
			Stack:       []VerificationTypeInfo{vti},
		}, nil

	case frameType >= 248 && frameType <= 250:
		chopCount := uint8(251 - frameType)
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameChop, OffsetDelta: offsetDelta, ChopCount: chopCount}, nil

	case frameType == 251:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameSameExtended, OffsetDelta: offsetDelta}, nil

	case frameType >= 252 && frameType <= 254:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		localsCount := int(frameType) - 251
		locals := make([]VerificationTypeInfo, localsCount)
		for i := range locals {
			locals[i], err = parseVerificationTypeInfo(r, pool)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameAppend, OffsetDelta: offsetDelta, Locals: locals}, nil

	case frameType == 255:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		localsCount, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals := make([]VerificationTypeInfo, localsCount)
		for i := range locals {
			locals[i], err = parseVerificationTypeInfo(r, pool)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		stackCount, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack := make([]VerificationTypeInfo, stackCount)
		for i := range stack {
			stack[i], err = parseVerificationTypeInfo(r, pool)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameFull, OffsetDelta: offsetDelta, Locals: locals, Stack: stack}, nil

	default:
		return StackMapFrame{}, errUnknownStackMapFrameType(frameType)
	}
}

func parseStackMapTable(r *reader, pool *ConstantPool) ([]StackMapFrame, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		frames[i], err = parseStackMapFrame(r, pool)
		if err != nil {
			return nil, err
		}
	}
	return frames, nil
}
