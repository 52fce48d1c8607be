package classfile

// Op identifies an instruction's opcode. Wide-prefixed variants (0xc4) are
// modeled as distinct Op values above 0x100, one per JVMS-legal wide form,
// since they carry a 16-bit operand instead of an 8-bit one.
type Op uint16

const (
	OpNop         Op = 0x00
	OpAConstNull  Op = 0x01
	OpIConstM1    Op = 0x02
	OpIConst0     Op = 0x03
	OpIConst1     Op = 0x04
	OpIConst2     Op = 0x05
	OpIConst3     Op = 0x06
	OpIConst4     Op = 0x07
	OpIConst5     Op = 0x08
	OpLConst0     Op = 0x09
	OpLConst1     Op = 0x0a
	OpFConst0     Op = 0x0b
	OpFConst1     Op = 0x0c
	OpFConst2     Op = 0x0d
	OpDConst0     Op = 0x0e
	OpDConst1     Op = 0x0f
	OpBiPush      Op = 0x10
	OpSiPush      Op = 0x11
	OpLdc         Op = 0x12
	OpLdcW        Op = 0x13
	OpLdc2W       Op = 0x14
	OpILoad       Op = 0x15
	OpLLoad       Op = 0x16
	OpFLoad       Op = 0x17
	OpDLoad       Op = 0x18
	OpALoad       Op = 0x19
	OpILoad0      Op = 0x1a
	OpILoad1      Op = 0x1b
	OpILoad2      Op = 0x1c
	OpILoad3      Op = 0x1d
	OpLLoad0      Op = 0x1e
	OpLLoad1      Op = 0x1f
	OpLLoad2      Op = 0x20
	OpLLoad3      Op = 0x21
	OpFLoad0      Op = 0x22
	OpFLoad1      Op = 0x23
	OpFLoad2      Op = 0x24
	OpFLoad3      Op = 0x25
	OpDLoad0      Op = 0x26
	OpDLoad1      Op = 0x27
	OpDLoad2      Op = 0x28
	OpDLoad3      Op = 0x29
	OpALoad0      Op = 0x2a
	OpALoad1      Op = 0x2b
	OpALoad2      Op = 0x2c
	OpALoad3      Op = 0x2d
	OpIALoad      Op = 0x2e
	OpLALoad      Op = 0x2f
	OpFALoad      Op = 0x30
	OpDALoad      Op = 0x31
	OpAALoad      Op = 0x32
	OpBALoad      Op = 0x33
	OpCALoad      Op = 0x34
	OpSALoad      Op = 0x35
	OpIStore      Op = 0x36
	OpLStore      Op = 0x37
	OpFStore      Op = 0x38
	OpDStore      Op = 0x39
	OpAStore      Op = 0x3a
	OpIStore0     Op = 0x3b
	OpIStore1     Op = 0x3c
	OpIStore2     Op = 0x3d
	OpIStore3     Op = 0x3e
	OpLStore0     Op = 0x3f
	OpLStore1     Op = 0x40
	OpLStore2     Op = 0x41
	OpLStore3     Op = 0x42
	OpFStore0     Op = 0x43
	OpFStore1     Op = 0x44
	OpFStore2     Op = 0x45
	OpFStore3     Op = 0x46
	OpDStore0     Op = 0x47
	OpDStore1     Op = 0x48
	OpDStore2     Op = 0x49
	OpDStore3     Op = 0x4a
	OpAStore0     Op = 0x4b
	OpAStore1     Op = 0x4c
	OpAStore2     Op = 0x4d
	OpAStore3     Op = 0x4e
	OpIAStore     Op = 0x4f
	OpLAStore     Op = 0x50
	OpFAStore     Op = 0x51
	OpDAStore     Op = 0x52
	OpAAStore     Op = 0x53
	OpBAStore     Op = 0x54
	OpCAStore     Op = 0x55
	OpSAStore     Op = 0x56
	OpPop         Op = 0x57
	OpPop2        Op = 0x58
	OpDup         Op = 0x59
	OpDupX1       Op = 0x5a
	OpDupX2       Op = 0x5b
	OpDup2        Op = 0x5c
	OpDup2X1      Op = 0x5d
	OpDup2X2      Op = 0x5e
	OpSwap        Op = 0x5f
	OpIAdd        Op = 0x60
	OpLAdd        Op = 0x61
	OpFAdd        Op = 0x62
	OpDAdd        Op = 0x63
	OpISub        Op = 0x64
	OpLSub        Op = 0x65
	OpFSub        Op = 0x66
	OpDSub        Op = 0x67
	OpIMul        Op = 0x68
	OpLMul        Op = 0x69
	OpFMul        Op = 0x6a
	OpDMul        Op = 0x6b
	OpIDiv        Op = 0x6c
	OpLDiv        Op = 0x6d
	OpFDiv        Op = 0x6e
	OpDDiv        Op = 0x6f
	OpIRem        Op = 0x70
	OpLRem        Op = 0x71
	OpFRem        Op = 0x72
	OpDRem        Op = 0x73
	OpINeg        Op = 0x74
	OpLNeg        Op = 0x75
	OpFNeg        Op = 0x76
	OpDNeg        Op = 0x77
	OpIShl        Op = 0x78
	OpLShl        Op = 0x79
	OpIShr        Op = 0x7a
	OpLShr        Op = 0x7b
	OpIUShr       Op = 0x7c
	OpLUShr       Op = 0x7d
	OpIAnd        Op = 0x7e
	OpLAnd        Op = 0x7f
	OpIOr         Op = 0x80
	OpLOr         Op = 0x81
	OpIXor        Op = 0x82
	OpLXor        Op = 0x83
	OpIInc        Op = 0x84
	OpI2L         Op = 0x85
	OpI2F         Op = 0x86
	OpI2D         Op = 0x87
	OpL2I         Op = 0x88
	OpL2F         Op = 0x89
	OpL2D         Op = 0x8a
	OpF2I         Op = 0x8b
	OpF2L         Op = 0x8c
	OpF2D         Op = 0x8d
	OpD2I         Op = 0x8e
	OpD2L         Op = 0x8f
	OpD2F         Op = 0x90
	OpI2B         Op = 0x91
	OpI2C         Op = 0x92
	OpI2S         Op = 0x93
	OpLCmp        Op = 0x94
	OpFCmpL       Op = 0x95
	OpFCmpG       Op = 0x96
	OpDCmpL       Op = 0x97
	OpDCmpG       Op = 0x98
	OpIfEq        Op = 0x99
	OpIfNe        Op = 0x9a
	OpIfLt        Op = 0x9b
	OpIfGe        Op = 0x9c
	OpIfGt        Op = 0x9d
	OpIfLe        Op = 0x9e
	OpIfICmpEq    Op = 0x9f
	OpIfICmpNe    Op = 0xa0
	OpIfICmpLt    Op = 0xa1
	OpIfICmpGe    Op = 0xa2
	OpIfICmpGt    Op = 0xa3
	OpIfICmpLe    Op = 0xa4
	OpIfACmpEq    Op = 0xa5
	OpIfACmpNe    Op = 0xa6
	OpGoto        Op = 0xa7
	OpJsr         Op = 0xa8
	OpRet         Op = 0xa9
	OpTableSwitch Op = 0xaa
	OpLookupSwitch Op = 0xab
	OpIReturn     Op = 0xac
	OpLReturn     Op = 0xad
	OpFReturn     Op = 0xae
	OpDReturn     Op = 0xaf
	OpAReturn     Op = 0xb0
	OpReturn      Op = 0xb1
	OpGetStatic   Op = 0xb2
	OpPutStatic   Op = 0xb3
	OpGetField    Op = 0xb4
	OpPutField    Op = 0xb5
	OpInvokeVirtual   Op = 0xb6
	OpInvokeSpecial   Op = 0xb7
	OpInvokeStatic    Op = 0xb8
	OpInvokeInterface Op = 0xb9
	OpInvokeDynamic   Op = 0xba
	OpNew           Op = 0xbb
	OpNewArray      Op = 0xbc
	OpANewArray     Op = 0xbd
	OpArrayLength   Op = 0xbe
	OpAThrow        Op = 0xbf
	OpCheckCast     Op = 0xc0
	OpInstanceOf    Op = 0xc1
	OpMonitorEnter  Op = 0xc2
	OpMonitorExit   Op = 0xc3
	opWidePrefix    Op = 0xc4
	OpMultiANewArray Op = 0xc5
	OpIfNull        Op = 0xc6
	OpIfNonNull     Op = 0xc7
	OpGotoW         Op = 0xc8
	OpJsrW          Op = 0xc9

	// Wide-prefixed forms, synthesized above the single-byte opcode range.
	OpWideILoad Op = 0x100 + 0x15
	OpWideLLoad Op = 0x100 + 0x16
	OpWideFLoad Op = 0x100 + 0x17
	OpWideDLoad Op = 0x100 + 0x18
	OpWideALoad Op = 0x100 + 0x19
	OpWideIStore Op = 0x100 + 0x36
	OpWideLStore Op = 0x100 + 0x37
	OpWideFStore Op = 0x100 + 0x38
	OpWideDStore Op = 0x100 + 0x39
	OpWideAStore Op = 0x100 + 0x3a
	OpWideRet    Op = 0x100 + 0xa9
	OpWideIInc   Op = 0x100 + 0x84
)

// PrimitiveArrayType enumerates the type codes newarray accepts.
type PrimitiveArrayType int

const (
	ArrayBoolean PrimitiveArrayType = iota
	ArrayChar
	ArrayFloat
	ArrayDouble
	ArrayByte
	ArrayShort
	ArrayInt
	ArrayLong
)

// LookupPair is one (match, offset) entry of a lookupswitch.
type LookupPair struct {
	Match  int32
	Offset int32
}

// Instruction is a single decoded bytecode instruction. It carries one Go
// struct per pc with the operand fields relevant to Op populated; resolved
// references replace raw constant pool indices and switch targets are
// stored as PC-relative offsets (the decoder leaves absolute-target
// computation to callers since it operates without knowledge of a method's
// overall pc layout beyond its own cursor).
type Instruction struct {
	Op Op

	// Local variable index: *Load/*Store family, Ret, IInc, wide variants.
	VarIndex uint16
	// Signed increment operand of iinc/wide iinc.
	IncAmount int32

	// bipush/sipush immediate.
	IntImmediate int32

	// Branch offset, relative to the opcode's own pc; signed 16 or 32 bit
	// depending on the instruction (goto_w/jsr_w use 32-bit offsets).
	BranchOffset int32

	// ldc/ldc_w/ldc2_w.
	Constant ConstantValue

	// new, checkcast, instanceof.
	ClassRef ClassReference

	// anewarray, multianewarray (array element/component type).
	ArrayType FieldType
	Dimensions uint8 // multianewarray

	// newarray.
	PrimitiveArray PrimitiveArrayType

	// getfield/putfield/getstatic/putstatic.
	FieldRef FieldReference

	// invokevirtual/invokespecial/invokestatic.
	MethodRef MethodReference
	// invokeinterface.
	InterfaceMethod InterfaceMethodReference
	InterfaceArgCount uint8
	// invokedynamic.
	DynamicCallSite InvokeDynamicValue

	// tableswitch / lookupswitch.
	Default       int32
	TableLow      int32
	TableHigh     int32
	TableOffsets  []int32
	LookupPairs   []LookupPair
}

// decodeInstructions decodes the entire byte array of a Code attribute into
// a pc-indexed instruction map. code starts at pc 0 (the offset convention
// used throughout this package is relative to the start of the code array).
func decodeInstructions(code []byte, pool *ConstantPool) (map[uint16]Instruction, error) {
	out := make(map[uint16]Instruction)
	pc := 0
	for pc < len(code) {
		start := pc
		insn, next, err := decodeOneInstruction(code, pc, pool)
		if err != nil {
			return nil, err
		}
		out[uint16(start)] = insn
		pc = next
	}
	return out, nil
}

func decodeOneInstruction(code []byte, pc int, pool *ConstantPool) (Instruction, int, error) {
	cur := &codeCursor{code: code, pc: pc}
	opcode, err := cur.u1()
	if err != nil {
		return Instruction{}, 0, err
	}

	switch opcode {
	case 0x00:
		return Instruction{Op: OpNop}, cur.pc, nil
	case 0x01:
		return Instruction{Op: OpAConstNull}, cur.pc, nil
	case 0x02:
		return Instruction{Op: OpIConstM1}, cur.pc, nil
	case 0x03:
		return Instruction{Op: OpIConst0}, cur.pc, nil
	case 0x04:
		return Instruction{Op: OpIConst1}, cur.pc, nil
	case 0x05:
		return Instruction{Op: OpIConst2}, cur.pc, nil
	case 0x06:
		return Instruction{Op: OpIConst3}, cur.pc, nil
	case 0x07:
		return Instruction{Op: OpIConst4}, cur.pc, nil
	case 0x08:
		return Instruction{Op: OpIConst5}, cur.pc, nil
	case 0x09:
		return Instruction{Op: OpLConst0}, cur.pc, nil
	case 0x0a:
		return Instruction{Op: OpLConst1}, cur.pc, nil
	case 0x0b:
		return Instruction{Op: OpFConst0}, cur.pc, nil
	case 0x0c:
		return Instruction{Op: OpFConst1}, cur.pc, nil
	case 0x0d:
		return Instruction{Op: OpFConst2}, cur.pc, nil
	case 0x0e:
		return Instruction{Op: OpDConst0}, cur.pc, nil
	case 0x0f:
		return Instruction{Op: OpDConst1}, cur.pc, nil

	case 0x10:
		v, err := cur.i1()
		return Instruction{Op: OpBiPush, IntImmediate: int32(v)}, cur.pc, err
	case 0x11:
		v, err := cur.i2()
		return Instruction{Op: OpSiPush, IntImmediate: int32(v)}, cur.pc, err

	case 0x12:
		idx, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		cv, err := pool.GetConstantValue(uint16(idx))
		if err != nil {
			return Instruction{}, 0, err
		}
		if cv.Kind == ConstLong || cv.Kind == ConstDouble {
			return Instruction{}, 0, errMalformed("ldc cannot load a Long or Double constant")
		}
		return Instruction{Op: OpLdc, Constant: cv}, cur.pc, nil

	case 0x13:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		cv, err := pool.GetConstantValue(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		if cv.Kind == ConstLong || cv.Kind == ConstDouble {
			return Instruction{}, 0, errMalformed("ldc_w cannot load a Long or Double constant")
		}
		return Instruction{Op: OpLdcW, Constant: cv}, cur.pc, nil

	case 0x14:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		cv, err := pool.GetConstantValue(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		if cv.Kind != ConstLong && cv.Kind != ConstDouble {
			return Instruction{}, 0, errMalformed("ldc2_w requires a Long or Double constant")
		}
		return Instruction{Op: OpLdc2W, Constant: cv}, cur.pc, nil

	case 0x15, 0x16, 0x17, 0x18, 0x19, 0x36, 0x37, 0x38, 0x39, 0x3a:
		idx, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: Op(opcode), VarIndex: uint16(idx)}, cur.pc, nil

	case 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20, 0x21, 0x22, 0x23, 0x24, 0x25,
		0x26, 0x27, 0x28, 0x29, 0x2a, 0x2b, 0x2c, 0x2d,
		0x2e, 0x2f, 0x30, 0x31, 0x32, 0x33, 0x34, 0x35,
		0x3b, 0x3c, 0x3d, 0x3e, 0x3f, 0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46,
		0x47, 0x48, 0x49, 0x4a, 0x4b, 0x4c, 0x4d, 0x4e,
		0x4f, 0x50, 0x51, 0x52, 0x53, 0x54, 0x55, 0x56,
		0x57, 0x58, 0x59, 0x5a, 0x5b, 0x5c, 0x5d, 0x5e, 0x5f,
		0x60, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69, 0x6a, 0x6b,
		0x6c, 0x6d, 0x6e, 0x6f, 0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x76, 0x77,
		0x78, 0x79, 0x7a, 0x7b, 0x7c, 0x7d, 0x7e, 0x7f, 0x80, 0x81, 0x82, 0x83,
		0x85, 0x86, 0x87, 0x88, 0x89, 0x8a, 0x8b, 0x8c, 0x8d, 0x8e, 0x8f,
		0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
		0xac, 0xad, 0xae, 0xaf, 0xb0, 0xb1,
		0xbe, 0xbf, 0xc2, 0xc3:
		return Instruction{Op: Op(opcode)}, cur.pc, nil

	case 0x84:
		idx, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		amt, err := cur.i1()
		return Instruction{Op: OpIInc, VarIndex: uint16(idx), IncAmount: int32(amt)}, cur.pc, err

	case 0x99, 0x9a, 0x9b, 0x9c, 0x9d, 0x9e,
		0x9f, 0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6,
		0xa7, 0xc6, 0xc7:
		off, err := cur.i2()
		return Instruction{Op: Op(opcode), BranchOffset: int32(off)}, cur.pc, err

	case 0xa8:
		off, err := cur.i2()
		return Instruction{Op: OpJsr, BranchOffset: int32(off)}, cur.pc, err

	case 0xa9:
		idx, err := cur.u1()
		return Instruction{Op: OpRet, VarIndex: uint16(idx)}, cur.pc, err

	case 0xc8:
		off, err := cur.i4()
		return Instruction{Op: OpGotoW, BranchOffset: off}, cur.pc, err
	case 0xc9:
		off, err := cur.i4()
		return Instruction{Op: OpJsrW, BranchOffset: off}, cur.pc, err

	case 0xaa:
		return decodeTableSwitch(cur)
	case 0xab:
		return decodeLookupSwitch(cur)

	case 0xb2, 0xb3, 0xb4, 0xb5:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		fr, err := pool.GetFieldRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: Op(opcode), FieldRef: fr}, cur.pc, nil

	case 0xb6, 0xb7, 0xb8:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		mr, err := pool.GetMethodRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: Op(opcode), MethodRef: mr}, cur.pc, nil

	case 0xb9:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		mr, err := pool.GetMethodRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		if mr.Interface == nil {
			return Instruction{}, 0, errMalformed("invokeinterface must reference an interface method")
		}
		count, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		zero, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		if zero != 0 {
			return Instruction{}, 0, errMalformed("invokeinterface trailing byte must be zero")
		}
		return Instruction{Op: OpInvokeInterface, InterfaceMethod: *mr.Interface, InterfaceArgCount: count}, cur.pc, nil

	case 0xba:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		dv, err := pool.GetInvokeDynamic(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		z1, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		z2, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		if z1 != 0 || z2 != 0 {
			return Instruction{}, 0, errMalformed("invokedynamic trailing bytes must be zero")
		}
		return Instruction{Op: OpInvokeDynamic, DynamicCallSite: dv}, cur.pc, nil

	case 0xbb:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		cr, err := pool.GetClassRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: OpNew, ClassRef: cr}, cur.pc, nil

	case 0xbc:
		typeID, err := cur.u1()
		if err != nil {
			return Instruction{}, 0, err
		}
		pt, err := primitiveArrayType(typeID)
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: OpNewArray, PrimitiveArray: pt}, cur.pc, nil

	case 0xbd:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		ft, err := pool.GetArrayTypeRef(idx)
		if err != nil {
			// ANewArray's operand may also be a plain (non-array) class ref;
			// in that case the element type is that class itself.
			cr, cerr := pool.GetClassRef(idx)
			if cerr != nil {
				return Instruction{}, 0, err
			}
			ft = FieldType{ObjectName: cr.BinaryName}
		}
		return Instruction{Op: OpANewArray, ArrayType: ft}, cur.pc, nil

	case 0xc0:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		cr, err := pool.GetClassRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: OpCheckCast, ClassRef: cr}, cur.pc, nil

	case 0xc1:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		cr, err := pool.GetClassRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		return Instruction{Op: OpInstanceOf, ClassRef: cr}, cur.pc, nil

	case 0xc5:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		ft, err := pool.GetArrayTypeRef(idx)
		if err != nil {
			return Instruction{}, 0, err
		}
		dims, err := cur.u1()
		return Instruction{Op: OpMultiANewArray, ArrayType: ft, Dimensions: dims}, cur.pc, err

	case 0xc4:
		return decodeWide(cur)

	default:
		return Instruction{}, 0, errUnexpectedOpCode(opcode)
	}
}

func primitiveArrayType(code uint8) (PrimitiveArrayType, error) {
	switch code {
	case 4:
		return ArrayBoolean, nil
	case 5:
		return ArrayChar, nil
	case 6:
		return ArrayFloat, nil
	case 7:
		return ArrayDouble, nil
	case 8:
		return ArrayByte, nil
	case 9:
		return ArrayShort, nil
	case 10:
		return ArrayInt, nil
	case 11:
		return ArrayLong, nil
	default:
		return 0, errMalformedf("newarray: unknown primitive type code %d", code)
	}
}

func decodeTableSwitch(cur *codeCursor) (Instruction, int, error) {
	cur.alignTo4()
	def, err := cur.i4()
	if err != nil {
		return Instruction{}, 0, err
	}
	low, err := cur.i4()
	if err != nil {
		return Instruction{}, 0, err
	}
	high, err := cur.i4()
	if err != nil {
		return Instruction{}, 0, err
	}
	if high < low {
		return Instruction{}, 0, errMalformed("tableswitch: high < low")
	}
	n := int(high-low) + 1
	offsets := make([]int32, n)
	for i := range offsets {
		offsets[i], err = cur.i4()
		if err != nil {
			return Instruction{}, 0, err
		}
	}
	return Instruction{Op: OpTableSwitch, Default: def, TableLow: low, TableHigh: high, TableOffsets: offsets}, cur.pc, nil
}

func decodeLookupSwitch(cur *codeCursor) (Instruction, int, error) {
	cur.alignTo4()
	def, err := cur.i4()
	if err != nil {
		return Instruction{}, 0, err
	}
	npairs, err := cur.i4()
	if err != nil {
		return Instruction{}, 0, err
	}
	if npairs < 0 {
		return Instruction{}, 0, errMalformed("lookupswitch: negative npairs")
	}
	pairs := make([]LookupPair, npairs)
	for i := range pairs {
		match, err := cur.i4()
		if err != nil {
			return Instruction{}, 0, err
		}
		offset, err := cur.i4()
		if err != nil {
			return Instruction{}, 0, err
		}
		pairs[i] = LookupPair{Match: match, Offset: offset}
	}
	return Instruction{Op: OpLookupSwitch, Default: def, LookupPairs: pairs}, cur.pc, nil
}

func decodeWide(cur *codeCursor) (Instruction, int, error) {
	wideOp, err := cur.u1()
	if err != nil {
		return Instruction{}, 0, err
	}
	switch wideOp {
	case 0x15, 0x16, 0x17, 0x18, 0x19, 0x36, 0x37, 0x38, 0x39, 0x3a:
		idx, err := cur.u2()
		return Instruction{Op: Op(0x100 + Op(wideOp)), VarIndex: idx}, cur.pc, err
	case 0xa9:
		idx, err := cur.u2()
		return Instruction{Op: OpWideRet, VarIndex: idx}, cur.pc, err
	case 0x84:
		idx, err := cur.u2()
		if err != nil {
			return Instruction{}, 0, err
		}
		amt, err := cur.i2()
		return Instruction{Op: OpWideIInc, VarIndex: idx, IncAmount: int32(amt)}, cur.pc, err
	default:
		return Instruction{}, 0, errUnexpectedOpCode(wideOp)
	}
}

// codeCursor is a local, seek-free cursor over a method's raw code bytes,
// used to read every instruction's opcode and operands; its pc is relative
// to the start of the code array, which the 4-byte switch padding needs (§5's resource policy: the decoder never
// seeks the outer reader).
type codeCursor struct {
	code []byte
	pc   int
}

func (c *codeCursor) u1() (uint8, error) {
	if c.pc >= len(c.code) {
		return 0, errMalformed("unexpected end of code array")
	}
	v := c.code[c.pc]
	c.pc++
	return v, nil
}

func (c *codeCursor) i1() (int8, error) {
	v, err := c.u1()
	return int8(v), err
}

func (c *codeCursor) u2() (uint16, error) {
	hi, err := c.u1()
	if err != nil {
		return 0, err
	}
	lo, err := c.u1()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *codeCursor) i2() (int16, error) {
	v, err := c.u2()
	return int16(v), err
}

func (c *codeCursor) u4() (uint32, error) {
	hi, err := c.u2()
	if err != nil {
		return 0, err
	}
	lo, err := c.u2()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func (c *codeCursor) i4() (int32, error) {
	v, err := c.u4()
	return int32(v), err
}

func (c *codeCursor) alignTo4() {
	for c.pc%4 != 0 {
		c.pc++
	}
}
