package analyzer

import "github.com/jvmkit/jvmkit/pkg/classfile"

// step interprets one instruction against frame (already a private copy)
// and returns its IR record plus every successor edge reachable directly
// from it (fallthrough included, when applicable). frame is mutated in
// place to become the post-instruction state used for the fallthrough
// edge.
func step(gen *idGen, pc uint16, insn classfile.Instruction, frame *Frame, nextOf map[uint16]uint16) (IrInstruction, []edge, error) {
	ir := IrInstruction{PC: pc, Op: insn.Op}

	fallthroughEdge := func() []edge {
		next, ok := nextOf[pc]
		if !ok {
			return nil
		}
		ir.Falls = true
		return []edge{{pc: next, frame: frame}}
	}

	// Implicit/explicit local load & store family.
	if isStore, kind, localIndex, explicit, ok := loadStoreInfo(insn.Op); ok {
		index := localIndex
		if explicit {
			index = insn.VarIndex
		}
		if isStore {
			v, err := frame.popExpect(pc, kind.category())
			if err != nil {
				return ir, nil, err
			}
			if v.Kind != kind {
				return ir, nil, errTypeCategoryMismatch(pc, "store expected "+kind.String()+" on top of stack")
			}
			if err := frame.setLocal(pc, index, v); err != nil {
				return ir, nil, err
			}
			ir.OpKind = OpKindStore
			ir.Uses = []Value{v}
			return ir, fallthroughEdge(), nil
		}
		v, err := frame.getLocalExpect(pc, index, kind)
		if err != nil {
			return ir, nil, err
		}
		frame.push(v)
		ir.OpKind = OpKindLoad
		ir.Defines = &v
		return ir, fallthroughEdge(), nil
	}

	switch insn.Op {
	case classfile.OpNop:
		ir.OpKind = OpKindNop
		return ir, fallthroughEdge(), nil

	case classfile.OpAConstNull:
		v := gen.fresh(KindReference)
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpIConstM1, classfile.OpIConst0, classfile.OpIConst1, classfile.OpIConst2,
		classfile.OpIConst3, classfile.OpIConst4, classfile.OpIConst5, classfile.OpBiPush, classfile.OpSiPush:
		v := gen.fresh(KindInt)
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpLConst0, classfile.OpLConst1:
		v := gen.fresh(KindLong)
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpFConst0, classfile.OpFConst1, classfile.OpFConst2:
		v := gen.fresh(KindFloat)
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpDConst0, classfile.OpDConst1:
		v := gen.fresh(KindDouble)
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpLdc, classfile.OpLdcW:
		v := gen.fresh(constantValueKind(insn.Constant))
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpLdc2W:
		kind := KindLong
		if insn.Constant.Kind == classfile.ConstDouble {
			kind = KindDouble
		}
		v := gen.fresh(kind)
		frame.push(v)
		ir.OpKind, ir.Defines = OpKindConst, &v
		return ir, fallthroughEdge(), nil

	case classfile.OpIInc, classfile.OpWideIInc:
		v, err := frame.getLocalExpect(pc, insn.VarIndex, KindInt)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindInt)
		if err := frame.setLocal(pc, insn.VarIndex, result); err != nil {
			return ir, nil, err
		}
		ir.OpKind = OpKindArithmetic
		ir.Uses = []Value{v}
		ir.Defines = &result
		return ir, fallthroughEdge(), nil

	case classfile.OpIAdd, classfile.OpLAdd, classfile.OpFAdd, classfile.OpDAdd,
		classfile.OpISub, classfile.OpLSub, classfile.OpFSub, classfile.OpDSub,
		classfile.OpIMul, classfile.OpLMul, classfile.OpFMul, classfile.OpDMul,
		classfile.OpIDiv, classfile.OpLDiv, classfile.OpFDiv, classfile.OpDDiv,
		classfile.OpIRem, classfile.OpLRem, classfile.OpFRem, classfile.OpDRem,
		classfile.OpIAnd, classfile.OpLAnd, classfile.OpIOr, classfile.OpLOr,
		classfile.OpIXor, classfile.OpLXor:
		kind := binaryArithKind[insn.Op]
		b, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		a, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(kind)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindArithmetic, []Value{a, b}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpIShl, classfile.OpLShl, classfile.OpIShr, classfile.OpLShr, classfile.OpIUShr, classfile.OpLUShr:
		kind := shiftKind[insn.Op]
		shift, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		value, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(kind)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindArithmetic, []Value{value, shift}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpINeg, classfile.OpLNeg, classfile.OpFNeg, classfile.OpDNeg:
		kind := unaryArithKind[insn.Op]
		v, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(kind)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindArithmetic, []Value{v}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpI2L, classfile.OpI2F, classfile.OpI2D, classfile.OpL2I, classfile.OpL2F, classfile.OpL2D,
		classfile.OpF2I, classfile.OpF2L, classfile.OpF2D, classfile.OpD2I, classfile.OpD2L, classfile.OpD2F,
		classfile.OpI2B, classfile.OpI2C, classfile.OpI2S:
		conv := convertKind[insn.Op]
		v, err := frame.popExpect(pc, conv.from.category())
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(conv.to)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindCast, []Value{v}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpLCmp, classfile.OpFCmpL, classfile.OpFCmpG, classfile.OpDCmpL, classfile.OpDCmpG:
		kind := compareKind[insn.Op]
		b, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		a, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindInt)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindCompare, []Value{a, b}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpPop:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		ir.OpKind, ir.Uses = OpKindStackOp, []Value{v}
		return ir, fallthroughEdge(), nil

	case classfile.OpPop2:
		v1, err := frame.pop(pc)
		if err != nil {
			return ir, nil, err
		}
		uses := []Value{v1}
		if v1.Kind.category() == 1 {
			v2, err := frame.popExpect(pc, 1)
			if err != nil {
				return ir, nil, err
			}
			uses = append(uses, v2)
		}
		ir.OpKind, ir.Uses = OpKindStackOp, uses
		return ir, fallthroughEdge(), nil

	case classfile.OpDup:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		frame.push(v)
		frame.push(v)
		ir.OpKind, ir.Uses = OpKindStackOp, []Value{v}
		return ir, fallthroughEdge(), nil

	case classfile.OpDupX1:
		v1, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		v2, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		frame.push(v1)
		frame.push(v2)
		frame.push(v1)
		ir.OpKind, ir.Uses = OpKindStackOp, []Value{v1, v2}
		return ir, fallthroughEdge(), nil

	case classfile.OpDupX2:
		v1, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		v2, err := frame.pop(pc)
		if err != nil {
			return ir, nil, err
		}
		if v2.Kind.category() == 1 {
			v3, err := frame.popExpect(pc, 1)
			if err != nil {
				return ir, nil, err
			}
			frame.push(v1)
			frame.push(v3)
			frame.push(v2)
			frame.push(v1)
			ir.Uses = []Value{v1, v2, v3}
		} else {
			frame.push(v1)
			frame.push(v2)
			frame.push(v1)
			ir.Uses = []Value{v1, v2}
		}
		ir.OpKind = OpKindStackOp
		return ir, fallthroughEdge(), nil

	case classfile.OpDup2:
		v1, err := frame.pop(pc)
		if err != nil {
			return ir, nil, err
		}
		if v1.Kind.category() == 2 {
			frame.push(v1)
			frame.push(v1)
			ir.Uses = []Value{v1}
		} else {
			v2, err := frame.popExpect(pc, 1)
			if err != nil {
				return ir, nil, err
			}
			frame.push(v2)
			frame.push(v1)
			frame.push(v2)
			frame.push(v1)
			ir.Uses = []Value{v1, v2}
		}
		ir.OpKind = OpKindStackOp
		return ir, fallthroughEdge(), nil

	case classfile.OpDup2X1:
		v1, err := frame.pop(pc)
		if err != nil {
			return ir, nil, err
		}
		v2, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		if v1.Kind.category() == 2 {
			frame.push(v1)
			frame.push(v2)
			frame.push(v1)
			ir.Uses = []Value{v1, v2}
		} else {
			v3, err := frame.popExpect(pc, 1)
			if err != nil {
				return ir, nil, err
			}
			frame.push(v2)
			frame.push(v1)
			frame.push(v3)
			frame.push(v2)
			frame.push(v1)
			ir.Uses = []Value{v1, v2, v3}
		}
		ir.OpKind = OpKindStackOp
		return ir, fallthroughEdge(), nil

	case classfile.OpDup2X2:
		v1, err := frame.pop(pc)
		if err != nil {
			return ir, nil, err
		}
		v2, err := frame.pop(pc)
		if err != nil {
			return ir, nil, err
		}
		if v1.Kind.category() == 2 && v2.Kind.category() == 2 {
			frame.push(v1)
			frame.push(v2)
			frame.push(v1)
			ir.Uses = []Value{v1, v2}
		} else if v1.Kind.category() == 1 && v2.Kind.category() == 1 {
			v3, err := frame.pop(pc)
			if err != nil {
				return ir, nil, err
			}
			if v3.Kind.category() == 2 {
				frame.push(v2)
				frame.push(v1)
				frame.push(v3)
				frame.push(v2)
				frame.push(v1)
				ir.Uses = []Value{v1, v2, v3}
			} else {
				v4, err := frame.popExpect(pc, 1)
				if err != nil {
					return ir, nil, err
				}
				frame.push(v2)
				frame.push(v1)
				frame.push(v4)
				frame.push(v3)
				frame.push(v2)
				frame.push(v1)
				ir.Uses = []Value{v1, v2, v3, v4}
			}
		} else {
			return ir, nil, errTypeCategoryMismatch(pc, "dup2_x2: inconsistent operand categories")
		}
		ir.OpKind = OpKindStackOp
		return ir, fallthroughEdge(), nil

	case classfile.OpSwap:
		v1, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		v2, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		frame.push(v1)
		frame.push(v2)
		ir.OpKind, ir.Uses = OpKindStackOp, []Value{v1, v2}
		return ir, fallthroughEdge(), nil

	case classfile.OpIALoad, classfile.OpLALoad, classfile.OpFALoad, classfile.OpDALoad,
		classfile.OpAALoad, classfile.OpBALoad, classfile.OpCALoad, classfile.OpSALoad:
		index, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		arrayRef, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		kind := arrayLoadKind[insn.Op]
		result := gen.fresh(kind)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindArrayAccess, []Value{arrayRef, index}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpIAStore, classfile.OpLAStore, classfile.OpFAStore, classfile.OpDAStore,
		classfile.OpAAStore, classfile.OpBAStore, classfile.OpCAStore, classfile.OpSAStore:
		kind := arrayStoreKind[insn.Op]
		value, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		index, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		arrayRef, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		ir.OpKind, ir.Uses = OpKindArrayAccess, []Value{arrayRef, index, value}
		return ir, fallthroughEdge(), nil

	case classfile.OpArrayLength:
		arrayRef, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindInt)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindArrayAccess, []Value{arrayRef}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpGetStatic:
		result := gen.fresh(kindOfFieldType(insn.FieldRef.FieldType))
		frame.push(result)
		fr := insn.FieldRef
		ir.OpKind, ir.Defines, ir.FieldRef = OpKindFieldAccess, &result, &fr
		return ir, fallthroughEdge(), nil

	case classfile.OpPutStatic:
		value, err := frame.popExpect(pc, kindOfFieldType(insn.FieldRef.FieldType).category())
		if err != nil {
			return ir, nil, err
		}
		fr := insn.FieldRef
		ir.OpKind, ir.Uses, ir.FieldRef = OpKindFieldAccess, []Value{value}, &fr
		return ir, fallthroughEdge(), nil

	case classfile.OpGetField:
		objectRef, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(kindOfFieldType(insn.FieldRef.FieldType))
		frame.push(result)
		fr := insn.FieldRef
		ir.OpKind, ir.Uses, ir.Defines, ir.FieldRef = OpKindFieldAccess, []Value{objectRef}, &result, &fr
		return ir, fallthroughEdge(), nil

	case classfile.OpPutField:
		value, err := frame.popExpect(pc, kindOfFieldType(insn.FieldRef.FieldType).category())
		if err != nil {
			return ir, nil, err
		}
		objectRef, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		fr := insn.FieldRef
		ir.OpKind, ir.Uses, ir.FieldRef = OpKindFieldAccess, []Value{objectRef, value}, &fr
		return ir, fallthroughEdge(), nil

	case classfile.OpInvokeVirtual, classfile.OpInvokeSpecial, classfile.OpInvokeStatic:
		desc := methodRefDescriptor(insn.MethodRef)
		args, err := popArgs(pc, frame, desc.Parameters)
		if err != nil {
			return ir, nil, err
		}
		if insn.Op != classfile.OpInvokeStatic {
			objectRef, err := frame.popExpect(pc, 1)
			if err != nil {
				return ir, nil, err
			}
			args = append([]Value{objectRef}, args...)
		}
		mr := insn.MethodRef
		ir.OpKind, ir.Uses, ir.MethodRef = OpKindInvoke, args, &mr
		if !desc.Return.Void {
			result := gen.fresh(kindOfFieldType(desc.Return.Value))
			frame.push(result)
			ir.Defines = &result
		}
		return ir, fallthroughEdge(), nil

	case classfile.OpInvokeInterface:
		args, err := popArgs(pc, frame, insn.InterfaceMethod.Descriptor.Parameters)
		if err != nil {
			return ir, nil, err
		}
		objectRef, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		args = append([]Value{objectRef}, args...)
		im := insn.InterfaceMethod
		ir.OpKind, ir.Uses, ir.InterfaceMethod = OpKindInvoke, args, &im
		if !insn.InterfaceMethod.Descriptor.Return.Void {
			result := gen.fresh(kindOfFieldType(insn.InterfaceMethod.Descriptor.Return.Value))
			frame.push(result)
			ir.Defines = &result
		}
		return ir, fallthroughEdge(), nil

	case classfile.OpInvokeDynamic:
		args, err := popArgs(pc, frame, insn.DynamicCallSite.Descriptor.Parameters)
		if err != nil {
			return ir, nil, err
		}
		dv := insn.DynamicCallSite
		ir.OpKind, ir.Uses, ir.DynamicCallSite = OpKindInvoke, args, &dv
		if !insn.DynamicCallSite.Descriptor.Return.Void {
			result := gen.fresh(kindOfFieldType(insn.DynamicCallSite.Descriptor.Return.Value))
			frame.push(result)
			ir.Defines = &result
		}
		return ir, fallthroughEdge(), nil

	case classfile.OpNew:
		result := gen.fresh(KindReference)
		frame.push(result)
		cr := insn.ClassRef
		ir.OpKind, ir.Defines, ir.ClassRef = OpKindAllocation, &result, &cr
		return ir, fallthroughEdge(), nil

	case classfile.OpNewArray:
		length, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindReference)
		frame.push(result)
		ir.OpKind, ir.Uses, ir.Defines = OpKindAllocation, []Value{length}, &result
		return ir, fallthroughEdge(), nil

	case classfile.OpANewArray:
		length, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindReference)
		frame.push(result)
		at := insn.ArrayType
		ir.OpKind, ir.Uses, ir.Defines, ir.ArrayType = OpKindAllocation, []Value{length}, &result, &at
		return ir, fallthroughEdge(), nil

	case classfile.OpMultiANewArray:
		dims := make([]Value, insn.Dimensions)
		for i := len(dims) - 1; i >= 0; i-- {
			v, err := frame.popExpect(pc, 1)
			if err != nil {
				return ir, nil, err
			}
			dims[i] = v
		}
		result := gen.fresh(KindReference)
		frame.push(result)
		at := insn.ArrayType
		ir.OpKind, ir.Uses, ir.Defines, ir.ArrayType = OpKindAllocation, dims, &result, &at
		return ir, fallthroughEdge(), nil

	case classfile.OpCheckCast:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindReference)
		frame.push(result)
		cr := insn.ClassRef
		ir.OpKind, ir.Uses, ir.Defines, ir.ClassRef = OpKindCast, []Value{v}, &result, &cr
		return ir, fallthroughEdge(), nil

	case classfile.OpInstanceOf:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		result := gen.fresh(KindInt)
		frame.push(result)
		cr := insn.ClassRef
		ir.OpKind, ir.Uses, ir.Defines, ir.ClassRef = OpKindCast, []Value{v}, &result, &cr
		return ir, fallthroughEdge(), nil

	case classfile.OpAThrow:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		ir.OpKind, ir.Uses = OpKindThrow, []Value{v}
		return ir, nil, nil

	case classfile.OpMonitorEnter, classfile.OpMonitorExit:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		ir.OpKind, ir.Uses = OpKindMonitor, []Value{v}
		return ir, fallthroughEdge(), nil

	case classfile.OpIReturn, classfile.OpLReturn, classfile.OpFReturn, classfile.OpDReturn, classfile.OpAReturn:
		kind := returnKind[insn.Op]
		v, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return ir, nil, err
		}
		ir.OpKind, ir.Uses = OpKindReturn, []Value{v}
		return ir, nil, nil

	case classfile.OpReturn:
		ir.OpKind = OpKindReturn
		return ir, nil, nil

	case classfile.OpIfEq, classfile.OpIfNe, classfile.OpIfLt, classfile.OpIfGe, classfile.OpIfGt, classfile.OpIfLe,
		classfile.OpIfNull, classfile.OpIfNonNull:
		v, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		target := uint16(int32(pc) + insn.BranchOffset)
		ir.OpKind, ir.Uses, ir.BranchTargets = OpKindBranch, []Value{v}, []uint16{target}
		edges := append(fallthroughEdge(), edge{pc: target, frame: frame.clone()})
		return ir, edges, nil

	case classfile.OpIfICmpEq, classfile.OpIfICmpNe, classfile.OpIfICmpLt, classfile.OpIfICmpGe,
		classfile.OpIfICmpGt, classfile.OpIfICmpLe, classfile.OpIfACmpEq, classfile.OpIfACmpNe:
		b, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		a, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		target := uint16(int32(pc) + insn.BranchOffset)
		ir.OpKind, ir.Uses, ir.BranchTargets = OpKindBranch, []Value{a, b}, []uint16{target}
		edges := append(fallthroughEdge(), edge{pc: target, frame: frame.clone()})
		return ir, edges, nil

	case classfile.OpGoto, classfile.OpGotoW:
		target := uint16(int32(pc) + insn.BranchOffset)
		ir.OpKind, ir.BranchTargets = OpKindBranch, []uint16{target}
		return ir, []edge{{pc: target, frame: frame}}, nil

	case classfile.OpJsr, classfile.OpJsrW:
		next, hasNext := nextOf[pc]
		if !hasNext {
			return ir, nil, errInvalidJumpTarget(pc)
		}
		retAddr := gen.freshReturnAddress(next)
		frame.push(retAddr)
		target := uint16(int32(pc) + insn.BranchOffset)
		ir.OpKind, ir.Defines, ir.BranchTargets = OpKindBranch, &retAddr, []uint16{target}
		return ir, []edge{{pc: target, frame: frame}}, nil

	case classfile.OpRet, classfile.OpWideRet:
		v, err := frame.getLocalExpect(pc, insn.VarIndex, KindReturnAddress)
		if err != nil {
			return ir, nil, err
		}
		ir.OpKind, ir.Uses, ir.BranchTargets = OpKindBranch, []Value{v}, []uint16{v.ReturnTarget}
		return ir, []edge{{pc: v.ReturnTarget, frame: frame}}, nil

	case classfile.OpTableSwitch:
		_, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		targets := make(map[int32]uint16, len(insn.TableOffsets))
		all := make([]uint16, 0, len(insn.TableOffsets)+1)
		for i, off := range insn.TableOffsets {
			t := uint16(int32(pc) + off)
			targets[insn.TableLow+int32(i)] = t
			all = append(all, t)
		}
		def := uint16(int32(pc) + insn.Default)
		all = append(all, def)
		ir.OpKind, ir.SwitchTargets, ir.SwitchDefault, ir.BranchTargets = OpKindSwitch, targets, def, all
		edges := make([]edge, len(all))
		for i, t := range all {
			edges[i] = edge{pc: t, frame: frame.clone()}
		}
		return ir, edges, nil

	case classfile.OpLookupSwitch:
		_, err := frame.popExpect(pc, 1)
		if err != nil {
			return ir, nil, err
		}
		targets := make(map[int32]uint16, len(insn.LookupPairs))
		all := make([]uint16, 0, len(insn.LookupPairs)+1)
		for _, p := range insn.LookupPairs {
			t := uint16(int32(pc) + p.Offset)
			targets[p.Match] = t
			all = append(all, t)
		}
		def := uint16(int32(pc) + insn.Default)
		all = append(all, def)
		ir.OpKind, ir.SwitchTargets, ir.SwitchDefault, ir.BranchTargets = OpKindSwitch, targets, def, all
		edges := make([]edge, len(all))
		for i, t := range all {
			edges[i] = edge{pc: t, frame: frame.clone()}
		}
		return ir, edges, nil
	}

	return ir, nil, errTypeCategoryMismatch(pc, "unhandled opcode")
}

// popArgs pops len(params) values off the stack in reverse descriptor
// order, returning them in left-to-right call order.
func popArgs(pc uint16, frame *Frame, params []classfile.FieldType) ([]Value, error) {
	args := make([]Value, len(params))
	for i := len(params) - 1; i >= 0; i-- {
		kind := kindOfFieldType(params[i])
		v, err := frame.popExpect(pc, kind.category())
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func constantValueKind(cv classfile.ConstantValue) ValueKind {
	switch cv.Kind {
	case classfile.ConstInt:
		return KindInt
	case classfile.ConstFloat:
		return KindFloat
	default:
		return KindReference
	}
}

func methodRefDescriptor(mr classfile.MethodReference) classfile.MethodDescriptor {
	if mr.Class != nil {
		return mr.Class.Descriptor
	}
	return mr.Interface.Descriptor
}

// loadStoreInfo reports whether op is one of the *load/*store family
// (explicit-index, implicit-index, or wide), and if so its direction, slot
// category/kind, and local index. explicit is true when the index must be
// read from insn.VarIndex instead of implicitIndex.
func loadStoreInfo(op classfile.Op) (isStore bool, kind ValueKind, implicitIndex uint16, explicit bool, ok bool) {
	switch op {
	case classfile.OpILoad:
		return false, KindInt, 0, true, true
	case classfile.OpLLoad:
		return false, KindLong, 0, true, true
	case classfile.OpFLoad:
		return false, KindFloat, 0, true, true
	case classfile.OpDLoad:
		return false, KindDouble, 0, true, true
	case classfile.OpALoad:
		return false, KindReference, 0, true, true
	case classfile.OpILoad0:
		return false, KindInt, 0, false, true
	case classfile.OpILoad1:
		return false, KindInt, 1, false, true
	case classfile.OpILoad2:
		return false, KindInt, 2, false, true
	case classfile.OpILoad3:
		return false, KindInt, 3, false, true
	case classfile.OpLLoad0:
		return false, KindLong, 0, false, true
	case classfile.OpLLoad1:
		return false, KindLong, 1, false, true
	case classfile.OpLLoad2:
		return false, KindLong, 2, false, true
	case classfile.OpLLoad3:
		return false, KindLong, 3, false, true
	case classfile.OpFLoad0:
		return false, KindFloat, 0, false, true
	case classfile.OpFLoad1:
		return false, KindFloat, 1, false, true
	case classfile.OpFLoad2:
		return false, KindFloat, 2, false, true
	case classfile.OpFLoad3:
		return false, KindFloat, 3, false, true
	case classfile.OpDLoad0:
		return false, KindDouble, 0, false, true
	case classfile.OpDLoad1:
		return false, KindDouble, 1, false, true
	case classfile.OpDLoad2:
		return false, KindDouble, 2, false, true
	case classfile.OpDLoad3:
		return false, KindDouble, 3, false, true
	case classfile.OpALoad0:
		return false, KindReference, 0, false, true
	case classfile.OpALoad1:
		return false, KindReference, 1, false, true
	case classfile.OpALoad2:
		return false, KindReference, 2, false, true
	case classfile.OpALoad3:
		return false, KindReference, 3, false, true

	case classfile.OpIStore:
		return true, KindInt, 0, true, true
	case classfile.OpLStore:
		return true, KindLong, 0, true, true
	case classfile.OpFStore:
		return true, KindFloat, 0, true, true
	case classfile.OpDStore:
		return true, KindDouble, 0, true, true
	case classfile.OpAStore:
		return true, KindReference, 0, true, true
	case classfile.OpIStore0:
		return true, KindInt, 0, false, true
	case classfile.OpIStore1:
		return true, KindInt, 1, false, true
	case classfile.OpIStore2:
		return true, KindInt, 2, false, true
	case classfile.OpIStore3:
		return true, KindInt, 3, false, true
	case classfile.OpLStore0:
		return true, KindLong, 0, false, true
	case classfile.OpLStore1:
		return true, KindLong, 1, false, true
	case classfile.OpLStore2:
		return true, KindLong, 2, false, true
	case classfile.OpLStore3:
		return true, KindLong, 3, false, true
	case classfile.OpFStore0:
		return true, KindFloat, 0, false, true
	case classfile.OpFStore1:
		return true, KindFloat, 1, false, true
	case classfile.OpFStore2:
		return true, KindFloat, 2, false, true
	case classfile.OpFStore3:
		return true, KindFloat, 3, false, true
	case classfile.OpDStore0:
		return true, KindDouble, 0, false, true
	case classfile.OpDStore1:
		return true, KindDouble, 1, false, true
	case classfile.OpDStore2:
		return true, KindDouble, 2, false, true
	case classfile.OpDStore3:
		return true, KindDouble, 3, false, true
	case classfile.OpAStore0:
		return true, KindReference, 0, false, true
	case classfile.OpAStore1:
		return true, KindReference, 1, false, true
	case classfile.OpAStore2:
		return true, KindReference, 2, false, true
	case classfile.OpAStore3:
		return true, KindReference, 3, false, true

	case classfile.OpWideILoad:
		return false, KindInt, 0, true, true
	case classfile.OpWideLLoad:
		return false, KindLong, 0, true, true
	case classfile.OpWideFLoad:
		return false, KindFloat, 0, true, true
	case classfile.OpWideDLoad:
		return false, KindDouble, 0, true, true
	case classfile.OpWideALoad:
		return false, KindReference, 0, true, true
	case classfile.OpWideIStore:
		return true, KindInt, 0, true, true
	case classfile.OpWideLStore:
		return true, KindLong, 0, true, true
	case classfile.OpWideFStore:
		return true, KindFloat, 0, true, true
	case classfile.OpWideDStore:
		return true, KindDouble, 0, true, true
	case classfile.OpWideAStore:
		return true, KindReference, 0, true, true

	default:
		return false, 0, 0, false, false
	}
}

var binaryArithKind = map[classfile.Op]ValueKind{
	classfile.OpIAdd: KindInt, classfile.OpLAdd: KindLong, classfile.OpFAdd: KindFloat, classfile.OpDAdd: KindDouble,
	classfile.OpISub: KindInt, classfile.OpLSub: KindLong, classfile.OpFSub: KindFloat, classfile.OpDSub: KindDouble,
	classfile.OpIMul: KindInt, classfile.OpLMul: KindLong, classfile.OpFMul: KindFloat, classfile.OpDMul: KindDouble,
	classfile.OpIDiv: KindInt, classfile.OpLDiv: KindLong, classfile.OpFDiv: KindFloat, classfile.OpDDiv: KindDouble,
	classfile.OpIRem: KindInt, classfile.OpLRem: KindLong, classfile.OpFRem: KindFloat, classfile.OpDRem: KindDouble,
	classfile.OpIAnd: KindInt, classfile.OpLAnd: KindLong,
	classfile.OpIOr: KindInt, classfile.OpLOr: KindLong,
	classfile.OpIXor: KindInt, classfile.OpLXor: KindLong,
}

var shiftKind = map[classfile.Op]ValueKind{
	classfile.OpIShl: KindInt, classfile.OpLShl: KindLong,
	classfile.OpIShr: KindInt, classfile.OpLShr: KindLong,
	classfile.OpIUShr: KindInt, classfile.OpLUShr: KindLong,
}

var unaryArithKind = map[classfile.Op]ValueKind{
	classfile.OpINeg: KindInt, classfile.OpLNeg: KindLong, classfile.OpFNeg: KindFloat, classfile.OpDNeg: KindDouble,
}

var compareKind = map[classfile.Op]ValueKind{
	classfile.OpLCmp: KindLong, classfile.OpFCmpL: KindFloat, classfile.OpFCmpG: KindFloat,
	classfile.OpDCmpL: KindDouble, classfile.OpDCmpG: KindDouble,
}

var returnKind = map[classfile.Op]ValueKind{
	classfile.OpIReturn: KindInt, classfile.OpLReturn: KindLong, classfile.OpFReturn: KindFloat,
	classfile.OpDReturn: KindDouble, classfile.OpAReturn: KindReference,
}

type convKind struct{ from, to ValueKind }

var convertKind = map[classfile.Op]convKind{
	classfile.OpI2L: {KindInt, KindLong}, classfile.OpI2F: {KindInt, KindFloat}, classfile.OpI2D: {KindInt, KindDouble},
	classfile.OpL2I: {KindLong, KindInt}, classfile.OpL2F: {KindLong, KindFloat}, classfile.OpL2D: {KindLong, KindDouble},
	classfile.OpF2I: {KindFloat, KindInt}, classfile.OpF2L: {KindFloat, KindLong}, classfile.OpF2D: {KindFloat, KindDouble},
	classfile.OpD2I: {KindDouble, KindInt}, classfile.OpD2L: {KindDouble, KindLong}, classfile.OpD2F: {KindDouble, KindFloat},
	classfile.OpI2B: {KindInt, KindInt}, classfile.OpI2C: {KindInt, KindInt}, classfile.OpI2S: {KindInt, KindInt},
}

var arrayLoadKind = map[classfile.Op]ValueKind{
	classfile.OpIALoad: KindInt, classfile.OpLALoad: KindLong, classfile.OpFALoad: KindFloat, classfile.OpDALoad: KindDouble,
	classfile.OpAALoad: KindReference, classfile.OpBALoad: KindInt, classfile.OpCALoad: KindInt, classfile.OpSALoad: KindInt,
}

var arrayStoreKind = map[classfile.Op]ValueKind{
	classfile.OpIAStore: KindInt, classfile.OpLAStore: KindLong, classfile.OpFAStore: KindFloat, classfile.OpDAStore: KindDouble,
	classfile.OpAAStore: KindReference, classfile.OpBAStore: KindInt, classfile.OpCAStore: KindInt, classfile.OpSAStore: KindInt,
}
