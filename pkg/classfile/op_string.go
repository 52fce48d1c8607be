// Mnemonic table for Op, written out by hand from the JVMS opcode names
// rather than derived, so it stays meaningful if Op is ever reordered.
package classfile

import "fmt"

var opMnemonics = map[Op]string{
	OpNop: "nop",
	OpAConstNull: "aconst_null",
	OpIConstM1: "iconst_m1",
	OpIConst0: "iconst_0",
	OpIConst1: "iconst_1",
	OpIConst2: "iconst_2",
	OpIConst3: "iconst_3",
	OpIConst4: "iconst_4",
	OpIConst5: "iconst_5",
	OpLConst0: "lconst_0",
	OpLConst1: "lconst_1",
	OpFConst0: "fconst_0",
	OpFConst1: "fconst_1",
	OpFConst2: "fconst_2",
	OpDConst0: "dconst_0",
	OpDConst1: "dconst_1",
	OpBiPush: "bipush",
	OpSiPush: "sipush",
	OpLdc: "ldc",
	OpLdcW: "ldc_w",
	OpLdc2W: "ldc2_w",
	OpILoad: "iload",
	OpLLoad: "lload",
	OpFLoad: "fload",
	OpDLoad: "dload",
	OpALoad: "aload",
	OpILoad0: "iload_0",
	OpILoad1: "iload_1",
	OpILoad2: "iload_2",
	OpILoad3: "iload_3",
	OpLLoad0: "lload_0",
	OpLLoad1: "lload_1",
	OpLLoad2: "lload_2",
	OpLLoad3: "lload_3",
	OpFLoad0: "fload_0",
	OpFLoad1: "fload_1",
	OpFLoad2: "fload_2",
	OpFLoad3: "fload_3",
	OpDLoad0: "dload_0",
	OpDLoad1: "dload_1",
	OpDLoad2: "dload_2",
	OpDLoad3: "dload_3",
	OpALoad0: "aload_0",
	OpALoad1: "aload_1",
	OpALoad2: "aload_2",
	OpALoad3: "aload_3",
	OpIALoad: "iaload",
	OpLALoad: "laload",
	OpFALoad: "faload",
	OpDALoad: "daload",
	OpAALoad: "aaload",
	OpBALoad: "baload",
	OpCALoad: "caload",
	OpSALoad: "saload",
	OpIStore: "istore",
	OpLStore: "lstore",
	OpFStore: "fstore",
	OpDStore: "dstore",
	OpAStore: "astore",
	OpIStore0: "istore_0",
	OpIStore1: "istore_1",
	OpIStore2: "istore_2",
	OpIStore3: "istore_3",
	OpLStore0: "lstore_0",
	OpLStore1: "lstore_1",
	OpLStore2: "lstore_2",
	OpLStore3: "lstore_3",
	OpFStore0: "fstore_0",
	OpFStore1: "fstore_1",
	OpFStore2: "fstore_2",
	OpFStore3: "fstore_3",
	OpDStore0: "dstore_0",
	OpDStore1: "dstore_1",
	OpDStore2: "dstore_2",
	OpDStore3: "dstore_3",
	OpAStore0: "astore_0",
	OpAStore1: "astore_1",
	OpAStore2: "astore_2",
	OpAStore3: "astore_3",
	OpIAStore: "iastore",
	OpLAStore: "lastore",
	OpFAStore: "fastore",
	OpDAStore: "dastore",
	OpAAStore: "aastore",
	OpBAStore: "bastore",
	OpCAStore: "castore",
	OpSAStore: "sastore",
	OpPop: "pop",
	OpPop2: "pop2",
	OpDup: "dup",
	OpDupX1: "dup_x1",
	OpDupX2: "dup_x2",
	OpDup2: "dup2",
	OpDup2X1: "dup2_x1",
	OpDup2X2: "dup2_x2",
	OpSwap: "swap",
	OpIAdd: "iadd",
	OpLAdd: "ladd",
	OpFAdd: "fadd",
	OpDAdd: "dadd",
	OpISub: "isub",
	OpLSub: "lsub",
	OpFSub: "fsub",
	OpDSub: "dsub",
	OpIMul: "imul",
	OpLMul: "lmul",
	OpFMul: "fmul",
	OpDMul: "dmul",
	OpIDiv: "idiv",
	OpLDiv: "ldiv",
	OpFDiv: "fdiv",
	OpDDiv: "ddiv",
	OpIRem: "irem",
	OpLRem: "lrem",
	OpFRem: "frem",
	OpDRem: "drem",
	OpINeg: "ineg",
	OpLNeg: "lneg",
	OpFNeg: "fneg",
	OpDNeg: "dneg",
	OpIShl: "ishl",
	OpLShl: "lshl",
	OpIShr: "ishr",
	OpLShr: "lshr",
	OpIUShr: "iushr",
	OpLUShr: "lushr",
	OpIAnd: "iand",
	OpLAnd: "land",
	OpIOr: "ior",
	OpLOr: "lor",
	OpIXor: "ixor",
	OpLXor: "lxor",
	OpIInc: "iinc",
	OpI2L: "i2l",
	OpI2F: "i2f",
	OpI2D: "i2d",
	OpL2I: "l2i",
	OpL2F: "l2f",
	OpL2D: "l2d",
	OpF2I: "f2i",
	OpF2L: "f2l",
	OpF2D: "f2d",
	OpD2I: "d2i",
	OpD2L: "d2l",
	OpD2F: "d2f",
	OpI2B: "i2b",
	OpI2C: "i2c",
	OpI2S: "i2s",
	OpLCmp: "lcmp",
	OpFCmpL: "fcmpl",
	OpFCmpG: "fcmpg",
	OpDCmpL: "dcmpl",
	OpDCmpG: "dcmpg",
	OpIfEq: "ifeq",
	OpIfNe: "ifne",
	OpIfLt: "iflt",
	OpIfGe: "ifge",
	OpIfGt: "ifgt",
	OpIfLe: "ifle",
	OpIfICmpEq: "if_icmpeq",
	OpIfICmpNe: "if_icmpne",
	OpIfICmpLt: "if_icmplt",
	OpIfICmpGe: "if_icmpge",
	OpIfICmpGt: "if_icmpgt",
	OpIfICmpLe: "if_icmple",
	OpIfACmpEq: "if_acmpeq",
	OpIfACmpNe: "if_acmpne",
	OpGoto: "goto",
	OpJsr: "jsr",
	OpRet: "ret",
	OpTableSwitch: "tableswitch",
	OpLookupSwitch: "lookupswitch",
	OpIReturn: "ireturn",
	OpLReturn: "lreturn",
	OpFReturn: "freturn",
	OpDReturn: "dreturn",
	OpAReturn: "areturn",
	OpReturn: "return",
	OpGetStatic: "getstatic",
	OpPutStatic: "putstatic",
	OpGetField: "getfield",
	OpPutField: "putfield",
	OpInvokeVirtual: "invokevirtual",
	OpInvokeSpecial: "invokespecial",
	OpInvokeStatic: "invokestatic",
	OpInvokeInterface: "invokeinterface",
	OpInvokeDynamic: "invokedynamic",
	OpNew: "new",
	OpNewArray: "newarray",
	OpANewArray: "anewarray",
	OpArrayLength: "arraylength",
	OpAThrow: "athrow",
	OpCheckCast: "checkcast",
	OpInstanceOf: "instanceof",
	OpMonitorEnter: "monitorenter",
	OpMonitorExit: "monitorexit",
	OpMultiANewArray: "multianewarray",
	OpIfNull: "ifnull",
	OpIfNonNull: "ifnonnull",
	OpGotoW: "goto_w",
	OpJsrW: "jsr_w",
	OpWideILoad: "wide_iload",
	OpWideLLoad: "wide_lload",
	OpWideFLoad: "wide_fload",
	OpWideDLoad: "wide_dload",
	OpWideALoad: "wide_aload",
	OpWideIStore: "wide_istore",
	OpWideLStore: "wide_lstore",
	OpWideFStore: "wide_fstore",
	OpWideDStore: "wide_dstore",
	OpWideAStore: "wide_astore",
	OpWideRet: "wide_ret",
	OpWideIInc: "wide_iinc",
}

// String returns the JVMS mnemonic for op, or a hex fallback for an
// out-of-range value (which should not occur for an Op produced by this
// package's decoder).
func (o Op) String() string {
	if s, ok := opMnemonics[o]; ok {
		return s
	}
	return fmt.Sprintf("op(0x%x)", uint16(o))
}
