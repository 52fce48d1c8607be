package analyzer_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jvmkit/jvmkit/pkg/analyzer"
	"github.com/jvmkit/jvmkit/pkg/classfile"
)

func decodeOneMethod(t *testing.T, data []byte) *classfile.Method {
	t.Helper()
	cls, err := classfile.FromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(cls.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(cls.Methods))
	}
	return &cls.Methods[0]
}

func TestAnalyzeLinearMethod(t *testing.T) {
	code := []byte{
		byte(classfile.OpILoad0),
		byte(classfile.OpILoad1),
		byte(classfile.OpIAdd),
		byte(classfile.OpIReturn),
	}
	m := decodeOneMethod(t, oneMethodClass("add", "(II)I", 2, 2, code))

	ir, err := analyzer.New().Analyze(m)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(ir) != 4 {
		t.Fatalf("expected 4 IR instructions, got %d", len(ir))
	}

	addInsn, ok := ir[2]
	if !ok {
		t.Fatal("missing IR instruction at pc 2 (iadd)")
	}
	if addInsn.OpKind != analyzer.OpKindArithmetic {
		t.Errorf("iadd OpKind = %v, want OpKindArithmetic", addInsn.OpKind)
	}
	if len(addInsn.Uses) != 2 {
		t.Errorf("iadd Uses = %d values, want 2", len(addInsn.Uses))
	}
	if addInsn.Defines == nil || addInsn.Defines.Kind != analyzer.KindInt {
		t.Errorf("iadd Defines = %v, want a fresh KindInt value", addInsn.Defines)
	}

	retInsn, ok := ir[3]
	if !ok {
		t.Fatal("missing IR instruction at pc 3 (ireturn)")
	}
	if retInsn.OpKind != analyzer.OpKindReturn {
		t.Errorf("ireturn OpKind = %v, want OpKindReturn", retInsn.OpKind)
	}
	if retInsn.Falls {
		t.Error("ireturn should not fall through")
	}
}

// TestAnalyzeMergeSynthesizesPhi builds the classic abs(int) diamond: a
// negate-if-negative branch and a direct path, joining at a single ireturn
// whose operand differs by path, forcing the worklist to synthesize a Phi.
func TestAnalyzeMergeSynthesizesPhi(t *testing.T) {
	code := []byte{
		byte(classfile.OpILoad0), // pc0
		byte(classfile.OpIfGe), 0, 8, // pc1: branch to pc9 if >= 0
		byte(classfile.OpILoad0), // pc4
		byte(classfile.OpINeg),   // pc5
		byte(classfile.OpGoto), 0, 4, // pc6: goto pc10
		byte(classfile.OpILoad0), // pc9 (ifge target)
		byte(classfile.OpIReturn), // pc10 (goto target, merge point)
	}
	m := decodeOneMethod(t, oneMethodClass("abs", "(I)I", 1, 1, code))

	ir, err := analyzer.New().Analyze(m)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	ret, ok := ir[10]
	if !ok {
		t.Fatal("missing IR instruction at pc 10 (ireturn)")
	}
	if len(ret.Uses) != 1 {
		t.Fatalf("ireturn Uses = %d, want 1", len(ret.Uses))
	}
	if !ret.Uses[0].Phi {
		t.Errorf("expected the merged value at pc 10 to be a Phi, got %+v", ret.Uses[0])
	}
	// The two predecessors landing on pc 10 are the goto at pc 6 and the
	// fallthrough from iload_0 at pc 9 — not pc 10 itself.
	wantJoined := []uint16{6, 9}
	if diff := cmp.Diff(wantJoined, ret.Uses[0].JoinedPCs); diff != "" {
		t.Errorf("ireturn operand JoinedPCs mismatch (-want +got):\n%s", diff)
	}

	ifge, ok := ir[1]
	if !ok {
		t.Fatal("missing IR instruction at pc 1 (ifge)")
	}
	if len(ifge.BranchTargets) != 1 || ifge.BranchTargets[0] != 9 {
		t.Errorf("ifge BranchTargets = %v, want [9]", ifge.BranchTargets)
	}
	if !ifge.Falls {
		t.Error("ifge should also fall through to pc 4")
	}
}

func TestAnalyzeExceptionHandlerEdge(t *testing.T) {
	code := []byte{
		byte(classfile.OpILoad0), // pc0
		byte(classfile.OpIConst0), // pc1
		byte(classfile.OpIDiv),   // pc2: may throw ArithmeticException
		byte(classfile.OpIReturn), // pc3
		byte(classfile.OpPop),    // pc4: handler - pops the caught exception
		byte(classfile.OpIConstM1), // pc5
		byte(classfile.OpIReturn), // pc6
	}
	// handler covers [0,4), dispatches to pc4
	m := decodeOneMethod(t, oneMethodClassWithHandler("safeDiv", "(I)I", 2, 1, code, 0, 4, 4))

	ir, err := analyzer.New().Analyze(m)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	handlerPop, ok := ir[4]
	if !ok {
		t.Fatal("missing IR instruction at pc 4 (handler pop)")
	}
	if len(handlerPop.Uses) != 1 || handlerPop.Uses[0].Kind != analyzer.KindReference {
		t.Errorf("handler entry stack = %+v, want a single KindReference value", handlerPop.Uses)
	}
}

func TestAnalyzeStackUnderflowIsReported(t *testing.T) {
	code := []byte{
		byte(classfile.OpIAdd),    // pops from an empty stack
		byte(classfile.OpIReturn),
	}
	m := decodeOneMethod(t, oneMethodClass("bad", "()I", 2, 0, code))

	_, err := analyzer.New().Analyze(m)
	if err == nil {
		t.Fatal("expected a stack underflow error")
	}
	ae, ok := err.(*analyzer.AnalyzeError)
	if !ok || ae.Kind != analyzer.KindStackUnderflow {
		t.Errorf("got %v, want KindStackUnderflow", err)
	}
}

func TestAnalyzeNativeMethodYieldsEmptyIR(t *testing.T) {
	m := &classfile.Method{
		Flags:      classfile.AccNative | classfile.AccStatic,
		Name:       "nativeOp",
		Descriptor: classfile.MethodDescriptor{Return: classfile.ReturnType{Void: true}},
	}
	ir, err := analyzer.New().Analyze(m)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(ir) != 0 {
		t.Errorf("expected empty IR for a native method, got %d entries", len(ir))
	}
}
