package classfile

import (
	"bytes"
	"testing"
)

func TestFromReaderMinimalObject(t *testing.T) {
	cls, err := FromReader(bytes.NewReader(minimalObjectClass()))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if cls.This.BinaryName != "java/lang/Object" {
		t.Errorf("This.BinaryName = %q, want java/lang/Object", cls.This.BinaryName)
	}
	if cls.Super != nil {
		t.Errorf("Super = %v, want nil", cls.Super)
	}
	if len(cls.Methods) != 0 || len(cls.Fields) != 0 {
		t.Errorf("expected no methods/fields, got %d/%d", len(cls.Methods), len(cls.Fields))
	}
}

func TestFromReaderRejectsBadMagic(t *testing.T) {
	data := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, minimalObjectClass()[4:]...)
	_, err := FromReader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for bad magic, got nil")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != KindNotAClassFile {
		t.Errorf("got %v, want KindNotAClassFile", err)
	}
}

func TestFromReaderRejectsMissingSuperOnNonObject(t *testing.T) {
	b := newClassBuilder()
	this := b.addClass("com/example/Foo")
	b.u2(0)
	b.u2(0)
	b.u2(0)
	b.u2(0)
	data := b.finish(52, 0, 0, this, 0)

	_, err := FromReader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for missing super_class on non-Object class")
	}
}

func TestFromReaderRejectsTrailingData(t *testing.T) {
	data := append(minimalObjectClass(), 0xFF)
	_, err := FromReader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for trailing data")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != KindUnexpectedData {
		t.Errorf("got %v, want KindUnexpectedData", err)
	}
}

// addMethodBytes builds a one-method class: java/lang/Object with a single
// static method built from code/desc, for fixtures that need a real
// Code attribute to drive the instruction decoder and analyzer.
func addMethodBytes(name, desc string, maxStack, maxLocals uint16, code []byte) []byte {
	b := newClassBuilder()
	this := b.addClass("java/lang/Object")
	b.u2(0) // interfaces_count
	b.u2(0) // fields_count
	b.u2(1) // methods_count
	b.writeCodeMethod(AccPublic|AccStatic, name, desc, maxStack, maxLocals, code)
	b.u2(0) // attributes_count
	return b.finish(52, 0, 0, this, 0)
}

func TestFromReaderDecodesSimpleMethodBody(t *testing.T) {
	code := []byte{
		byte(OpILoad0),
		byte(OpILoad1),
		byte(OpIAdd),
		byte(OpIReturn),
	}
	data := addMethodBytes("add", "(II)I", 2, 2, code)

	cls, err := FromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(cls.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(cls.Methods))
	}
	m := cls.Methods[0]
	if m.Name != "add" {
		t.Errorf("method name = %q, want add", m.Name)
	}
	if m.Body == nil {
		t.Fatal("expected a Code body")
	}
	if len(m.Body.Instructions) != 4 {
		t.Errorf("expected 4 decoded instructions, got %d", len(m.Body.Instructions))
	}
	if insn, ok := m.Body.Instructions[2]; !ok || insn.Op != OpIAdd {
		t.Errorf("pc 2 = %+v, want iadd", insn)
	}
}
