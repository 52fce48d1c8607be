package classfile

import "testing"

func TestParseFieldDescriptor(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"I", "I"},
		{"Ljava/lang/String;", "Ljava/lang/String;"},
		{"[I", "[I"},
		{"[[Ljava/lang/Object;", "[[Ljava/lang/Object;"},
	}
	for _, c := range cases {
		ft, err := parseFieldDescriptor(c.desc)
		if err != nil {
			t.Errorf("parseFieldDescriptor(%q): %v", c.desc, err)
			continue
		}
		if got := ft.String(); got != c.want {
			t.Errorf("parseFieldDescriptor(%q).String() = %q, want %q", c.desc, got, c.want)
		}
	}
}

func TestParseFieldDescriptorRejectsTrailingGarbage(t *testing.T) {
	_, err := parseFieldDescriptor("II")
	if err == nil {
		t.Fatal("expected error for trailing garbage after descriptor")
	}
}

func TestParseFieldDescriptorRejectsUnterminatedObjectType(t *testing.T) {
	_, err := parseFieldDescriptor("Ljava/lang/String")
	if err == nil {
		t.Fatal("expected error for missing terminating semicolon")
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	md, err := parseMethodDescriptor("(ILjava/lang/String;[D)Z")
	if err != nil {
		t.Fatalf("parseMethodDescriptor: %v", err)
	}
	if len(md.Parameters) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(md.Parameters))
	}
	if md.Return.Void {
		t.Fatal("expected non-void return")
	}
	if got := md.String(); got != "(ILjava/lang/String;[D)Z" {
		t.Errorf("round-trip String() = %q", got)
	}
}

func TestParseMethodDescriptorVoid(t *testing.T) {
	md, err := parseMethodDescriptor("()V")
	if err != nil {
		t.Fatalf("parseMethodDescriptor: %v", err)
	}
	if !md.Return.Void {
		t.Fatal("expected void return")
	}
	if len(md.Parameters) != 0 {
		t.Errorf("expected 0 parameters, got %d", len(md.Parameters))
	}
}

func TestFieldTypeCategory(t *testing.T) {
	longKind := PrimLong
	doubleKind := PrimDouble
	intKind := PrimInt
	cases := []struct {
		ft   FieldType
		want int
	}{
		{FieldType{Primitive: &intKind}, 1},
		{FieldType{Primitive: &longKind}, 2},
		{FieldType{Primitive: &doubleKind}, 2},
		{FieldType{ObjectName: "java/lang/Object"}, 1},
	}
	for _, c := range cases {
		if got := c.ft.category(); got != c.want {
			t.Errorf("category(%v) = %d, want %d", c.ft, got, c.want)
		}
	}
}
