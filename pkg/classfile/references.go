package classfile

import "fmt"

// ClassReference is a resolved reference to a class or interface by its
// binary name (e.g. "java/lang/Object").
type ClassReference struct {
	BinaryName string
}

func (c ClassReference) String() string { return c.BinaryName }

// FieldReference is a resolved CONSTANT_Fieldref entry.
type FieldReference struct {
	Class     ClassReference
	Name      string
	FieldType FieldType
}

func (f FieldReference) String() string {
	return fmt.Sprintf("%s.%s:%s", f.Class, f.Name, f.FieldType)
}

// ClassMethodReference is a resolved CONSTANT_Methodref entry.
type ClassMethodReference struct {
	Class      ClassReference
	Name       string
	Descriptor MethodDescriptor
}

func (m ClassMethodReference) String() string {
	return fmt.Sprintf("%s.%s%s", m.Class, m.Name, m.Descriptor)
}

// InterfaceMethodReference is a resolved CONSTANT_InterfaceMethodref entry.
type InterfaceMethodReference struct {
	Interface  ClassReference
	Name       string
	Descriptor MethodDescriptor
}

func (m InterfaceMethodReference) String() string {
	return fmt.Sprintf("%s.%s%s", m.Interface, m.Name, m.Descriptor)
}

// MethodReference is either a class method reference or an interface
// method reference, matching the tag of the resolved constant pool entry.
type MethodReference struct {
	Class     *ClassMethodReference
	Interface *InterfaceMethodReference
}

func (m MethodReference) String() string {
	if m.Class != nil {
		return m.Class.String()
	}
	if m.Interface != nil {
		return m.Interface.String()
	}
	return "<invalid method reference>"
}

// IsInterface reports whether this reference targets an interface method,
// the distinction invokeinterface callers must enforce.
func (m MethodReference) IsInterface() bool { return m.Interface != nil }

// ModuleReference is a resolved CONSTANT_Module entry.
type ModuleReference struct{ Name string }

// PackageReference is a resolved CONSTANT_Package entry.
type PackageReference struct{ BinaryName string }
