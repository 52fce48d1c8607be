package classfile

import "math"

// Constant pool tags, per JVMS §4.4.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

func tagName(tag uint8) string {
	switch tag {
	case tagUtf8:
		return "Utf8"
	case tagInteger:
		return "Integer"
	case tagFloat:
		return "Float"
	case tagLong:
		return "Long"
	case tagDouble:
		return "Double"
	case tagClass:
		return "Class"
	case tagString:
		return "String"
	case tagFieldref:
		return "Fieldref"
	case tagMethodref:
		return "Methodref"
	case tagInterfaceMethodref:
		return "InterfaceMethodref"
	case tagNameAndType:
		return "NameAndType"
	case tagMethodHandle:
		return "MethodHandle"
	case tagMethodType:
		return "MethodType"
	case tagDynamic:
		return "Dynamic"
	case tagInvokeDynamic:
		return "InvokeDynamic"
	case tagModule:
		return "Module"
	case tagPackage:
		return "Package"
	default:
		return "<unknown>"
	}
}

// ReferenceKind is the reference_kind of a CONSTANT_MethodHandle entry.
type ReferenceKind uint8

const (
	RefGetField ReferenceKind = iota + 1
	RefGetStatic
	RefPutField
	RefPutStatic
	RefInvokeVirtual
	RefInvokeStatic
	RefInvokeSpecial
	RefNewInvokeSpecial
	RefInvokeInterface
)

// entry is a single constant pool slot. Exactly one field is meaningful,
// selected by tag.
type entry struct {
	tag uint8

	utf8 JavaString

	integer int32
	float32v float32
	long    int64
	double  float64

	nameIndex uint16 // Class, Module, Package

	stringIndex uint16 // String

	classIndex       uint16 // Fieldref/Methodref/InterfaceMethodref
	nameAndTypeIndex uint16

	ntNameIndex uint16 // NameAndType
	ntDescIndex uint16

	refKind  ReferenceKind // MethodHandle
	refIndex uint16

	descIndex uint16 // MethodType

	bootstrapIndex uint16 // Dynamic/InvokeDynamic
}

// ConstantPool is the 1-indexed table of tagged entries parsed from a class
// file. Index 0 and the phantom slot following each Long/Double are both
// nil/zero and never resolved.
type ConstantPool struct {
	entries []entry // entries[0] unused
}

// Count returns the declared constant_pool_count (N), including the unused
// slot 0 and any Long/Double phantom slots.
func (p *ConstantPool) Count() int { return len(p.entries) }

func parseConstantPool(r *reader, count uint16) (*ConstantPool, error) {
	entries := make([]entry, count)

	for i := uint16(1); i < count; i++ {
		tag, err := r.u1()
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagUtf8:
			length, err := r.u2()
			if err != nil {
				return nil, err
			}
			b, err := r.bytes(int(length))
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, utf8: decodeModifiedUTF8(b)}

		case tagInteger:
			v, err := r.i4()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, integer: v}

		case tagFloat:
			v, err := r.u4()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, float32v: float32FromBits(v)}

		case tagLong:
			v, err := r.i4()
			if err != nil {
				return nil, err
			}
			lo, err := r.u4()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, long: int64(v)<<32 | int64(lo)}
			i++ // phantom slot

		case tagDouble:
			hi, err := r.u4()
			if err != nil {
				return nil, err
			}
			lo, err := r.u4()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, double: float64FromBits(uint64(hi)<<32 | uint64(lo))}
			i++ // phantom slot

		case tagClass, tagModule, tagPackage:
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, nameIndex: idx}

		case tagString:
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, stringIndex: idx}

		case tagFieldref, tagMethodref, tagInterfaceMethodref:
			classIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, classIndex: classIdx, nameAndTypeIndex: natIdx}

		case tagNameAndType:
			nameIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			descIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, ntNameIndex: nameIdx, ntDescIndex: descIdx}

		case tagMethodHandle:
			kind, err := r.u1()
			if err != nil {
				return nil, err
			}
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, refKind: ReferenceKind(kind), refIndex: idx}

		case tagMethodType:
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, descIndex: idx}

		case tagDynamic, tagInvokeDynamic:
			bsmIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entries[i] = entry{tag: tag, bootstrapIndex: bsmIdx, nameAndTypeIndex: natIdx}

		default:
			return nil, errUnexpectedConstantPoolTag(tag)
		}
	}

	return &ConstantPool{entries: entries}, nil
}

func (p *ConstantPool) at(index uint16) (*entry, error) {
	if index == 0 || int(index) >= len(p.entries) {
		return nil, errBadIndex(index)
	}
	e := &p.entries[index]
	if e.tag == 0 {
		return nil, errBadIndex(index)
	}
	return e, nil
}

// GetUTF8 resolves index to a CONSTANT_Utf8 entry.
func (p *ConstantPool) GetUTF8(index uint16) (JavaString, error) {
	e, err := p.at(index)
	if err != nil {
		return JavaString{}, err
	}
	if e.tag != tagUtf8 {
		return JavaString{}, errMismatchedTag("Utf8", tagName(e.tag))
	}
	return e.utf8, nil
}

func (p *ConstantPool) getStr(index uint16) (string, error) {
	s, err := p.GetUTF8(index)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// GetClassRef resolves index to a CONSTANT_Class entry.
func (p *ConstantPool) GetClassRef(index uint16) (ClassReference, error) {
	e, err := p.at(index)
	if err != nil {
		return ClassReference{}, err
	}
	if e.tag != tagClass {
		return ClassReference{}, errMismatchedTag("Class", tagName(e.tag))
	}
	name, err := p.getStr(e.nameIndex)
	if err != nil {
		return ClassReference{}, err
	}
	return ClassReference{BinaryName: name}, nil
}

// GetArrayTypeRef resolves a CONSTANT_Class entry whose name begins with
// '[' and returns the parsed array FieldType.
func (p *ConstantPool) GetArrayTypeRef(index uint16) (FieldType, error) {
	cr, err := p.GetClassRef(index)
	if err != nil {
		return FieldType{}, err
	}
	return parseFieldDescriptor(cr.BinaryName)
}

func (p *ConstantPool) getNameAndType(index uint16) (name, desc string, err error) {
	e, err := p.at(index)
	if err != nil {
		return "", "", err
	}
	if e.tag != tagNameAndType {
		return "", "", errMismatchedTag("NameAndType", tagName(e.tag))
	}
	name, err = p.getStr(e.ntNameIndex)
	if err != nil {
		return "", "", err
	}
	desc, err = p.getStr(e.ntDescIndex)
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// GetFieldRef resolves a CONSTANT_Fieldref entry.
func (p *ConstantPool) GetFieldRef(index uint16) (FieldReference, error) {
	e, err := p.at(index)
	if err != nil {
		return FieldReference{}, err
	}
	if e.tag != tagFieldref {
		return FieldReference{}, errMismatchedTag("Fieldref", tagName(e.tag))
	}
	class, err := p.GetClassRef(e.classIndex)
	if err != nil {
		return FieldReference{}, err
	}
	name, desc, err := p.getNameAndType(e.nameAndTypeIndex)
	if err != nil {
		return FieldReference{}, err
	}
	ft, err := parseFieldDescriptor(desc)
	if err != nil {
		return FieldReference{}, err
	}
	return FieldReference{Class: class, Name: name, FieldType: ft}, nil
}

// GetMethodRef resolves a CONSTANT_Methodref or CONSTANT_InterfaceMethodref
// entry, returning the variant matching the entry's actual tag.
func (p *ConstantPool) GetMethodRef(index uint16) (MethodReference, error) {
	e, err := p.at(index)
	if err != nil {
		return MethodReference{}, err
	}
	if e.tag != tagMethodref && e.tag != tagInterfaceMethodref {
		return MethodReference{}, errMismatchedTag("Methodref", tagName(e.tag))
	}
	class, err := p.GetClassRef(e.classIndex)
	if err != nil {
		return MethodReference{}, err
	}
	name, desc, err := p.getNameAndType(e.nameAndTypeIndex)
	if err != nil {
		return MethodReference{}, err
	}
	md, err := parseMethodDescriptor(desc)
	if err != nil {
		return MethodReference{}, err
	}
	if e.tag == tagInterfaceMethodref {
		return MethodReference{Interface: &InterfaceMethodReference{
			Interface: class, Name: name, Descriptor: md,
		}}, nil
	}
	return MethodReference{Class: &ClassMethodReference{
		Class: class, Name: name, Descriptor: md,
	}}, nil
}

// ConstantValueKind discriminates the ConstantValue union.
type ConstantValueKind int

const (
	ConstInt ConstantValueKind = iota
	ConstFloat
	ConstLong
	ConstDouble
	ConstString
	ConstClass
	ConstMethodHandle
	ConstMethodType
	ConstDynamic
)

// MethodHandleValue is the resolved payload of a CONSTANT_MethodHandle.
type MethodHandleValue struct {
	Kind   ReferenceKind
	Field  *FieldReference
	Method *MethodReference
}

// DynamicValue is a symbolic placeholder for a CONSTANT_Dynamic entry;
// bootstrap resolution is deferred (no linking is performed by this
// package). Its NameAndType names a field descriptor: a condy resolves to
// a single value.
type DynamicValue struct {
	BootstrapMethodAttrIndex uint16
	Name                     string
	Descriptor               FieldType
}

// InvokeDynamicValue is the resolved payload of a CONSTANT_InvokeDynamic
// entry, the operand of an invokedynamic instruction. Unlike Dynamic, its
// NameAndType names a method descriptor: the call site's argument and
// return types.
type InvokeDynamicValue struct {
	BootstrapMethodAttrIndex uint16
	Name                     string
	Descriptor               MethodDescriptor
}

// ConstantValue is the resolved payload of an ldc-family instruction or a
// ConstantValue attribute.
type ConstantValue struct {
	Kind ConstantValueKind

	Int    int32
	Float  float32
	Long   int64
	Double float64

	String       JavaString
	Class        ClassReference
	MethodHandle MethodHandleValue
	MethodType   MethodDescriptor
	Dynamic      DynamicValue
}

// GetMethodHandle resolves a CONSTANT_MethodHandle entry.
func (p *ConstantPool) GetMethodHandle(index uint16) (MethodHandleValue, error) {
	e, err := p.at(index)
	if err != nil {
		return MethodHandleValue{}, err
	}
	if e.tag != tagMethodHandle {
		return MethodHandleValue{}, errMismatchedTag("MethodHandle", tagName(e.tag))
	}
	switch e.refKind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		fr, err := p.GetFieldRef(e.refIndex)
		if err != nil {
			return MethodHandleValue{}, err
		}
		return MethodHandleValue{Kind: e.refKind, Field: &fr}, nil
	default:
		mr, err := p.GetMethodRef(e.refIndex)
		if err != nil {
			return MethodHandleValue{}, err
		}
		return MethodHandleValue{Kind: e.refKind, Method: &mr}, nil
	}
}

// GetConstantValue resolves any loadable constant pool entry (the ldc
// family and the ConstantValue attribute both funnel through this).
func (p *ConstantPool) GetConstantValue(index uint16) (ConstantValue, error) {
	e, err := p.at(index)
	if err != nil {
		return ConstantValue{}, err
	}
	switch e.tag {
	case tagInteger:
		return ConstantValue{Kind: ConstInt, Int: e.integer}, nil
	case tagFloat:
		return ConstantValue{Kind: ConstFloat, Float: e.float32v}, nil
	case tagLong:
		return ConstantValue{Kind: ConstLong, Long: e.long}, nil
	case tagDouble:
		return ConstantValue{Kind: ConstDouble, Double: e.double}, nil
	case tagString:
		s, err := p.GetUTF8(e.stringIndex)
		if err != nil {
			return ConstantValue{}, err
		}
		return ConstantValue{Kind: ConstString, String: s}, nil
	case tagClass:
		cr, err := p.GetClassRef(index)
		if err != nil {
			return ConstantValue{}, err
		}
		return ConstantValue{Kind: ConstClass, Class: cr}, nil
	case tagMethodHandle:
		mh, err := p.GetMethodHandle(index)
		if err != nil {
			return ConstantValue{}, err
		}
		return ConstantValue{Kind: ConstMethodHandle, MethodHandle: mh}, nil
	case tagMethodType:
		desc, err := p.getStr(e.descIndex)
		if err != nil {
			return ConstantValue{}, err
		}
		md, err := parseMethodDescriptor(desc)
		if err != nil {
			return ConstantValue{}, err
		}
		return ConstantValue{Kind: ConstMethodType, MethodType: md}, nil
	case tagDynamic:
		name, desc, err := p.getNameAndType(e.nameAndTypeIndex)
		if err != nil {
			return ConstantValue{}, err
		}
		ft, err := parseFieldDescriptor(desc)
		if err != nil {
			return ConstantValue{}, err
		}
		return ConstantValue{Kind: ConstDynamic, Dynamic: DynamicValue{
			BootstrapMethodAttrIndex: e.bootstrapIndex, Name: name, Descriptor: ft,
		}}, nil
	default:
		return ConstantValue{}, errMismatchedTag("loadable constant", tagName(e.tag))
	}
}

// GetInvokeDynamic resolves a CONSTANT_InvokeDynamic entry, the operand of
// an invokedynamic instruction.
func (p *ConstantPool) GetInvokeDynamic(index uint16) (InvokeDynamicValue, error) {
	e, err := p.at(index)
	if err != nil {
		return InvokeDynamicValue{}, err
	}
	if e.tag != tagInvokeDynamic {
		return InvokeDynamicValue{}, errMismatchedTag("InvokeDynamic", tagName(e.tag))
	}
	name, desc, err := p.getNameAndType(e.nameAndTypeIndex)
	if err != nil {
		return InvokeDynamicValue{}, err
	}
	md, err := parseMethodDescriptor(desc)
	if err != nil {
		return InvokeDynamicValue{}, err
	}
	return InvokeDynamicValue{BootstrapMethodAttrIndex: e.bootstrapIndex, Name: name, Descriptor: md}, nil
}

func float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }

func float64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }
