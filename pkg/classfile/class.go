package classfile

import "io"

const classMagic = 0xCAFEBABE

// previewMinorVersion is the sentinel minor_version JVMS reserves to mark a
// class file compiled against preview language features.
const previewMinorVersion = 65535

// Version is the major/minor class file version pair.
type Version struct {
	Major uint16
	Minor uint16
}

// IsPreview reports whether this version marks preview-feature usage.
func (v Version) IsPreview() bool { return v.Minor == previewMinorVersion }

// MethodBody is the decoded payload of a method's Code attribute.
type MethodBody struct {
	MaxStack       uint16
	MaxLocals      uint16
	Instructions   map[uint16]Instruction
	ExceptionTable []ExceptionTableEntry
	LineNumberTable        []LineNumberEntry
	LocalVariableTable     []LocalVariableEntry
	LocalVariableTypeTable []LocalVariableTypeEntry
	StackMapTable          []StackMapFrame
}

// Field is a decoded field_info entry.
type Field struct {
	Flags      AccessFlags
	Name       string
	FieldType  FieldType
	Attributes FieldAttributes
}

// Method is a decoded method_info entry. Body is nil exactly when the
// method is NATIVE or ABSTRACT (the `<clinit>` special case aside, which
// JVMS permits to be declared ABSTRACT by buggy compilers without a body).
type Method struct {
	Flags      AccessFlags
	Name       string
	Descriptor MethodDescriptor
	Body       *MethodBody
	Attributes MethodAttributes
}

// Class is the fully decoded, self-contained representation of a class
// file; after FromReader returns, it holds no reference to the constant
// pool used to build it.
type Class struct {
	Version    Version
	Flags      AccessFlags
	This       ClassReference
	Super      *ClassReference
	Interfaces []ClassReference
	Fields     []Field
	Methods    []Method
	Attributes ClassAttributes
}

const (
	legalClassFlags = AccPublic | AccFinal | AccSuper | AccInterface | AccAbstract |
		AccSynthetic | AccAnnotation | AccEnum | AccModule
	legalFieldFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
		AccVolatile | AccTransient | AccSynthetic | AccEnum
	legalMethodFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal |
		AccSynchronized | AccBridge | AccVarargs | AccNative | AccAbstract | AccStrict | AccSynthetic
)

// FromReader decodes a complete class file from r, enforcing every
// structural invariant of JVMS chapter 4 before returning.
func FromReader(r io.Reader) (*Class, error) {
	br := newReader(r)

	magic, err := br.u4()
	if err != nil {
		return nil, err
	}
	if magic != classMagic {
		return nil, errNotAClassFile()
	}

	minor, err := br.u2()
	if err != nil {
		return nil, err
	}
	major, err := br.u2()
	if err != nil {
		return nil, err
	}

	poolCount, err := br.u2()
	if err != nil {
		return nil, err
	}
	pool, err := parseConstantPool(br, poolCount)
	if err != nil {
		return nil, err
	}

	flagBits, err := br.u2()
	if err != nil {
		return nil, err
	}
	flags := AccessFlags(flagBits)
	if err := checkFlags(flags, legalClassFlags, "class"); err != nil {
		return nil, err
	}

	thisIdx, err := br.u2()
	if err != nil {
		return nil, err
	}
	this, err := pool.GetClassRef(thisIdx)
	if err != nil {
		return nil, err
	}

	superIdx, err := br.u2()
	if err != nil {
		return nil, err
	}
	var super *ClassReference
	if superIdx != 0 {
		sc, err := pool.GetClassRef(superIdx)
		if err != nil {
			return nil, err
		}
		super = &sc
	}
	if super == nil && this.BinaryName != "java/lang/Object" && !flags.Has(AccModule) {
		return nil, errMalformed("super_class is absent but this class is not java/lang/Object and MODULE is not set")
	}

	ifaceCount, err := br.u2()
	if err != nil {
		return nil, err
	}
	interfaces := make([]ClassReference, ifaceCount)
	for i := range interfaces {
		idx, err := br.u2()
		if err != nil {
			return nil, err
		}
		interfaces[i], err = pool.GetClassRef(idx)
		if err != nil {
			return nil, err
		}
	}

	fieldCount, err := br.u2()
	if err != nil {
		return nil, err
	}
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i], err = parseField(br, pool)
		if err != nil {
			return nil, err
		}
	}

	methodCount, err := br.u2()
	if err != nil {
		return nil, err
	}
	methods := make([]Method, methodCount)
	for i := range methods {
		methods[i], err = parseMethod(br, pool)
		if err != nil {
			return nil, err
		}
	}

	attrCount, err := br.u2()
	if err != nil {
		return nil, err
	}
	attrs, err := parseClassAttributes(br, pool, attrCount)
	if err != nil {
		return nil, err
	}

	if eof, err := atEOF(r); err != nil {
		return nil, err
	} else if !eof {
		return nil, errUnexpectedData()
	}

	return &Class{
		Version:    Version{Major: major, Minor: minor},
		Flags:      flags,
		This:       this,
		Super:      super,
		Interfaces: interfaces,
		Fields:     fields,
		Methods:    methods,
		Attributes: attrs,
	}, nil
}

func parseField(br *reader, pool *ConstantPool) (Field, error) {
	flagBits, err := br.u2()
	if err != nil {
		return Field{}, err
	}
	flags := AccessFlags(flagBits)
	if err := checkFlags(flags, legalFieldFlags, "field"); err != nil {
		return Field{}, err
	}
	nameIdx, err := br.u2()
	if err != nil {
		return Field{}, err
	}
	name, err := pool.getStr(nameIdx)
	if err != nil {
		return Field{}, err
	}
	descIdx, err := br.u2()
	if err != nil {
		return Field{}, err
	}
	desc, err := pool.getStr(descIdx)
	if err != nil {
		return Field{}, err
	}
	ft, err := parseFieldDescriptor(desc)
	if err != nil {
		return Field{}, err
	}
	attrCount, err := br.u2()
	if err != nil {
		return Field{}, err
	}
	attrs, err := parseFieldAttributes(br, pool, attrCount)
	if err != nil {
		return Field{}, err
	}
	return Field{Flags: flags, Name: name, FieldType: ft, Attributes: attrs}, nil
}

func parseMethod(br *reader, pool *ConstantPool) (Method, error) {
	flagBits, err := br.u2()
	if err != nil {
		return Method{}, err
	}
	flags := AccessFlags(flagBits)
	if err := checkFlags(flags, legalMethodFlags, "method"); err != nil {
		return Method{}, err
	}
	nameIdx, err := br.u2()
	if err != nil {
		return Method{}, err
	}
	name, err := pool.getStr(nameIdx)
	if err != nil {
		return Method{}, err
	}
	descIdx, err := br.u2()
	if err != nil {
		return Method{}, err
	}
	desc, err := pool.getStr(descIdx)
	if err != nil {
		return Method{}, err
	}
	md, err := parseMethodDescriptor(desc)
	if err != nil {
		return Method{}, err
	}
	attrCount, err := br.u2()
	if err != nil {
		return Method{}, err
	}
	attrs, err := parseMethodAttributes(br, pool, attrCount)
	if err != nil {
		return Method{}, err
	}

	hasBody := attrs.Code != nil
	if name != "<clinit>" {
		mustLackBody := flags.Has(AccNative) || flags.Has(AccAbstract)
		if mustLackBody && hasBody {
			return Method{}, errMalformedf("method %s is NATIVE or ABSTRACT but declares a Code attribute", name)
		}
		if !mustLackBody && !hasBody {
			return Method{}, errMalformedf("method %s requires exactly one Code attribute", name)
		}
	}

	var body *MethodBody
	if hasBody {
		c := attrs.Code
		body = &MethodBody{
			MaxStack:               c.MaxStack,
			MaxLocals:              c.MaxLocals,
			Instructions:           c.Instructions,
			ExceptionTable:         c.ExceptionTable,
			LineNumberTable:        c.Attributes.LineNumberTable,
			LocalVariableTable:     c.Attributes.LocalVariableTable,
			LocalVariableTypeTable: c.Attributes.LocalVariableTypeTable,
			StackMapTable:          c.Attributes.StackMapTable,
		}
	}

	return Method{Flags: flags, Name: name, Descriptor: md, Body: body, Attributes: attrs}, nil
}
