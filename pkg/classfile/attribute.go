package classfile

import "bytes"

// AccessFlags is the access_flags bitmask shared by classes, fields,
// methods, inner classes, method parameters and module directives; the bit
// positions are reused across these sites with different legal subsets.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccOpen         AccessFlags = 0x0020
	AccTransitive   AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccStaticPhase  AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
	AccMandated     AccessFlags = 0x8000
)

// Has reports whether every bit set in mask is also set in f.
func (f AccessFlags) Has(mask AccessFlags) bool { return f&mask == mask }

func checkFlags(flags, legal AccessFlags, site string) error {
	if extra := flags &^ legal; extra != 0 {
		return errUnknownFlags(uint16(extra), site)
	}
	return nil
}

// UnknownAttribute preserves an attribute this package does not recognize
// (or does not expect at its site) verbatim, per the JVMS §4.7.1 directive
// that conforming readers must not reject attributes they don't recognize.
type UnknownAttribute struct {
	Name string
	Data []byte
}

func readRawAttribute(r *reader, pool *ConstantPool) (name string, data []byte, err error) {
	nameIdx, err := r.u2()
	if err != nil {
		return "", nil, err
	}
	name, err = pool.getStr(nameIdx)
	if err != nil {
		return "", nil, err
	}
	length, err := r.u4()
	if err != nil {
		return "", nil, err
	}
	data, err = r.bytes(int(length))
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}

func bodyReader(data []byte) (*reader, *bytes.Reader) {
	br := bytes.NewReader(data)
	return newReader(br), br
}

func finishAttribute(data []byte, br *bytes.Reader) error {
	if br.Len() != 0 {
		return errInvalidAttributeLength(uint32(len(data))-uint32(br.Len()), uint32(len(data)))
	}
	return nil
}

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType *ClassReference // nil for a catch-all (catch_type 0, used by `finally`)
}

// LineNumberEntry maps one bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LocalVariableEntry is one entry of a LocalVariableTable attribute.
type LocalVariableEntry struct {
	StartPC   uint16
	Length    uint16
	Name      string
	FieldType FieldType
	Index     uint16
}

// LocalVariableTypeEntry is one entry of a LocalVariableTypeTable
// attribute; Signature carries a generic signature string rather than a
// plain field descriptor.
type LocalVariableTypeEntry struct {
	StartPC   uint16
	Length    uint16
	Name      string
	Signature string
	Index     uint16
}

// CodeAttributes holds the attributes legal to nest inside a Code
// attribute.
type CodeAttributes struct {
	LineNumberTable        []LineNumberEntry
	LocalVariableTable     []LocalVariableEntry
	LocalVariableTypeTable []LocalVariableTypeEntry
	StackMapTable          []StackMapFrame
	Unknown                []UnknownAttribute
}

// CodeAttribute is the decoded Code attribute of a non-abstract,
// non-native method.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	CodeLength     uint32
	Instructions   map[uint16]Instruction
	ExceptionTable []ExceptionTableEntry
	Attributes     CodeAttributes
}

func parseCodeAttribute(data []byte, pool *ConstantPool) (CodeAttribute, error) {
	r, br := bodyReader(data)
	maxStack, err := r.u2()
	if err != nil {
		return CodeAttribute{}, err
	}
	maxLocals, err := r.u2()
	if err != nil {
		return CodeAttribute{}, err
	}
	codeLength, err := r.u4()
	if err != nil {
		return CodeAttribute{}, err
	}
	if codeLength == 0 {
		return CodeAttribute{}, errMalformed("Code attribute: code_length must be nonzero")
	}
	codeBytes, err := r.bytes(int(codeLength))
	if err != nil {
		return CodeAttribute{}, err
	}
	instructions, err := decodeInstructions(codeBytes, pool)
	if err != nil {
		return CodeAttribute{}, err
	}

	excCount, err := r.u2()
	if err != nil {
		return CodeAttribute{}, err
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		startPC, err := r.u2()
		if err != nil {
			return CodeAttribute{}, err
		}
		endPC, err := r.u2()
		if err != nil {
			return CodeAttribute{}, err
		}
		handlerPC, err := r.u2()
		if err != nil {
			return CodeAttribute{}, err
		}
		catchIdx, err := r.u2()
		if err != nil {
			return CodeAttribute{}, err
		}
		var catchType *ClassReference
		if catchIdx != 0 {
			cr, err := pool.GetClassRef(catchIdx)
			if err != nil {
				return CodeAttribute{}, err
			}
			catchType = &cr
		}
		excTable[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrCount, err := r.u2()
	if err != nil {
		return CodeAttribute{}, err
	}
	var attrs CodeAttributes
	for i := uint16(0); i < attrCount; i++ {
		name, body, err := readRawAttribute(r, pool)
		if err != nil {
			return CodeAttribute{}, err
		}
		switch name {
		case "LineNumberTable":
			entries, err := parseLineNumberTable(body, pool)
			if err != nil {
				return CodeAttribute{}, err
			}
			attrs.LineNumberTable = append(attrs.LineNumberTable, entries...)
		case "LocalVariableTable":
			entries, err := parseLocalVariableTable(body, pool)
			if err != nil {
				return CodeAttribute{}, err
			}
			attrs.LocalVariableTable = append(attrs.LocalVariableTable, entries...)
		case "LocalVariableTypeTable":
			entries, err := parseLocalVariableTypeTable(body, pool)
			if err != nil {
				return CodeAttribute{}, err
			}
			attrs.LocalVariableTypeTable = append(attrs.LocalVariableTypeTable, entries...)
		case "StackMapTable":
			if attrs.StackMapTable != nil {
				return CodeAttribute{}, errUnexpectedAttribute(name, "Code")
			}
			br2, bbr := bodyReader(body)
			frames, err := parseStackMapTable(br2, pool)
			if err != nil {
				return CodeAttribute{}, err
			}
			if err := finishAttribute(body, bbr); err != nil {
				return CodeAttribute{}, err
			}
			attrs.StackMapTable = frames
		default:
			attrs.Unknown = append(attrs.Unknown, UnknownAttribute{Name: name, Data: body})
		}
	}

	if err := finishAttribute(data, br); err != nil {
		return CodeAttribute{}, err
	}

	return CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		CodeLength:     codeLength,
		Instructions:   instructions,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

func parseLineNumberTable(data []byte, pool *ConstantPool) ([]LineNumberEntry, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]LineNumberEntry, count)
	for i := range out {
		startPC, err := r.u2()
		if err != nil {
			return nil, err
		}
		line, err := r.u2()
		if err != nil {
			return nil, err
		}
		out[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLocalVariableTable(data []byte, pool *ConstantPool) ([]LocalVariableEntry, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]LocalVariableEntry, count)
	for i := range out {
		startPC, err := r.u2()
		if err != nil {
			return nil, err
		}
		length, err := r.u2()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		name, err := pool.getStr(nameIdx)
		if err != nil {
			return nil, err
		}
		descIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		desc, err := pool.getStr(descIdx)
		if err != nil {
			return nil, err
		}
		ft, err := parseFieldDescriptor(desc)
		if err != nil {
			return nil, err
		}
		index, err := r.u2()
		if err != nil {
			return nil, err
		}
		out[i] = LocalVariableEntry{StartPC: startPC, Length: length, Name: name, FieldType: ft, Index: index}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLocalVariableTypeTable(data []byte, pool *ConstantPool) ([]LocalVariableTypeEntry, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]LocalVariableTypeEntry, count)
	for i := range out {
		startPC, err := r.u2()
		if err != nil {
			return nil, err
		}
		length, err := r.u2()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		name, err := pool.getStr(nameIdx)
		if err != nil {
			return nil, err
		}
		sigIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		sig, err := pool.getStr(sigIdx)
		if err != nil {
			return nil, err
		}
		index, err := r.u2()
		if err != nil {
			return nil, err
		}
		out[i] = LocalVariableTypeEntry{StartPC: startPC, Length: length, Name: name, Signature: sig, Index: index}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

// InnerClassEntry is one entry of an InnerClasses attribute.
type InnerClassEntry struct {
	Inner     ClassReference
	Outer     *ClassReference // nil when the inner class is not a member of another class
	InnerName string          // empty for an anonymous class
	Flags     AccessFlags
}

func parseInnerClasses(data []byte, pool *ConstantPool) ([]InnerClassEntry, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]InnerClassEntry, count)
	for i := range out {
		innerIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		inner, err := pool.GetClassRef(innerIdx)
		if err != nil {
			return nil, err
		}
		outerIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		var outer *ClassReference
		if outerIdx != 0 {
			oc, err := pool.GetClassRef(outerIdx)
			if err != nil {
				return nil, err
			}
			outer = &oc
		}
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		var name string
		if nameIdx != 0 {
			name, err = pool.getStr(nameIdx)
			if err != nil {
				return nil, err
			}
		}
		flags, err := r.u2()
		if err != nil {
			return nil, err
		}
		out[i] = InnerClassEntry{Inner: inner, Outer: outer, InnerName: name, Flags: AccessFlags(flags)}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

// EnclosingMethodRef names the method a local/anonymous class is enclosed
// in; nil when the class is enclosed only by a class (e.g. a top-level
// local class initializer).
type EnclosingMethodRef struct {
	Name       string
	Descriptor MethodDescriptor
}

// EnclosingMethodAttribute is the decoded EnclosingMethod attribute.
type EnclosingMethodAttribute struct {
	Class  ClassReference
	Method *EnclosingMethodRef
}

func parseEnclosingMethod(data []byte, pool *ConstantPool) (EnclosingMethodAttribute, error) {
	r, br := bodyReader(data)
	classIdx, err := r.u2()
	if err != nil {
		return EnclosingMethodAttribute{}, err
	}
	class, err := pool.GetClassRef(classIdx)
	if err != nil {
		return EnclosingMethodAttribute{}, err
	}
	natIdx, err := r.u2()
	if err != nil {
		return EnclosingMethodAttribute{}, err
	}
	var method *EnclosingMethodRef
	if natIdx != 0 {
		name, desc, err := pool.getNameAndType(natIdx)
		if err != nil {
			return EnclosingMethodAttribute{}, err
		}
		md, err := parseMethodDescriptor(desc)
		if err != nil {
			return EnclosingMethodAttribute{}, err
		}
		method = &EnclosingMethodRef{Name: name, Descriptor: md}
	}
	if err := finishAttribute(data, br); err != nil {
		return EnclosingMethodAttribute{}, err
	}
	return EnclosingMethodAttribute{Class: class, Method: method}, nil
}

// BootstrapMethod is one entry of a BootstrapMethods attribute.
type BootstrapMethod struct {
	Method    MethodHandleValue
	Arguments []ConstantValue
}

func parseBootstrapMethods(data []byte, pool *ConstantPool) ([]BootstrapMethod, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]BootstrapMethod, count)
	for i := range out {
		mhIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		mh, err := pool.GetMethodHandle(mhIdx)
		if err != nil {
			return nil, err
		}
		argCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		args := make([]ConstantValue, argCount)
		for j := range args {
			argIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			args[j], err = pool.GetConstantValue(argIdx)
			if err != nil {
				return nil, err
			}
		}
		out[i] = BootstrapMethod{Method: mh, Arguments: args}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

// MethodParameter is one entry of a MethodParameters attribute.
type MethodParameter struct {
	Name  string // empty when name_index is 0 (the formal parameter has no name)
	Flags AccessFlags
}

func parseMethodParameters(data []byte, pool *ConstantPool) ([]MethodParameter, error) {
	r, br := bodyReader(data)
	count, err := r.u1()
	if err != nil {
		return nil, err
	}
	out := make([]MethodParameter, count)
	for i := range out {
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		var name string
		if nameIdx != 0 {
			name, err = pool.getStr(nameIdx)
			if err != nil {
				return nil, err
			}
		}
		flags, err := r.u2()
		if err != nil {
			return nil, err
		}
		if err := checkFlags(AccessFlags(flags), AccFinal|AccSynthetic|AccMandated, "method parameter"); err != nil {
			return nil, err
		}
		out[i] = MethodParameter{Name: name, Flags: AccessFlags(flags)}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

// ModuleRequire is one `requires` directive of a Module attribute.
type ModuleRequire struct {
	Module  ModuleReference
	Flags   AccessFlags
	Version string // empty when version_index is 0
}

// ModuleExport is one `exports` directive of a Module attribute.
type ModuleExport struct {
	Package PackageReference
	Flags   AccessFlags
	To      []ModuleReference // empty means exported to everyone
}

// ModuleOpen is one `opens` directive of a Module attribute.
type ModuleOpen struct {
	Package PackageReference
	Flags   AccessFlags
	To      []ModuleReference
}

// ModuleProvide is one `provides ... with` directive of a Module attribute.
type ModuleProvide struct {
	Service ClassReference
	With    []ClassReference
}

// ModuleAttribute is the decoded Module attribute of module-info.class.
type ModuleAttribute struct {
	Module   ModuleReference
	Flags    AccessFlags
	Version  string
	Requires []ModuleRequire
	Exports  []ModuleExport
	Opens    []ModuleOpen
	Uses     []ClassReference
	Provides []ModuleProvide
}

func parseModuleReference(r *reader, pool *ConstantPool, index uint16) (ModuleReference, error) {
	e, err := pool.at(index)
	if err != nil {
		return ModuleReference{}, err
	}
	if e.tag != tagModule {
		return ModuleReference{}, errMismatchedTag("Module", tagName(e.tag))
	}
	name, err := pool.getStr(e.nameIndex)
	if err != nil {
		return ModuleReference{}, err
	}
	return ModuleReference{Name: name}, nil
}

func parsePackageReference(pool *ConstantPool, index uint16) (PackageReference, error) {
	e, err := pool.at(index)
	if err != nil {
		return PackageReference{}, err
	}
	if e.tag != tagPackage {
		return PackageReference{}, errMismatchedTag("Package", tagName(e.tag))
	}
	name, err := pool.getStr(e.nameIndex)
	if err != nil {
		return PackageReference{}, err
	}
	return PackageReference{BinaryName: name}, nil
}

func parseModule(data []byte, pool *ConstantPool) (ModuleAttribute, error) {
	r, br := bodyReader(data)

	moduleIdx, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	module, err := parseModuleReference(r, pool, moduleIdx)
	if err != nil {
		return ModuleAttribute{}, err
	}
	flags, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	versionIdx, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	var version string
	if versionIdx != 0 {
		version, err = pool.getStr(versionIdx)
		if err != nil {
			return ModuleAttribute{}, err
		}
	}

	requireCount, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	requires := make([]ModuleRequire, requireCount)
	for i := range requires {
		modIdx, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		mod, err := parseModuleReference(r, pool, modIdx)
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqFlags, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqVerIdx, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		var reqVer string
		if reqVerIdx != 0 {
			reqVer, err = pool.getStr(reqVerIdx)
			if err != nil {
				return ModuleAttribute{}, err
			}
		}
		requires[i] = ModuleRequire{Module: mod, Flags: AccessFlags(reqFlags), Version: reqVer}
	}

	exportCount, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	exports := make([]ModuleExport, exportCount)
	for i := range exports {
		pkgIdx, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		pkg, err := parsePackageReference(pool, pkgIdx)
		if err != nil {
			return ModuleAttribute{}, err
		}
		expFlags, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		toCount, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		to := make([]ModuleReference, toCount)
		for j := range to {
			idx, err := r.u2()
			if err != nil {
				return ModuleAttribute{}, err
			}
			to[j], err = parseModuleReference(r, pool, idx)
			if err != nil {
				return ModuleAttribute{}, err
			}
		}
		exports[i] = ModuleExport{Package: pkg, Flags: AccessFlags(expFlags), To: to}
	}

	openCount, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	opens := make([]ModuleOpen, openCount)
	for i := range opens {
		pkgIdx, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		pkg, err := parsePackageReference(pool, pkgIdx)
		if err != nil {
			return ModuleAttribute{}, err
		}
		openFlags, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		toCount, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		to := make([]ModuleReference, toCount)
		for j := range to {
			idx, err := r.u2()
			if err != nil {
				return ModuleAttribute{}, err
			}
			to[j], err = parseModuleReference(r, pool, idx)
			if err != nil {
				return ModuleAttribute{}, err
			}
		}
		opens[i] = ModuleOpen{Package: pkg, Flags: AccessFlags(openFlags), To: to}
	}

	useCount, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	uses := make([]ClassReference, useCount)
	for i := range uses {
		idx, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		uses[i], err = pool.GetClassRef(idx)
		if err != nil {
			return ModuleAttribute{}, err
		}
	}

	provideCount, err := r.u2()
	if err != nil {
		return ModuleAttribute{}, err
	}
	provides := make([]ModuleProvide, provideCount)
	for i := range provides {
		svcIdx, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		svc, err := pool.GetClassRef(svcIdx)
		if err != nil {
			return ModuleAttribute{}, err
		}
		withCount, err := r.u2()
		if err != nil {
			return ModuleAttribute{}, err
		}
		with := make([]ClassReference, withCount)
		for j := range with {
			idx, err := r.u2()
			if err != nil {
				return ModuleAttribute{}, err
			}
			with[j], err = pool.GetClassRef(idx)
			if err != nil {
				return ModuleAttribute{}, err
			}
		}
		provides[i] = ModuleProvide{Service: svc, With: with}
	}

	if err := finishAttribute(data, br); err != nil {
		return ModuleAttribute{}, err
	}

	return ModuleAttribute{
		Module: module, Flags: AccessFlags(flags), Version: version,
		Requires: requires, Exports: exports, Opens: opens, Uses: uses, Provides: provides,
	}, nil
}

func parseModulePackages(data []byte, pool *ConstantPool) ([]PackageReference, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]PackageReference, count)
	for i := range out {
		idx, err := r.u2()
		if err != nil {
			return nil, err
		}
		out[i], err = parsePackageReference(pool, idx)
		if err != nil {
			return nil, err
		}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseClassRefList(data []byte, pool *ConstantPool) ([]ClassReference, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]ClassReference, count)
	for i := range out {
		idx, err := r.u2()
		if err != nil {
			return nil, err
		}
		out[i], err = pool.GetClassRef(idx)
		if err != nil {
			return nil, err
		}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseSingleClassRef(data []byte, pool *ConstantPool) (ClassReference, error) {
	r, br := bodyReader(data)
	idx, err := r.u2()
	if err != nil {
		return ClassReference{}, err
	}
	cr, err := pool.GetClassRef(idx)
	if err != nil {
		return ClassReference{}, err
	}
	if err := finishAttribute(data, br); err != nil {
		return ClassReference{}, err
	}
	return cr, nil
}

// RecordComponentAttributes holds the attributes legal to nest inside a
// Record attribute's individual component entries.
type RecordComponentAttributes struct {
	Signature                       string
	RuntimeVisibleAnnotations       []Annotation
	RuntimeInvisibleAnnotations     []Annotation
	RuntimeVisibleTypeAnnotations   []TypeAnnotation
	RuntimeInvisibleTypeAnnotations []TypeAnnotation
	Unknown                         []UnknownAttribute
}

// RecordComponent is one entry of a Record attribute.
type RecordComponent struct {
	Name       string
	FieldType  FieldType
	Attributes RecordComponentAttributes
}

func parseRecord(data []byte, pool *ConstantPool) ([]RecordComponent, error) {
	r, br := bodyReader(data)
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]RecordComponent, count)
	for i := range out {
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		name, err := pool.getStr(nameIdx)
		if err != nil {
			return nil, err
		}
		descIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		desc, err := pool.getStr(descIdx)
		if err != nil {
			return nil, err
		}
		ft, err := parseFieldDescriptor(desc)
		if err != nil {
			return nil, err
		}
		attrCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		var attrs RecordComponentAttributes
		for j := uint16(0); j < attrCount; j++ {
			attrName, body, err := readRawAttribute(r, pool)
			if err != nil {
				return nil, err
			}
			switch attrName {
			case "Signature":
				attrs.Signature, err = parseSignature(body, pool)
			case "RuntimeVisibleAnnotations":
				attrs.RuntimeVisibleAnnotations, err = parseAnnotationsAttr(body, pool)
			case "RuntimeInvisibleAnnotations":
				attrs.RuntimeInvisibleAnnotations, err = parseAnnotationsAttr(body, pool)
			case "RuntimeVisibleTypeAnnotations":
				attrs.RuntimeVisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
			case "RuntimeInvisibleTypeAnnotations":
				attrs.RuntimeInvisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
			default:
				attrs.Unknown = append(attrs.Unknown, UnknownAttribute{Name: attrName, Data: body})
			}
			if err != nil {
				return nil, err
			}
		}
		out[i] = RecordComponent{Name: name, FieldType: ft, Attributes: attrs}
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseSignature(data []byte, pool *ConstantPool) (string, error) {
	r, br := bodyReader(data)
	idx, err := r.u2()
	if err != nil {
		return "", err
	}
	sig, err := pool.getStr(idx)
	if err != nil {
		return "", err
	}
	if err := finishAttribute(data, br); err != nil {
		return "", err
	}
	return sig, nil
}

func parseAnnotationsAttr(data []byte, pool *ConstantPool) ([]Annotation, error) {
	r, br := bodyReader(data)
	out, err := parseAnnotations(r, pool)
	if err != nil {
		return nil, err
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseParameterAnnotationsAttr(data []byte, pool *ConstantPool) ([][]Annotation, error) {
	r, br := bodyReader(data)
	out, err := parseParameterAnnotations(r, pool)
	if err != nil {
		return nil, err
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseTypeAnnotationsAttr(data []byte, pool *ConstantPool) ([]TypeAnnotation, error) {
	r, br := bodyReader(data)
	out, err := parseTypeAnnotations(r, pool)
	if err != nil {
		return nil, err
	}
	if err := finishAttribute(data, br); err != nil {
		return nil, err
	}
	return out, nil
}

func parseAnnotationDefault(data []byte, pool *ConstantPool) (ElementValue, error) {
	r, br := bodyReader(data)
	ev, err := parseElementValue(r, pool)
	if err != nil {
		return ElementValue{}, err
	}
	if err := finishAttribute(data, br); err != nil {
		return ElementValue{}, err
	}
	return ev, nil
}

func parseConstantValueAttr(data []byte, pool *ConstantPool) (ConstantValue, error) {
	r, br := bodyReader(data)
	idx, err := r.u2()
	if err != nil {
		return ConstantValue{}, err
	}
	cv, err := pool.GetConstantValue(idx)
	if err != nil {
		return ConstantValue{}, err
	}
	if err := finishAttribute(data, br); err != nil {
		return ConstantValue{}, err
	}
	return cv, nil
}

// ClassAttributes holds the attributes legal at the top level of a class
// file.
type ClassAttributes struct {
	SourceFile                      string
	HasSourceFile                    bool
	SourceDebugExtension            []byte
	InnerClasses                    []InnerClassEntry
	EnclosingMethod                 *EnclosingMethodAttribute
	Synthetic                       bool
	Signature                       string
	Deprecated                      bool
	RuntimeVisibleAnnotations       []Annotation
	RuntimeInvisibleAnnotations     []Annotation
	RuntimeVisibleTypeAnnotations   []TypeAnnotation
	RuntimeInvisibleTypeAnnotations []TypeAnnotation
	BootstrapMethods                []BootstrapMethod
	Module                          *ModuleAttribute
	ModulePackages                  []PackageReference
	ModuleMainClass                 *ClassReference
	NestHost                        *ClassReference
	NestMembers                     []ClassReference
	Record                          []RecordComponent
	HasRecord                       bool
	PermittedSubclasses             []ClassReference
	Unknown                         []UnknownAttribute
}

// classSingletonAttrs lists the class-level attributes JVMS permits at most
// once; a second occurrence of any of these is rejected (§9's resolution of
// the duplicate-Signature ambiguity applies uniformly here).
var classSingletonAttrs = map[string]bool{
	"SourceFile": true, "SourceDebugExtension": true, "InnerClasses": true,
	"EnclosingMethod": true, "Synthetic": true, "Signature": true, "Deprecated": true,
	"RuntimeVisibleAnnotations": true, "RuntimeInvisibleAnnotations": true,
	"RuntimeVisibleTypeAnnotations": true, "RuntimeInvisibleTypeAnnotations": true,
	"BootstrapMethods": true, "Module": true, "ModulePackages": true,
	"ModuleMainClass": true, "NestHost": true, "NestMembers": true,
	"Record": true, "PermittedSubclasses": true,
}

func parseClassAttributes(r *reader, pool *ConstantPool, count uint16) (ClassAttributes, error) {
	var attrs ClassAttributes
	seen := make(map[string]bool)
	for i := uint16(0); i < count; i++ {
		name, body, err := readRawAttribute(r, pool)
		if err != nil {
			return ClassAttributes{}, err
		}
		if classSingletonAttrs[name] {
			if seen[name] {
				return ClassAttributes{}, errUnexpectedAttribute(name, "class")
			}
			seen[name] = true
		}
		switch name {
		case "SourceFile":
			sr, sbr := bodyReader(body)
			idx, err := sr.u2()
			if err != nil {
				return ClassAttributes{}, err
			}
			sf, err := pool.getStr(idx)
			if err != nil {
				return ClassAttributes{}, err
			}
			if err := finishAttribute(body, sbr); err != nil {
				return ClassAttributes{}, err
			}
			attrs.SourceFile = sf
			attrs.HasSourceFile = true
		case "SourceDebugExtension":
			attrs.SourceDebugExtension = body
		case "InnerClasses":
			attrs.InnerClasses, err = parseInnerClasses(body, pool)
		case "EnclosingMethod":
			em, err2 := parseEnclosingMethod(body, pool)
			if err2 != nil {
				return ClassAttributes{}, err2
			}
			attrs.EnclosingMethod = &em
		case "Synthetic":
			if len(body) != 0 {
				return ClassAttributes{}, errInvalidAttributeLength(0, uint32(len(body)))
			}
			attrs.Synthetic = true
		case "Signature":
			attrs.Signature, err = parseSignature(body, pool)
		case "Deprecated":
			if len(body) != 0 {
				return ClassAttributes{}, errInvalidAttributeLength(0, uint32(len(body)))
			}
			attrs.Deprecated = true
		case "RuntimeVisibleAnnotations":
			attrs.RuntimeVisibleAnnotations, err = parseAnnotationsAttr(body, pool)
		case "RuntimeInvisibleAnnotations":
			attrs.RuntimeInvisibleAnnotations, err = parseAnnotationsAttr(body, pool)
		case "RuntimeVisibleTypeAnnotations":
			attrs.RuntimeVisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
		case "RuntimeInvisibleTypeAnnotations":
			attrs.RuntimeInvisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
		case "BootstrapMethods":
			attrs.BootstrapMethods, err = parseBootstrapMethods(body, pool)
		case "Module":
			mod, err2 := parseModule(body, pool)
			if err2 != nil {
				return ClassAttributes{}, err2
			}
			attrs.Module = &mod
		case "ModulePackages":
			attrs.ModulePackages, err = parseModulePackages(body, pool)
		case "ModuleMainClass":
			cr, err2 := parseSingleClassRef(body, pool)
			if err2 != nil {
				return ClassAttributes{}, err2
			}
			attrs.ModuleMainClass = &cr
		case "NestHost":
			cr, err2 := parseSingleClassRef(body, pool)
			if err2 != nil {
				return ClassAttributes{}, err2
			}
			attrs.NestHost = &cr
		case "NestMembers":
			attrs.NestMembers, err = parseClassRefList(body, pool)
		case "Record":
			attrs.Record, err = parseRecord(body, pool)
			attrs.HasRecord = true
		case "PermittedSubclasses":
			attrs.PermittedSubclasses, err = parseClassRefList(body, pool)
		default:
			attrs.Unknown = append(attrs.Unknown, UnknownAttribute{Name: name, Data: body})
		}
		if err != nil {
			return ClassAttributes{}, err
		}
	}
	return attrs, nil
}

// FieldAttributes holds the attributes legal on a field_info entry.
type FieldAttributes struct {
	ConstantValue                   *ConstantValue
	Synthetic                       bool
	Deprecated                      bool
	Signature                       string
	RuntimeVisibleAnnotations       []Annotation
	RuntimeInvisibleAnnotations     []Annotation
	RuntimeVisibleTypeAnnotations   []TypeAnnotation
	RuntimeInvisibleTypeAnnotations []TypeAnnotation
	Unknown                         []UnknownAttribute
}

var fieldSingletonAttrs = map[string]bool{
	"ConstantValue": true, "Synthetic": true, "Deprecated": true, "Signature": true,
	"RuntimeVisibleAnnotations": true, "RuntimeInvisibleAnnotations": true,
	"RuntimeVisibleTypeAnnotations": true, "RuntimeInvisibleTypeAnnotations": true,
}

func parseFieldAttributes(r *reader, pool *ConstantPool, count uint16) (FieldAttributes, error) {
	var attrs FieldAttributes
	seen := make(map[string]bool)
	for i := uint16(0); i < count; i++ {
		name, body, err := readRawAttribute(r, pool)
		if err != nil {
			return FieldAttributes{}, err
		}
		if fieldSingletonAttrs[name] {
			if seen[name] {
				return FieldAttributes{}, errUnexpectedAttribute(name, "field")
			}
			seen[name] = true
		}
		switch name {
		case "ConstantValue":
			cv, err2 := parseConstantValueAttr(body, pool)
			if err2 != nil {
				return FieldAttributes{}, err2
			}
			attrs.ConstantValue = &cv
		case "Synthetic":
			attrs.Synthetic = true
		case "Deprecated":
			attrs.Deprecated = true
		case "Signature":
			attrs.Signature, err = parseSignature(body, pool)
		case "RuntimeVisibleAnnotations":
			attrs.RuntimeVisibleAnnotations, err = parseAnnotationsAttr(body, pool)
		case "RuntimeInvisibleAnnotations":
			attrs.RuntimeInvisibleAnnotations, err = parseAnnotationsAttr(body, pool)
		case "RuntimeVisibleTypeAnnotations":
			attrs.RuntimeVisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
		case "RuntimeInvisibleTypeAnnotations":
			attrs.RuntimeInvisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
		default:
			attrs.Unknown = append(attrs.Unknown, UnknownAttribute{Name: name, Data: body})
		}
		if err != nil {
			return FieldAttributes{}, err
		}
	}
	return attrs, nil
}

// MethodAttributes holds the attributes legal on a method_info entry.
type MethodAttributes struct {
	Code                                  *CodeAttribute
	Exceptions                            []ClassReference
	Synthetic                             bool
	Deprecated                            bool
	Signature                             string
	RuntimeVisibleAnnotations             []Annotation
	RuntimeInvisibleAnnotations           []Annotation
	RuntimeVisibleParameterAnnotations    [][]Annotation
	RuntimeInvisibleParameterAnnotations  [][]Annotation
	RuntimeVisibleTypeAnnotations         []TypeAnnotation
	RuntimeInvisibleTypeAnnotations       []TypeAnnotation
	AnnotationDefault                     *ElementValue
	MethodParameters                      []MethodParameter
	Unknown                               []UnknownAttribute
}

var methodSingletonAttrs = map[string]bool{
	"Code": true, "Exceptions": true, "Synthetic": true, "Deprecated": true, "Signature": true,
	"RuntimeVisibleAnnotations": true, "RuntimeInvisibleAnnotations": true,
	"RuntimeVisibleParameterAnnotations": true, "RuntimeInvisibleParameterAnnotations": true,
	"RuntimeVisibleTypeAnnotations": true, "RuntimeInvisibleTypeAnnotations": true,
	"AnnotationDefault": true, "MethodParameters": true,
}

func parseMethodAttributes(r *reader, pool *ConstantPool, count uint16) (MethodAttributes, error) {
	var attrs MethodAttributes
	seen := make(map[string]bool)
	for i := uint16(0); i < count; i++ {
		name, body, err := readRawAttribute(r, pool)
		if err != nil {
			return MethodAttributes{}, err
		}
		if methodSingletonAttrs[name] {
			if seen[name] {
				return MethodAttributes{}, errUnexpectedAttribute(name, "method")
			}
			seen[name] = true
		}
		switch name {
		case "Code":
			code, err2 := parseCodeAttribute(body, pool)
			if err2 != nil {
				return MethodAttributes{}, err2
			}
			attrs.Code = &code
		case "Exceptions":
			attrs.Exceptions, err = parseClassRefList(body, pool)
		case "Synthetic":
			attrs.Synthetic = true
		case "Deprecated":
			attrs.Deprecated = true
		case "Signature":
			attrs.Signature, err = parseSignature(body, pool)
		case "RuntimeVisibleAnnotations":
			attrs.RuntimeVisibleAnnotations, err = parseAnnotationsAttr(body, pool)
		case "RuntimeInvisibleAnnotations":
			attrs.RuntimeInvisibleAnnotations, err = parseAnnotationsAttr(body, pool)
		case "RuntimeVisibleParameterAnnotations":
			attrs.RuntimeVisibleParameterAnnotations, err = parseParameterAnnotationsAttr(body, pool)
		case "RuntimeInvisibleParameterAnnotations":
			attrs.RuntimeInvisibleParameterAnnotations, err = parseParameterAnnotationsAttr(body, pool)
		case "RuntimeVisibleTypeAnnotations":
			attrs.RuntimeVisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
		case "RuntimeInvisibleTypeAnnotations":
			attrs.RuntimeInvisibleTypeAnnotations, err = parseTypeAnnotationsAttr(body, pool)
		case "AnnotationDefault":
			ad, err2 := parseAnnotationDefault(body, pool)
			if err2 != nil {
				return MethodAttributes{}, err2
			}
			attrs.AnnotationDefault = &ad
		case "MethodParameters":
			attrs.MethodParameters, err = parseMethodParameters(body, pool)
		default:
			attrs.Unknown = append(attrs.Unknown, UnknownAttribute{Name: name, Data: body})
		}
		if err != nil {
			return MethodAttributes{}, err
		}
	}
	return attrs, nil
}
