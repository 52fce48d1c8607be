package classfile

// ElementValueKind discriminates the tag byte of an annotation element
// value per JVMS §4.7.16.1.
type ElementValueKind int

const (
	ElemByte ElementValueKind = iota
	ElemChar
	ElemDouble
	ElemFloat
	ElemInt
	ElemLong
	ElemShort
	ElemBoolean
	ElemString
	ElemEnum
	ElemClass
	ElemAnnotation
	ElemArray
)

// EnumConstValue is the payload of an 'e' element value.
type EnumConstValue struct {
	TypeDescriptor FieldType
	ConstName      string
}

// ElementValue is one annotation element value.
type ElementValue struct {
	Kind ElementValueKind

	ConstValue ConstantValue // B C D F I J S Z s
	Enum       EnumConstValue
	ClassInfo  FieldType // 'c': return descriptor, possibly "V"
	Annotation *Annotation
	Array      []ElementValue
}

func parseElementValue(r *reader, pool *ConstantPool) (ElementValue, error) {
	tag, err := r.u1()
	if err != nil {
		return ElementValue{}, err
	}
	switch tag {
	case 'B', 'C', 'I', 'S', 'Z', 'D', 'F', 'J':
		idx, err := r.u2()
		if err != nil {
			return ElementValue{}, err
		}
		cv, err := pool.GetConstantValue(idx)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Kind: elemKindOfTag(tag), ConstValue: cv}, nil

	case 's':
		idx, err := r.u2()
		if err != nil {
			return ElementValue{}, err
		}
		s, err := pool.GetUTF8(idx)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Kind: ElemString, ConstValue: ConstantValue{Kind: ConstString, String: s}}, nil

	case 'e':
		typeIdx, err := r.u2()
		if err != nil {
			return ElementValue{}, err
		}
		constIdx, err := r.u2()
		if err != nil {
			return ElementValue{}, err
		}
		typeDesc, err := pool.getStr(typeIdx)
		if err != nil {
			return ElementValue{}, err
		}
		ft, err := parseFieldDescriptor(typeDesc)
		if err != nil {
			return ElementValue{}, err
		}
		constName, err := pool.getStr(constIdx)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Kind: ElemEnum, Enum: EnumConstValue{TypeDescriptor: ft, ConstName: constName}}, nil

	case 'c':
		idx, err := r.u2()
		if err != nil {
			return ElementValue{}, err
		}
		desc, err := pool.getStr(idx)
		if err != nil {
			return ElementValue{}, err
		}
		var ft FieldType
		if desc != "V" {
			ft, err = parseFieldDescriptor(desc)
			if err != nil {
				return ElementValue{}, err
			}
		}
		return ElementValue{Kind: ElemClass, ClassInfo: ft}, nil

	case '@':
		ann, err := parseAnnotation(r, pool)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Kind: ElemAnnotation, Annotation: &ann}, nil

	case '[':
		count, err := r.u2()
		if err != nil {
			return ElementValue{}, err
		}
		arr := make([]ElementValue, count)
		for i := range arr {
			arr[i], err = parseElementValue(r, pool)
			if err != nil {
				return ElementValue{}, err
			}
		}
		return ElementValue{Kind: ElemArray, Array: arr}, nil

	default:
		return ElementValue{}, errInvalidElementValueTag(tag)
	}
}

func elemKindOfTag(tag byte) ElementValueKind {
	switch tag {
	case 'B':
		return ElemByte
	case 'C':
		return ElemChar
	case 'D':
		return ElemDouble
	case 'F':
		return ElemFloat
	case 'I':
		return ElemInt
	case 'J':
		return ElemLong
	case 'S':
		return ElemShort
	case 'Z':
		return ElemBoolean
	default:
		return ElemInt
	}
}

// ElementValuePair is one (name, value) pair of an annotation.
type ElementValuePair struct {
	Name  string
	Value ElementValue
}

// Annotation is a single @Annotation entry.
type Annotation struct {
	TypeDescriptor FieldType
	Elements       []ElementValuePair
}

func parseAnnotation(r *reader, pool *ConstantPool) (Annotation, error) {
	typeIdx, err := r.u2()
	if err != nil {
		return Annotation{}, err
	}
	desc, err := pool.getStr(typeIdx)
	if err != nil {
		return Annotation{}, err
	}
	ft, err := parseFieldDescriptor(desc)
	if err != nil {
		return Annotation{}, err
	}
	count, err := r.u2()
	if err != nil {
		return Annotation{}, err
	}
	pairs := make([]ElementValuePair, count)
	for i := range pairs {
		nameIdx, err := r.u2()
		if err != nil {
			return Annotation{}, err
		}
		name, err := pool.getStr(nameIdx)
		if err != nil {
			return Annotation{}, err
		}
		val, err := parseElementValue(r, pool)
		if err != nil {
			return Annotation{}, err
		}
		pairs[i] = ElementValuePair{Name: name, Value: val}
	}
	return Annotation{TypeDescriptor: ft, Elements: pairs}, nil
}

func parseAnnotations(r *reader, pool *ConstantPool) ([]Annotation, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]Annotation, count)
	for i := range out {
		out[i], err = parseAnnotation(r, pool)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseParameterAnnotations(r *reader, pool *ConstantPool) ([][]Annotation, error) {
	count, err := r.u1()
	if err != nil {
		return nil, err
	}
	out := make([][]Annotation, count)
	for i := range out {
		out[i], err = parseAnnotations(r, pool)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TargetTypeKind enumerates the target_type byte of a type annotation, per
// JVMS §4.7.20.1.
type TargetTypeKind int

const (
	TargetTypeParameter TargetTypeKind = iota
	TargetSuperType
	TargetTypeParameterBound
	TargetEmpty // field, method return, receiver: no extra payload beyond target_type
	TargetFormalParameter
	TargetThrows
	TargetLocalVar
	TargetCatch
	TargetOffset // instanceof / new / method ref via ::, constructor ref
	TargetTypeArgument
)

// TypePathElementKind is the kind of one step of a type_path, per JVMS §4.7.20.2.
type TypePathElementKind int

const (
	PathArray TypePathElementKind = iota
	PathNested
	PathBound
	PathTypeArgument
)

type TypePathElement struct {
	Kind          TypePathElementKind
	TypeArgumentIndex uint8 // only meaningful for PathTypeArgument
}

func parseTypePath(r *reader) ([]TypePathElement, error) {
	count, err := r.u1()
	if err != nil {
		return nil, err
	}
	out := make([]TypePathElement, count)
	for i := range out {
		kind, err := r.u1()
		if err != nil {
			return nil, err
		}
		argIdx, err := r.u1()
		if err != nil {
			return nil, err
		}
		var k TypePathElementKind
		switch kind {
		case 0:
			k = PathArray
		case 1:
			k = PathNested
		case 2:
			k = PathBound
		case 3:
			k = PathTypeArgument
		default:
			return nil, errInvalidTypePathKind()
		}
		if k != PathTypeArgument && argIdx != 0 {
			return nil, errInvalidTypePathKind()
		}
		out[i] = TypePathElement{Kind: k, TypeArgumentIndex: argIdx}
	}
	return out, nil
}

// TargetInfo carries the operand layout specific to a target_type.
type TargetInfo struct {
	Kind TargetTypeKind

	TypeParameterIndex uint8
	SuperTypeIndex      uint16
	BoundIndex          uint8
	FormalParameterIndex uint8
	ThrowsTypeIndex      uint16
	LocalVarTargets      []LocalVarTarget
	CatchExceptionTableIndex uint16
	Offset              uint16
	TypeArgumentIndex   uint8
}

// LocalVarTarget is one (start_pc, length, index) entry of a localvar_target.
type LocalVarTarget struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

func parseTargetInfo(r *reader, targetType uint8) (TargetInfo, error) {
	switch targetType {
	case 0x00, 0x01:
		idx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetTypeParameter, TypeParameterIndex: idx}, nil

	case 0x10:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetSuperType, SuperTypeIndex: idx}, nil

	case 0x11, 0x12:
		paramIdx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		boundIdx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetTypeParameterBound, TypeParameterIndex: paramIdx, BoundIndex: boundIdx}, nil

	case 0x13, 0x14, 0x15:
		return TargetInfo{Kind: TargetEmpty}, nil

	case 0x16:
		idx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetFormalParameter, FormalParameterIndex: idx}, nil

	case 0x17:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetThrows, ThrowsTypeIndex: idx}, nil

	case 0x40, 0x41:
		count, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		targets := make([]LocalVarTarget, count)
		for i := range targets {
			start, err := r.u2()
			if err != nil {
				return TargetInfo{}, err
			}
			length, err := r.u2()
			if err != nil {
				return TargetInfo{}, err
			}
			index, err := r.u2()
			if err != nil {
				return TargetInfo{}, err
			}
			targets[i] = LocalVarTarget{StartPC: start, Length: length, Index: index}
		}
		return TargetInfo{Kind: TargetLocalVar, LocalVarTargets: targets}, nil

	case 0x42:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetCatch, CatchExceptionTableIndex: idx}, nil

	case 0x43, 0x44, 0x45, 0x46:
		off, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetOffset, Offset: off}, nil

	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		off, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		idx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Kind: TargetTypeArgument, Offset: off, TypeArgumentIndex: idx}, nil

	default:
		return TargetInfo{}, errInvalidTargetType(targetType)
	}
}

// TypeAnnotation is one entry of a RuntimeVisible/InvisibleTypeAnnotations
// attribute.
type TypeAnnotation struct {
	TargetType uint8
	Target     TargetInfo
	TypePath   []TypePathElement
	Annotation Annotation
}

func parseTypeAnnotation(r *reader, pool *ConstantPool) (TypeAnnotation, error) {
	targetType, err := r.u1()
	if err != nil {
		return TypeAnnotation{}, err
	}
	target, err := parseTargetInfo(r, targetType)
	if err != nil {
		return TypeAnnotation{}, err
	}
	path, err := parseTypePath(r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	ann, err := parseAnnotation(r, pool)
	if err != nil {
		return TypeAnnotation{}, err
	}
	return TypeAnnotation{TargetType: targetType, Target: target, TypePath: path, Annotation: ann}, nil
}

func parseTypeAnnotations(r *reader, pool *ConstantPool) ([]TypeAnnotation, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]TypeAnnotation, count)
	for i := range out {
		out[i], err = parseTypeAnnotation(r, pool)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
