package classfile

import "strings"

// PrimitiveKind enumerates the JVMS primitive descriptor characters.
type PrimitiveKind int

const (
	PrimByte PrimitiveKind = iota
	PrimChar
	PrimDouble
	PrimFloat
	PrimInt
	PrimLong
	PrimShort
	PrimBoolean
)

// FieldType is a parsed field/array/method-parameter descriptor type.
type FieldType struct {
	// exactly one of the following describes this type
	Primitive  *PrimitiveKind
	ObjectName string     // binary name, set when this is an object type
	Array      *FieldType // element type, set when this is an array type
}

func (t FieldType) String() string {
	switch {
	case t.Primitive != nil:
		return primitiveDescriptorChar(*t.Primitive)
	case t.Array != nil:
		return "[" + t.Array.String()
	default:
		return "L" + t.ObjectName + ";"
	}
}

func primitiveDescriptorChar(k PrimitiveKind) string {
	switch k {
	case PrimByte:
		return "B"
	case PrimChar:
		return "C"
	case PrimDouble:
		return "D"
	case PrimFloat:
		return "F"
	case PrimInt:
		return "I"
	case PrimLong:
		return "J"
	case PrimShort:
		return "S"
	case PrimBoolean:
		return "Z"
	default:
		return "?"
	}
}

// ReturnType is a method return type: either void or a FieldType.
type ReturnType struct {
	Void  bool
	Value FieldType
}

// MethodDescriptor is a parsed "(ParamTypes)ReturnType" descriptor.
type MethodDescriptor struct {
	Parameters []FieldType
	Return     ReturnType
}

// parseFieldDescriptor parses a single field type descriptor, requiring it
// to consume the string exactly.
func parseFieldDescriptor(s string) (FieldType, error) {
	ft, rest, err := parseFieldType(s)
	if err != nil {
		return FieldType{}, err
	}
	if rest != "" {
		return FieldType{}, errInvalidDescriptor(s)
	}
	return ft, nil
}

// parseFieldType parses one field type prefix of s and returns the
// remainder.
func parseFieldType(s string) (FieldType, string, error) {
	if s == "" {
		return FieldType{}, "", errInvalidDescriptor(s)
	}
	switch s[0] {
	case 'B':
		k := PrimByte
		return FieldType{Primitive: &k}, s[1:], nil
	case 'C':
		k := PrimChar
		return FieldType{Primitive: &k}, s[1:], nil
	case 'D':
		k := PrimDouble
		return FieldType{Primitive: &k}, s[1:], nil
	case 'F':
		k := PrimFloat
		return FieldType{Primitive: &k}, s[1:], nil
	case 'I':
		k := PrimInt
		return FieldType{Primitive: &k}, s[1:], nil
	case 'J':
		k := PrimLong
		return FieldType{Primitive: &k}, s[1:], nil
	case 'S':
		k := PrimShort
		return FieldType{Primitive: &k}, s[1:], nil
	case 'Z':
		k := PrimBoolean
		return FieldType{Primitive: &k}, s[1:], nil
	case 'L':
		idx := strings.IndexByte(s, ';')
		if idx < 0 {
			return FieldType{}, "", errInvalidDescriptor(s)
		}
		return FieldType{ObjectName: s[1:idx]}, s[idx+1:], nil
	case '[':
		elem, rest, err := parseFieldType(s[1:])
		if err != nil {
			return FieldType{}, "", err
		}
		return FieldType{Array: &elem}, rest, nil
	default:
		return FieldType{}, "", errInvalidDescriptor(s)
	}
}

// parseMethodDescriptor parses a "(ParamTypes)ReturnType" descriptor.
func parseMethodDescriptor(s string) (MethodDescriptor, error) {
	if len(s) == 0 || s[0] != '(' {
		return MethodDescriptor{}, errInvalidDescriptor(s)
	}
	rest := s[1:]
	var params []FieldType
	for {
		if rest == "" {
			return MethodDescriptor{}, errInvalidDescriptor(s)
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}
		ft, next, err := parseFieldType(rest)
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, ft)
		rest = next
	}
	if rest == "V" {
		return MethodDescriptor{Parameters: params, Return: ReturnType{Void: true}}, nil
	}
	ret, tail, err := parseFieldType(rest)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if tail != "" {
		return MethodDescriptor{}, errInvalidDescriptor(s)
	}
	return MethodDescriptor{Parameters: params, Return: ReturnType{Value: ret}}, nil
}

func (d MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range d.Parameters {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	if d.Return.Void {
		sb.WriteByte('V')
	} else {
		sb.WriteString(d.Return.Value.String())
	}
	return sb.String()
}

// category reports how many local variable slots / stack slots a value of
// this type occupies: 2 for long/double, 1 otherwise.
func (t FieldType) category() int {
	if t.Primitive != nil && (*t.Primitive == PrimLong || *t.Primitive == PrimDouble) {
		return 2
	}
	return 1
}
