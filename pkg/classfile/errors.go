package classfile

import "fmt"

// Kind identifies the specific failure mode of a ParseError, mirroring the
// JVMS-chapter-4 error taxonomy one-for-one.
type Kind int

const (
	KindReadFail Kind = iota
	KindNotAClassFile
	KindMalformedClassFile
	KindMismatchedConstantPoolEntryType
	KindBadConstantPoolIndex
	KindUnknownAttribute
	KindUnexpectedAttribute
	KindInvalidAttributeLength
	KindInvalidElementValueTag
	KindInvalidTargetType
	KindInvalidTypePathKind
	KindUnknownStackMapFrameType
	KindInvalidVerificationTypeInfoTag
	KindUnexpectedOpCode
	KindInvalidJumpTarget
	KindUnknownFlags
	KindInvalidDescriptor
	KindUnexpectedData
	KindUnexpectedConstantPoolTag
)

// ParseError is the single error sum returned by this package, per the
// propagation policy: errors originate locally and are returned unmodified.
type ParseError struct {
	Kind Kind

	// Context fields, populated depending on Kind.
	Expected     string
	Found        string
	Index        uint16
	Name         string
	Site         string
	Byte         uint8
	Bits         uint16
	Text         string
	Reason       string
	ExpectedLen  uint32
	ActualLen    uint32
	Wrapped      error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindReadFail:
		return fmt.Sprintf("reading from byte source: %v", e.Wrapped)
	case KindNotAClassFile:
		return "the buffer does not contain a Java class file"
	case KindMalformedClassFile:
		return fmt.Sprintf("malformed class file: %s", e.Reason)
	case KindMismatchedConstantPoolEntryType:
		return fmt.Sprintf("mismatched constant pool entry, expected %s, but found %s", e.Expected, e.Found)
	case KindBadConstantPoolIndex:
		return fmt.Sprintf("cannot find entry #%d in the constant pool", e.Index)
	case KindUnknownAttribute:
		return fmt.Sprintf("unknown attribute: %s", e.Name)
	case KindUnexpectedAttribute:
		return fmt.Sprintf("unexpected attribute %s in %s", e.Name, e.Site)
	case KindInvalidAttributeLength:
		return fmt.Sprintf("invalid attribute length, expected %d but was %d", e.ExpectedLen, e.ActualLen)
	case KindInvalidElementValueTag:
		return fmt.Sprintf("invalid element value tag %q", rune(e.Byte))
	case KindInvalidTargetType:
		return fmt.Sprintf("invalid target type 0x%x", e.Byte)
	case KindInvalidTypePathKind:
		return "invalid type path kind"
	case KindUnknownStackMapFrameType:
		return fmt.Sprintf("unknown stack map frame type %d", e.Byte)
	case KindInvalidVerificationTypeInfoTag:
		return fmt.Sprintf("invalid verification type info tag %d", e.Byte)
	case KindUnexpectedOpCode:
		return fmt.Sprintf("unexpected opcode 0x%x", e.Byte)
	case KindInvalidJumpTarget:
		return "invalid jump target"
	case KindUnknownFlags:
		return fmt.Sprintf("unknown access flag bits 0x%x on %s", e.Bits, e.Site)
	case KindInvalidDescriptor:
		return fmt.Sprintf("invalid descriptor %q", e.Text)
	case KindUnexpectedData:
		return "unexpected data at the end of the file"
	case KindUnexpectedConstantPoolTag:
		return fmt.Sprintf("unexpected constant pool tag %d", e.Byte)
	default:
		return "unknown class file parsing error"
	}
}

func (e *ParseError) Unwrap() error { return e.Wrapped }

func errReadFail(err error) error { return &ParseError{Kind: KindReadFail, Wrapped: err} }

func errNotAClassFile() error { return &ParseError{Kind: KindNotAClassFile} }

func errMalformed(reason string) error {
	return &ParseError{Kind: KindMalformedClassFile, Reason: reason}
}

func errMalformedf(format string, args ...any) error {
	return &ParseError{Kind: KindMalformedClassFile, Reason: fmt.Sprintf(format, args...)}
}

func errMismatchedTag(expected, found string) error {
	return &ParseError{Kind: KindMismatchedConstantPoolEntryType, Expected: expected, Found: found}
}

func errBadIndex(index uint16) error {
	return &ParseError{Kind: KindBadConstantPoolIndex, Index: index}
}

func errUnknownAttribute(name string) error {
	return &ParseError{Kind: KindUnknownAttribute, Name: name}
}

func errUnexpectedAttribute(name, site string) error {
	return &ParseError{Kind: KindUnexpectedAttribute, Name: name, Site: site}
}

func errInvalidAttributeLength(expected, actual uint32) error {
	return &ParseError{Kind: KindInvalidAttributeLength, ExpectedLen: expected, ActualLen: actual}
}

func errInvalidElementValueTag(tag byte) error {
	return &ParseError{Kind: KindInvalidElementValueTag, Byte: tag}
}

func errInvalidTargetType(b byte) error {
	return &ParseError{Kind: KindInvalidTargetType, Byte: b}
}

func errInvalidTypePathKind() error { return &ParseError{Kind: KindInvalidTypePathKind} }

func errUnknownStackMapFrameType(b byte) error {
	return &ParseError{Kind: KindUnknownStackMapFrameType, Byte: b}
}

func errInvalidVerificationTypeInfoTag(b byte) error {
	return &ParseError{Kind: KindInvalidVerificationTypeInfoTag, Byte: b}
}

func errUnexpectedOpCode(b byte) error {
	return &ParseError{Kind: KindUnexpectedOpCode, Byte: b}
}

func errInvalidJumpTarget() error { return &ParseError{Kind: KindInvalidJumpTarget} }

func errUnknownFlags(bits uint16, site string) error {
	return &ParseError{Kind: KindUnknownFlags, Bits: bits, Site: site}
}

func errInvalidDescriptor(text string) error {
	return &ParseError{Kind: KindInvalidDescriptor, Text: text}
}

func errUnexpectedData() error { return &ParseError{Kind: KindUnexpectedData} }

func errUnexpectedConstantPoolTag(tag uint8) error {
	return &ParseError{Kind: KindUnexpectedConstantPoolTag, Byte: tag}
}
