package classfile

import "bytes"

// classBuilder assembles raw class file bytes by hand, following the same
// approach the corpus's own class-file parsers use for tests: build the
// exact byte stream a compiler would emit, rather than loading an external
// .class fixture (no JDK is available to this test run).
type classBuilder struct {
	buf  bytes.Buffer
	pool [][]byte // constant pool entries, 1-indexed (pool[0] unused)
}

func newClassBuilder() *classBuilder {
	b := &classBuilder{}
	b.pool = append(b.pool, nil) // index 0 placeholder
	return b
}

func (b *classBuilder) u1(v uint8)  { b.buf.WriteByte(v) }
func (b *classBuilder) u2(v uint16) { b.buf.WriteByte(byte(v >> 8)); b.buf.WriteByte(byte(v)) }
func (b *classBuilder) u4(v uint32) {
	b.buf.WriteByte(byte(v >> 24))
	b.buf.WriteByte(byte(v >> 16))
	b.buf.WriteByte(byte(v >> 8))
	b.buf.WriteByte(byte(v))
}
func (b *classBuilder) bytes(bs []byte) { b.buf.Write(bs) }

// addUtf8 interns s as a CONSTANT_Utf8 entry and returns its pool index.
func (b *classBuilder) addUtf8(s string) uint16 {
	var e bytes.Buffer
	e.WriteByte(tagUtf8)
	e.WriteByte(byte(len(s) >> 8))
	e.WriteByte(byte(len(s)))
	e.WriteString(s)
	b.pool = append(b.pool, e.Bytes())
	return uint16(len(b.pool) - 1)
}

// addClass interns a CONSTANT_Class entry naming binaryName, returning its
// pool index.
func (b *classBuilder) addClass(binaryName string) uint16 {
	nameIdx := b.addUtf8(binaryName)
	var e bytes.Buffer
	e.WriteByte(tagClass)
	e.WriteByte(byte(nameIdx >> 8))
	e.WriteByte(byte(nameIdx))
	b.pool = append(b.pool, e.Bytes())
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addNameAndType(name, desc string) uint16 {
	nameIdx := b.addUtf8(name)
	descIdx := b.addUtf8(desc)
	var e bytes.Buffer
	e.WriteByte(tagNameAndType)
	e.WriteByte(byte(nameIdx >> 8))
	e.WriteByte(byte(nameIdx))
	e.WriteByte(byte(descIdx >> 8))
	e.WriteByte(byte(descIdx))
	b.pool = append(b.pool, e.Bytes())
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addMethodref(classIdx, natIdx uint16) uint16 {
	var e bytes.Buffer
	e.WriteByte(tagMethodref)
	e.WriteByte(byte(classIdx >> 8))
	e.WriteByte(byte(classIdx))
	e.WriteByte(byte(natIdx >> 8))
	e.WriteByte(byte(natIdx))
	b.pool = append(b.pool, e.Bytes())
	return uint16(len(b.pool) - 1)
}

// finish assembles the full class file: magic/version, the interned
// constant pool, then whatever body bytes have already been written via u1/
// u2/u4/bytes calls on b.
func (b *classBuilder) finish(major, minor uint16, flags uint16, thisIdx, superIdx uint16) []byte {
	var out bytes.Buffer
	w := func(v uint32) {
		out.WriteByte(byte(v >> 24))
		out.WriteByte(byte(v >> 16))
		out.WriteByte(byte(v >> 8))
		out.WriteByte(byte(v))
	}
	w(classMagic)
	out.WriteByte(byte(minor >> 8))
	out.WriteByte(byte(minor))
	out.WriteByte(byte(major >> 8))
	out.WriteByte(byte(major))

	count := uint16(len(b.pool))
	out.WriteByte(byte(count >> 8))
	out.WriteByte(byte(count))
	for _, e := range b.pool[1:] {
		out.Write(e)
	}

	out.WriteByte(byte(flags >> 8))
	out.WriteByte(byte(flags))
	out.WriteByte(byte(thisIdx >> 8))
	out.WriteByte(byte(thisIdx))
	out.WriteByte(byte(superIdx >> 8))
	out.WriteByte(byte(superIdx))

	out.Write(b.buf.Bytes())
	return out.Bytes()
}

// minimalObjectClass returns the smallest legal class file: java/lang/Object
// itself, with no fields, methods, interfaces, or attributes.
func minimalObjectClass() []byte {
	b := newClassBuilder()
	this := b.addClass("java/lang/Object")
	b.u2(0) // interfaces_count
	b.u2(0) // fields_count
	b.u2(0) // methods_count
	b.u2(0) // attributes_count
	return b.finish(52, 0, 0, this, 0)
}

// writeCodeMethod appends one method_info entry with a Code attribute
// holding exactly code, no exception table, and no nested attributes.
func (b *classBuilder) writeCodeMethod(flags AccessFlags, name, desc string, maxStack, maxLocals uint16, code []byte) {
	nameIdx := b.addUtf8(name)
	descIdx := b.addUtf8(desc)
	codeAttrName := b.addUtf8("Code")

	var body bytes.Buffer
	wu2 := func(v uint16) { body.WriteByte(byte(v >> 8)); body.WriteByte(byte(v)) }
	wu4 := func(v uint32) {
		body.WriteByte(byte(v >> 24))
		body.WriteByte(byte(v >> 16))
		body.WriteByte(byte(v >> 8))
		body.WriteByte(byte(v))
	}
	wu2(maxStack)
	wu2(maxLocals)
	wu4(uint32(len(code)))
	body.Write(code)
	wu2(0) // exception_table_length
	wu2(0) // attributes_count

	b.u2(uint16(flags))
	b.u2(nameIdx)
	b.u2(descIdx)
	b.u2(1) // attributes_count (Code only)
	b.u2(codeAttrName)
	b.u4(uint32(body.Len()))
	b.bytes(body.Bytes())
}
