package analyzer_test

import "bytes"

// classBuilder assembles a minimal one-method class file by hand, the same
// approach classfile's own tests use, so analyzer tests can drive
// analyzer.Analyze through the public classfile.FromReader entry point
// without depending on classfile's unexported fixture helpers.
type classBuilder struct {
	buf  bytes.Buffer
	pool [][]byte
}

func newClassBuilder() *classBuilder {
	b := &classBuilder{}
	b.pool = append(b.pool, nil)
	return b
}

func (b *classBuilder) addUtf8(s string) uint16 {
	var e bytes.Buffer
	e.WriteByte(1) // CONSTANT_Utf8
	e.WriteByte(byte(len(s) >> 8))
	e.WriteByte(byte(len(s)))
	e.WriteString(s)
	b.pool = append(b.pool, e.Bytes())
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addClass(binaryName string) uint16 {
	nameIdx := b.addUtf8(binaryName)
	var e bytes.Buffer
	e.WriteByte(7) // CONSTANT_Class
	e.WriteByte(byte(nameIdx >> 8))
	e.WriteByte(byte(nameIdx))
	b.pool = append(b.pool, e.Bytes())
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) u2(v uint16) { b.buf.WriteByte(byte(v >> 8)); b.buf.WriteByte(byte(v)) }
func (b *classBuilder) u4(v uint32) {
	b.buf.WriteByte(byte(v >> 24))
	b.buf.WriteByte(byte(v >> 16))
	b.buf.WriteByte(byte(v >> 8))
	b.buf.WriteByte(byte(v))
}
func (b *classBuilder) bytes(bs []byte) { b.buf.Write(bs) }

// writeCodeMethod appends a single method_info entry with one Code
// attribute holding exactly code, no exception table or nested attributes.
func (b *classBuilder) writeCodeMethod(flags uint16, name, desc string, maxStack, maxLocals uint16, code []byte) {
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

	b.u2(flags)
	b.u2(nameIdx)
	b.u2(descIdx)
	b.u2(1)
	b.u2(codeAttrName)
	b.u4(uint32(body.Len()))
	b.bytes(body.Bytes())
}

// writeCodeMethodWithHandler is like writeCodeMethod but adds one exception
// table entry covering [startPC, endPC) and dispatching to handlerPC,
// catching catchClassIdx (0 for catch-all).
func (b *classBuilder) writeCodeMethodWithHandler(flags uint16, name, desc string, maxStack, maxLocals uint16, code []byte, startPC, endPC, handlerPC, catchClassIdx uint16) {
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
	wu2(1) // exception_table_length
	wu2(startPC)
	wu2(endPC)
	wu2(handlerPC)
	wu2(catchClassIdx)
	wu2(0) // attributes_count

	b.u2(flags)
	b.u2(nameIdx)
	b.u2(descIdx)
	b.u2(1)
	b.u2(codeAttrName)
	b.u4(uint32(body.Len()))
	b.bytes(body.Bytes())
}

func (b *classBuilder) finish(thisIdx, superIdx uint16) []byte {
	var out bytes.Buffer
	w4 := func(v uint32) {
		out.WriteByte(byte(v >> 24))
		out.WriteByte(byte(v >> 16))
		out.WriteByte(byte(v >> 8))
		out.WriteByte(byte(v))
	}
	w4(0xCAFEBABE)
	out.WriteByte(0)
	out.WriteByte(0) // minor
	out.WriteByte(0)
	out.WriteByte(52) // major

	count := uint16(len(b.pool))
	out.WriteByte(byte(count >> 8))
	out.WriteByte(byte(count))
	for _, e := range b.pool[1:] {
		out.Write(e)
	}

	out.WriteByte(0)
	out.WriteByte(0) // access_flags
	out.WriteByte(byte(thisIdx >> 8))
	out.WriteByte(byte(thisIdx))
	out.WriteByte(byte(superIdx >> 8))
	out.WriteByte(byte(superIdx))
	out.WriteByte(0)
	out.WriteByte(0) // interfaces_count
	out.WriteByte(0)
	out.WriteByte(0) // fields_count

	out.Write(b.buf.Bytes())
	out.WriteByte(0)
	out.WriteByte(0) // attributes_count (class-level)
	return out.Bytes()
}

// oneMethodClass builds a single-class, single-method fixture named "Calc",
// extending java/lang/Object, with one static method holding code.
func oneMethodClass(name, desc string, maxStack, maxLocals uint16, code []byte) []byte {
	b := newClassBuilder()
	this := b.addClass("Calc")
	super := b.addClass("java/lang/Object")
	b.u2(1) // methods_count
	const accPublicStatic = 0x0001 | 0x0008
	b.writeCodeMethod(accPublicStatic, name, desc, maxStack, maxLocals, code)
	return b.finish(this, super)
}

// oneMethodClassWithHandler is oneMethodClass plus a single exception
// handler entry on the method's Code attribute.
func oneMethodClassWithHandler(name, desc string, maxStack, maxLocals uint16, code []byte, startPC, endPC, handlerPC uint16) []byte {
	b := newClassBuilder()
	this := b.addClass("Calc")
	super := b.addClass("java/lang/Object")
	b.u2(1) // methods_count
	const accPublicStatic = 0x0001 | 0x0008
	b.writeCodeMethodWithHandler(accPublicStatic, name, desc, maxStack, maxLocals, code, startPC, endPC, handlerPC, 0)
	return b.finish(this, super)
}
