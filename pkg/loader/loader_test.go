package loader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// minimalClassBytes builds the smallest legal class file: a no-super
// java/lang/Object with an empty everything else, following the teacher's
// style of constructing raw class-file bytes by hand rather than loading an
// external fixture.
func minimalClassBytes(t *testing.T, binaryName string) []byte {
	t.Helper()
	var buf bytes.Buffer
	u2 := func(v uint16) { buf.WriteByte(byte(v >> 8)); buf.WriteByte(byte(v)) }
	u4 := func(v uint32) {
		buf.WriteByte(byte(v >> 24))
		buf.WriteByte(byte(v >> 16))
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	}

	u4(0xCAFEBABE)
	u2(0)  // minor
	u2(52) // major

	u2(3) // constant_pool_count = entry count + 1
	buf.WriteByte(1)
	u2(uint16(len(binaryName)))
	buf.WriteString(binaryName)
	buf.WriteByte(7) // CONSTANT_Class
	u2(1)            // -> utf8 entry above

	u2(0)            // access_flags
	u2(2)            // this_class -> class entry
	u2(0)            // super_class (legal only because this is java/lang/Object)
	u2(0)            // interfaces_count
	u2(0)            // fields_count
	u2(0)            // methods_count
	u2(0)            // attributes_count

	return buf.Bytes()
}

func TestDiscoverDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "com", "example"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Top.class"), minimalClassBytes(t, "java/lang/Object"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "com", "example", "Nested.class"), minimalClassBytes(t, "java/lang/Object"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a class"), 0o644))

	sources, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	require.Equal(t, "Top", sources[0].Name)
	require.Equal(t, "com/example/Nested", sources[1].Name)
}

func TestDiscoverJar(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "app.jar")

	f, err := os.Create(jarPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("Hello.class")
	require.NoError(t, err)
	_, err = w.Write(minimalClassBytes(t, "java/lang/Object"))
	require.NoError(t, err)
	w, err = zw.Create("META-INF/MANIFEST.MF")
	require.NoError(t, err)
	_, err = w.Write([]byte("Manifest-Version: 1.0\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	sources, err := Discover(jarPath)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.Equal(t, "Hello", sources[0].Name)
}

func TestDiscoverJmod(t *testing.T) {
	dir := t.TempDir()
	jmodPath := filepath.Join(dir, "java.base.jmod")

	var payload bytes.Buffer
	zw := zip.NewWriter(&payload)
	w, err := zw.Create("classes/java/lang/Object.class")
	require.NoError(t, err)
	_, err = w.Write(minimalClassBytes(t, "java/lang/Object"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var full bytes.Buffer
	full.WriteString("JM\x01\x00")
	full.Write(payload.Bytes())
	require.NoError(t, os.WriteFile(jmodPath, full.Bytes(), 0o644))

	sources, err := Discover(jmodPath)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.Equal(t, "java/lang/Object", sources[0].Name)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.class")
	require.NoError(t, os.WriteFile(path, minimalClassBytes(t, "java/lang/Object"), 0o644))

	sources, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	cls, err := Load(sources[0])
	require.NoError(t, err)
	require.Equal(t, "java/lang/Object", cls.This.BinaryName)
	require.Nil(t, cls.Super)
}

func TestDiscoverUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	_, err := Discover(path)
	require.Error(t, err)
}
