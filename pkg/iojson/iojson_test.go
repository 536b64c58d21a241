package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]int{"id": 1}))
	require.NoError(t, WriteLine(&buf, map[string]int{"id": 2}))

	assert.Equal(t, "{\"id\":1}\n{\"id\":2}\n", buf.String())
}

func TestWriteLine_MarshalError(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteLine(&buf, make(chan int)))
	assert.Empty(t, buf.String())
}

func TestWriteWith_Indents(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"a": 1}))

	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.False(t, IsTerminal(f))
}

func TestFileReader_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":3}]`), 0o644))

	fr := &FileReader[[]map[string]int]{path: path}
	got, err := fr.Read(strings.NewReader(`"ignored"`))
	require.NoError(t, err)
	assert.Equal(t, []map[string]int{{"id": 3}}, got)
}

func TestFileReader_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	fr := &FileReader[[]int]{path: path}
	_, err := fr.Read(nil)
	assert.ErrorContains(t, err, "decode JSON")
}

func TestFileReader_Stdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		fr := &FileReader[[]int]{path: path}
		got, err := fr.Read(strings.NewReader("[1, 2]\n"))
		require.NoError(t, err, "path %q", path)
		assert.Equal(t, []int{1, 2}, got)
	}
}

func TestFileReader_EmptyStdin(t *testing.T) {
	fr := &FileReader[[]int]{}
	_, err := fr.Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := &FileReader[[]int]{path: filepath.Join(t.TempDir(), "nope.json")}
	_, err := fr.Read(nil)
	assert.ErrorContains(t, err, "nope.json")
}
