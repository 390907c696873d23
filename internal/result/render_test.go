package result

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() Set {
	return Set{
		NewRow(
			Field{Name: "id", Value: "1"},
			Field{Name: "name", Value: "Jane <Doe> & Co"},
			Field{Name: "phone_sha256", Value: "40d3f4e02db27d66cf4cfdda506c2c945f115a7955cc8491dda98ce5beabcda0"},
		),
		NewRow(
			Field{Name: "id", Value: "2"},
			Field{Name: "name", Value: ""},
			Field{Name: "street", Value: "Main Street"},
			Field{Name: "matched_col", Value: "street"},
		),
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteText_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSet()))

	newGoldie(t).Assert(t, "two_rows_text", buf.Bytes())
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteJSON_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSet()))

	newGoldie(t).Assert(t, "two_rows_json", buf.Bytes())
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestWriteJSON_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, Set{}))
	assert.Equal(t, "[]", buf.String())
}

func TestWriteJSON_RowWithoutFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Set{{}}))
	assert.Equal(t, "[{}]", buf.String())
}

func TestWriteJSON_Escaping(t *testing.T) {
	set := Set{NewRow(Field{Name: `k"ey`, Value: "a\"b\\c\b\f\n\r\t\x01\x1f<&>"})}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, set))

	assert.Equal(t, `[{"k\"ey":"a\"b\\c\b\f\n\r\t\u0001\u001f<&>"}]`, buf.String())

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "a\"b\\c\b\f\n\r\t\x01\x1f<&>", decoded[0][`k"ey`])
}

func TestWriteJSON_UnicodePassesThrough(t *testing.T) {
	set := Set{NewRow(Field{Name: "city", Value: "Zürich 東京"})}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, set))
	assert.Equal(t, `[{"city":"Zürich 東京"}]`, buf.String())
}

func TestWriteJSON_InvalidUTF8Replaced(t *testing.T) {
	set := Set{NewRow(Field{Name: "note", Value: "a\xffb"})}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, set))
	assert.Equal(t, `[{"note":"a\ufffdb"}]`, buf.String())
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestWriteText_InvalidUTF8Raw(t *testing.T) {
	set := Set{NewRow(Field{Name: "note", Value: "a\xffb"})}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, set))
	assert.Equal(t, "---- Row ----\nnote: a\xffb\n", buf.String())
}

func TestSetMarshalJSON_UsedByEncodingJSON(t *testing.T) {
	data, err := json.Marshal(sampleSet())
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "street", decoded[1]["matched_col"])
}

func TestWriteJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static")

	path, err := WriteJSONFile(dir, "foo bar?", sampleSet())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo_bar_.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be renamed away")
	assert.Equal(t, "foo_bar_.json", entries[0].Name())
}

func TestWriteJSONFile_EmptySetOverwrites(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteJSONFile(dir, "q", sampleSet())
	require.NoError(t, err)

	path, err := WriteJSONFile(dir, "q", nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteJSONFile_DirectoryIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "static")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := WriteJSONFile(blocker, "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}
