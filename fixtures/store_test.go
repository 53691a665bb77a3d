package fixtures

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAddsExtension(t *testing.T) {
	s := NewStore(fstest.MapFS{"a.json": {Data: []byte(`{"x":1}`)}})
	data, err := s.Load("a")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))

	data2, err := s.Load("a.json")
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestLoadIsIdempotent(t *testing.T) {
	fsys := fstest.MapFS{"a.json": {Data: []byte(`{"x":1}`)}}
	s := NewStore(fsys)
	first, err := s.Load("a")
	require.NoError(t, err)

	fsys["a.json"] = &fstest.MapFile{Data: []byte(`{"x":2}`)}
	first[0] = 'X'
	second, err := s.Load("a")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(second))
}

func TestLoadNotFound(t *testing.T) {
	s := NewStore(fstest.MapFS{})
	_, err := s.Load("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFixtureNotFound))
	assert.Contains(t, err.Error(), "missing.json")
}

func TestLoadJSON(t *testing.T) {
	s := NewStore(fstest.MapFS{
		"good.json": {Data: []byte(`{"data":{"id":2},"page":1}`)},
		"bad.json":  {Data: []byte(`{"data":`)},
	})
	value, err := s.LoadJSON("good")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"data", "page"}, value.Keys())
	assert.Equal(t, 2, value.GetByKey("data").GetByKey("id").IntValue())

	_, err = s.LoadJSON("bad")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	s := NewStore(fstest.MapFS{"p.json": {Data: []byte(`{"id":5,"password":"secret"}`)}})
	var p person
	require.NoError(t, s.Decode("p", NewExposeCodec(), &p))
	assert.Equal(t, person{ID: 5}, p)

	assert.Error(t, s.Decode("nope", NewExposeCodec(), &p))
}

func TestDefaultStoreHasBuiltInFixtures(t *testing.T) {
	s := DefaultStore()
	for _, name := range []string{"list_users_page2", "single_resource_2"} {
		value, err := s.LoadJSON(name)
		require.NoError(t, err, name)
		assert.False(t, value.IsNull(), name)
	}
	value, _ := s.LoadJSON("list_users_page2")
	assert.Equal(t, 2, value.GetByKey("page").IntValue())
	assert.Equal(t, 6, value.GetByKey("data").Count())
}

func TestNewDirStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.json"), []byte(`[]`), 0o600))

	s, err := NewDirStore(dir)
	require.NoError(t, err)
	data, err := s.Load("x")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = NewDirStore(filepath.Join(dir, "nonexistent"))
	assert.Error(t, err)
	_, err = NewDirStore(filepath.Join(dir, "x.json"))
	assert.Error(t, err)
}
