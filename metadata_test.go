package ordtx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(md *Metadata) (out []string) {
	md.Each(func(k, _ string) {
		out = append(out, k)
	})
	return
}

func TestMetadataOrder(t *testing.T) {
	md := NewMetadata().Set("type", "ord").Set("app", "x").Set("z", "1").Set("a", "2")
	assert.Equal(t, []string{"type", "app", "z", "a"}, keys(md))

	md.Set("app", "y")
	assert.Equal(t, []string{"type", "app", "z", "a"}, keys(md))
	assert.Equal(t, "y", md.Get("app"))
}

func TestMetadataValid(t *testing.T) {
	var nilMd *Metadata
	assert.False(t, nilMd.Valid())
	assert.Equal(t, 0, nilMd.Len())
	assert.Equal(t, "", nilMd.Get("app"))

	assert.False(t, MetadataFromPairs("app", "x").Valid())
	assert.False(t, MetadataFromPairs("app", "x", "type", "").Valid())
	assert.True(t, MetadataFromPairs("app", "x", "type", "y").Valid())
}

func TestMetadataSetNil(t *testing.T) {
	var md *Metadata
	md = md.Set("app", "x").Set("type", "y")
	require.NotNil(t, md)
	assert.True(t, md.Valid())
	assert.Equal(t, []string{"app", "type"}, keys(md))
}

func TestMetadataFromPairsOdd(t *testing.T) {
	md := MetadataFromPairs("app", "x", "dangling")
	assert.Equal(t, 2, md.Len())
	assert.Equal(t, "", md.Get("dangling"))
}

func TestMetadataJSON(t *testing.T) {
	var md Metadata
	err := json.Unmarshal([]byte(`{"type":"ord","app":"x","z":"1","n":5,"a":"2"}`), &md)
	require.NoError(t, err)

	assert.Equal(t, []string{"type", "app", "z", "n", "a"}, keys(&md))
	assert.Equal(t, "5", md.Get("n"))

	out, err := json.Marshal(&md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ord","app":"x","z":"1","n":"5","a":"2"}`, string(out))

	out, err = json.Marshal((*Metadata)(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestMetadataInStruct(t *testing.T) {
	var req struct {
		Metadata *Metadata `json:"metadata"`
	}
	err := json.Unmarshal([]byte(`{"metadata":{"app":"a","type":"t","cmd":"SET","k":"v"}}`), &req)
	require.NoError(t, err)
	require.NotNil(t, req.Metadata)
	assert.Equal(t, []string{"app", "type", "cmd", "k"}, keys(req.Metadata))
}

func TestMetadataMAP(t *testing.T) {
	m := MetadataFromPairs("app", "a", "type", "t", "cmd", "SET").MAP()
	assert.Equal(t, "a", m["app"])
	assert.Equal(t, "SET", m["cmd"])
	assert.Len(t, m, 3)
}
