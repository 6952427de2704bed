package ordtx

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/libsv/go-bt/v2/bscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInscriptionASM(t *testing.T) {
	k := newTestKey(t, 1)
	lockASM, err := k.lock.ToASM()
	require.NoError(t, err)

	asm, err := InscriptionASM(k.lock, []byte("hello world"), "text/plain", nil)
	require.NoError(t, err)

	want := lockASM + " OP_0 OP_IF 6f7264 OP_1 " + hexOf("text/plain") + " OP_0 " + hexOf("hello world") + " OP_ENDIF"
	assert.Equal(t, want, asm)
}

func TestBuildInscriptionLayout(t *testing.T) {
	k := newTestKey(t, 1)
	body := []byte("<svg>ordinal</svg>")

	script, err := BuildInscription(k.lock, body, "image/svg+xml", nil)
	require.NoError(t, err)

	parts, err := bscript.DecodeParts(*script)
	require.NoError(t, err)
	lockParts, err := bscript.DecodeParts(*k.lock)
	require.NoError(t, err)

	require.Len(t, parts, len(lockParts)+8)
	assert.Equal(t, lockParts, parts[:len(lockParts)])

	env := parts[len(lockParts):]
	assert.Equal(t, []byte{bscript.Op0}, env[0])
	assert.Equal(t, []byte{bscript.OpIF}, env[1])
	assert.Equal(t, []byte("ord"), env[2])
	assert.Equal(t, []byte{bscript.Op1}, env[3])
	assert.Equal(t, []byte("image/svg+xml"), env[4])
	assert.Equal(t, []byte{bscript.Op0}, env[5])
	assert.Equal(t, body, env[6])
	assert.Equal(t, []byte{bscript.OpENDIF}, env[7])
}

func TestBuildInscriptionLargeBody(t *testing.T) {
	k := newTestKey(t, 1)
	body := []byte(strings.Repeat("x", 70000))

	script, err := BuildInscription(k.lock, body, "text/plain", nil)
	require.NoError(t, err)

	ins, _ := ParseInscription(*script)
	require.NotNil(t, ins)
	assert.Equal(t, body, ins.Body)
}

func TestBuildInscriptionMissingData(t *testing.T) {
	k := newTestKey(t, 1)

	_, err := BuildInscription(k.lock, nil, "text/plain", nil)
	assert.ErrorIs(t, err, ErrMissingData)

	_, err = BuildInscription(k.lock, []byte("x"), "", nil)
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestInscriptionMetadata(t *testing.T) {
	k := newTestKey(t, 1)
	segment := " OP_RETURN " + hexOf(MapPrefix) + " " + hexOf("SET")

	tests := []struct {
		name string
		md   *Metadata
		want string
	}{
		{
			name: "app type and extra key",
			md:   MetadataFromPairs("app", "test", "type", "ord", "foo", "bar"),
			want: segment + " " + hexOf("app") + " " + hexOf("test") + " " + hexOf("type") + " " + hexOf("ord") + " " + hexOf("foo") + " " + hexOf("bar"),
		},
		{
			name: "cmd is never emitted",
			md:   MetadataFromPairs("cmd", "SET", "app", "test", "type", "ord", "foo", "bar"),
			want: segment + " " + hexOf("app") + " " + hexOf("test") + " " + hexOf("type") + " " + hexOf("ord") + " " + hexOf("foo") + " " + hexOf("bar"),
		},
		{
			name: "empty value pushes OP_0",
			md:   MetadataFromPairs("app", "test", "type", "ord", "note", ""),
			want: segment + " " + hexOf("app") + " " + hexOf("test") + " " + hexOf("type") + " " + hexOf("ord") + " " + hexOf("note") + " OP_0",
		},
		{
			name: "missing type",
			md:   MetadataFromPairs("app", "test", "foo", "bar"),
			want: "",
		},
		{
			name: "missing app",
			md:   MetadataFromPairs("type", "ord"),
			want: "",
		},
		{
			name: "empty metadata",
			md:   NewMetadata(),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm, err := InscriptionASM(k.lock, []byte("hi there"), "text/plain", tt.md)
			require.NoError(t, err)

			i := strings.Index(asm, " OP_ENDIF")
			require.NotEqual(t, -1, i)
			assert.Equal(t, tt.want, asm[i+len(" OP_ENDIF"):])
			assert.Equal(t, strings.Count(asm, "OP_RETURN"), strings.Count(tt.want, "OP_RETURN"))
			assert.NotContains(t, asm, hexOf("cmd"))
		})
	}
}

func TestParseInscription(t *testing.T) {
	k := newTestKey(t, 1)
	md := MetadataFromPairs("app", "ordtx", "type", "ord", "name", "pic", "cmd", "SET")

	script, err := BuildInscription(k.lock, []byte{0x89, 0x50, 0x4e, 0x47}, "image/png", md)
	require.NoError(t, err)

	ins, parsed := ParseInscription(*script)
	require.NotNil(t, ins)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, ins.Body)
	assert.Equal(t, "image/png", ins.Type)

	require.NotNil(t, parsed)
	assert.Equal(t, 3, parsed.Len())
	assert.Equal(t, "ordtx", parsed.Get("app"))
	assert.Equal(t, "pic", parsed.Get("name"))
	assert.Equal(t, "", parsed.Get("cmd"))
}

func TestParseInscriptionNone(t *testing.T) {
	k := newTestKey(t, 1)

	ins, md := ParseInscription(*k.lock)
	assert.Nil(t, ins)
	assert.Nil(t, md)

	ins, md = ParseInscription(PATTERN)
	assert.Nil(t, ins)
	assert.Nil(t, md)
}

func TestPatternBytes(t *testing.T) {
	assert.Equal(t, "0063036f7264", hex.EncodeToString(PATTERN))

	k := newTestKey(t, 1)
	s, err := BuildInscription(k.lock, []byte("x"), "text/plain", nil)
	require.NoError(t, err)
	assert.Equal(t, len(*k.lock), bytes.Index(*s, PATTERN))
}
