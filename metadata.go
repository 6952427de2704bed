package ordtx

import (
	"fmt"

	magic "github.com/bitcoinschema/go-map"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

const (
	MapPrefix = magic.Prefix
	MapCmdSet = "SET"
	MapKeyCmd = "cmd"

	MapKeyApp  = "app"
	MapKeyType = "type"
)

// Metadata is an ordered set of MAP key/value pairs. Entries keep their
// insertion order, and JSON decoding keeps document order. A nil *Metadata
// is an empty map.
type Metadata struct {
	m *linkedhashmap.Map
}

func NewMetadata() *Metadata {
	return &Metadata{m: linkedhashmap.New()}
}

// MetadataFromPairs builds Metadata from alternating keys and values.
// A trailing key without a value is stored with an empty value.
func MetadataFromPairs(kv ...string) *Metadata {
	md := NewMetadata()
	for i := 0; i < len(kv); i += 2 {
		var v string
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		md.Set(kv[i], v)
	}
	return md
}

// Set stores value under key. Re-setting an existing key keeps its position.
// On a nil receiver it allocates and returns new Metadata.
func (md *Metadata) Set(key, value string) *Metadata {
	if md == nil {
		md = NewMetadata()
	}
	if md.m == nil {
		md.m = linkedhashmap.New()
	}
	md.m.Put(key, value)
	return md
}

func (md *Metadata) Get(key string) string {
	if md == nil || md.m == nil {
		return ""
	}
	v, ok := md.m.Get(key)
	if !ok {
		return ""
	}
	return stringify(v)
}

func (md *Metadata) Len() int {
	if md == nil || md.m == nil {
		return 0
	}
	return md.m.Size()
}

// Each calls fn for every entry in order.
func (md *Metadata) Each(fn func(key, value string)) {
	if md == nil || md.m == nil {
		return
	}
	md.m.Each(func(k, v interface{}) {
		fn(stringify(k), stringify(v))
	})
}

// Valid reports whether the required app and type keys are both set.
func (md *Metadata) Valid() bool {
	return md.Get(MapKeyApp) != "" && md.Get(MapKeyType) != ""
}

// MAP converts to the bitcoinschema representation, cmd included.
func (md *Metadata) MAP() magic.MAP {
	out := magic.MAP{}
	md.Each(func(k, v string) {
		out[k] = v
	})
	return out
}

func (md *Metadata) MarshalJSON() ([]byte, error) {
	if md == nil || md.m == nil {
		return []byte("{}"), nil
	}
	return md.m.ToJSON()
}

func (md *Metadata) UnmarshalJSON(data []byte) error {
	m := linkedhashmap.New()
	if err := m.FromJSON(data); err != nil {
		return err
	}
	md.m = linkedhashmap.New()
	m.Each(func(k, v interface{}) {
		md.m.Put(stringify(k), stringify(v))
	})
	return nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
