package ordtx

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	magic "github.com/bitcoinschema/go-map"
	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/pkg/errors"
)

// PATTERN is OP_0 OP_IF PUSH3 "ord", the start of every envelope.
var PATTERN = []byte{bscript.Op0, bscript.OpIF, bscript.OpDATA3, 'o', 'r', 'd'}

type Inscription struct {
	Body []byte `json:"body"`
	Type string `json:"type"`
}

// InscriptionASM returns the assembly for lock followed by the ord envelope
// carrying body, plus a MAP SET segment when md has both app and type.
func InscriptionASM(lock *bscript.Script, body []byte, contentType string, md *Metadata) (string, error) {
	if len(body) == 0 || contentType == "" {
		return "", ErrMissingData
	}

	var asm []string
	if lock != nil && len(*lock) > 0 {
		lockASM, err := lock.ToASM()
		if err != nil {
			return "", errors.Wrap(err, "destination script")
		}
		asm = append(asm, lockASM)
	}
	asm = append(asm,
		"OP_0", "OP_IF",
		pushHex([]byte("ord")),
		"OP_1", pushHex([]byte(contentType)),
		"OP_0", pushHex(body),
		"OP_ENDIF",
	)

	// MAP requires app and type
	if md.Valid() {
		asm = append(asm, "OP_RETURN", pushHex([]byte(MapPrefix)), pushHex([]byte(MapCmdSet)))
		md.Each(func(key, value string) {
			if key == MapKeyCmd {
				return
			}
			asm = append(asm, pushHex([]byte(key)), pushHex([]byte(value)))
		})
	}

	return strings.Join(asm, " "), nil
}

// BuildInscription compiles the envelope produced by InscriptionASM.
func BuildInscription(lock *bscript.Script, body []byte, contentType string, md *Metadata) (*bscript.Script, error) {
	asm, err := InscriptionASM(lock, body, contentType, md)
	if err != nil {
		return nil, err
	}
	s, err := bscript.NewFromASM(asm)
	if err != nil {
		return nil, errors.Wrap(err, "compile inscription")
	}
	return s, nil
}

func pushHex(b []byte) string {
	if len(b) == 0 {
		return "OP_0"
	}
	return hex.EncodeToString(b)
}

// ParseInscription extracts the envelope from a locking script. It returns a
// nil inscription when the script carries none. Metadata is nil unless a MAP
// SET segment follows the envelope.
func ParseInscription(lock []byte) (ins *Inscription, md *Metadata) {
	idx := bytes.Index(lock, PATTERN)
	if idx == -1 {
		return
	}

	idx += len(PATTERN)
	if idx >= len(lock) {
		return
	}

	parts, err := bscript.DecodeParts(lock[idx:])
	if err != nil {
		return
	}

	ins = &Inscription{}
	for i := 0; i < len(parts); i++ {
		op := parts[i]
		if len(op) != 1 {
			break
		}
		switch op[0] {
		case bscript.OpENDIF:
			md = parseMap(parts[i+1:])
			return
		case bscript.Op0:
			if i+1 < len(parts) {
				ins.Body = parts[i+1]
			}
		case bscript.Op1:
			if i+1 < len(parts) {
				ins.Type = string(parts[i+1])
			}
		}
		i++
	}
	return
}

func parseMap(parts [][]byte) *Metadata {
	if len(parts) < 3 || !bytes.Equal(parts[0], []byte{bscript.OpRETURN}) {
		return nil
	}
	if string(parts[1]) != MapPrefix || string(parts[2]) != MapCmdSet {
		return nil
	}
	md := NewMetadata()
	for i := 3; i+1 < len(parts); i += 2 {
		md.Set(partString(parts[i]), partString(parts[i+1]))
	}
	return md
}

func partString(p []byte) string {
	if len(p) == 1 && p[0] == bscript.Op0 {
		return ""
	}
	return string(p)
}

type File struct {
	Hash ByteString `json:"hash"`
	Size uint32     `json:"size"`
	Type string     `json:"type"`
}

type InscriptionOutput struct {
	Vout        uint32       `json:"vout"`
	Satoshis    uint64       `json:"satoshis"`
	File        File         `json:"file"`
	Inscription *Inscription `json:"-"`
	Metadata    *Metadata    `json:"-"`
	Map         magic.MAP    `json:"map,omitempty"`
}

// ParseTx lists every output of tx that carries an inscription.
func ParseTx(tx *bt.Tx) (outs []*InscriptionOutput) {
	for vout, txout := range tx.Outputs {
		if txout.LockingScript == nil {
			continue
		}
		ins, md := ParseInscription(*txout.LockingScript)
		if ins == nil {
			continue
		}

		hash := sha256.Sum256(ins.Body)
		var m magic.MAP
		if md != nil {
			m = md.MAP()
		}
		outs = append(outs, &InscriptionOutput{
			Vout:     uint32(vout),
			Satoshis: txout.Satoshis,
			File: File{
				Hash: hash[:],
				Size: uint32(len(ins.Body)),
				Type: ins.Type,
			},
			Inscription: ins,
			Metadata:    md,
			Map:         m,
		})
	}
	return
}
