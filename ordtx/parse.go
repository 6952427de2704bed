package main

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	ordtx "github.com/shruggr/bsv-ord-tx"
	"github.com/shruggr/bsv-ord-tx/lib"
)

func envName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// parseOutpoint splits "txid:vout".
func parseOutpoint(s string) (string, uint32, error) {
	txid, vout, ok := strings.Cut(s, ":")
	if !ok || len(txid) != 64 {
		return "", 0, errors.Errorf("invalid outpoint %q, expected txid:vout", s)
	}
	v, err := strconv.ParseUint(vout, 10, 32)
	if err != nil {
		return "", 0, errors.Wrapf(err, "invalid vout in %q", s)
	}
	return txid, uint32(v), nil
}

// parseUtxo reads "txid:vout:satoshis:script". It returns nil with no error
// for a bare "txid:vout", which must be resolved on chain.
func parseUtxo(s string) (*ordtx.Utxo, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		if _, _, err := parseOutpoint(s); err != nil {
			return nil, err
		}
		return nil, nil
	case 4:
		txid, vout, err := parseOutpoint(parts[0] + ":" + parts[1])
		if err != nil {
			return nil, err
		}
		sats, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid satoshis in %q", s)
		}
		if parts[3] == "" {
			return nil, errors.Errorf("missing script in %q", s)
		}
		return &ordtx.Utxo{
			Satoshis: sats,
			Txid:     txid,
			Vout:     vout,
			Script:   parts[3],
		}, nil
	}
	return nil, errors.Errorf("invalid utxo %q, expected txid:vout or txid:vout:satoshis:script", s)
}

// resolveUtxo parses s and loads it through the app's loader when only an
// outpoint was given.
func (a *app) resolveUtxo(ctx context.Context, s string, ordinal bool) (*ordtx.Utxo, error) {
	u, err := parseUtxo(s)
	if err != nil || u != nil {
		return u, err
	}
	txid, vout, _ := parseOutpoint(s)
	loader, err := a.Loader()
	if err != nil {
		return nil, err
	}
	if ordinal {
		return loader.LoadOrdinalUtxo(ctx, txid, vout)
	}
	return loader.LoadUtxo(ctx, txid, vout)
}

// parseMeta turns repeated key=value flags into ordered Metadata.
func parseMeta(pairs []string) (*ordtx.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	md := ordtx.NewMetadata()
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("invalid metadata %q, expected key=value", p)
		}
		md.Set(k, v)
	}
	return md, nil
}

// parseOutputs reads "address" or "address:satoshis".
func parseOutputs(specs []string) ([]ordtx.Output, error) {
	outs := make([]ordtx.Output, 0, len(specs))
	for _, s := range specs {
		addr, sats, ok := strings.Cut(s, ":")
		out := ordtx.Output{Address: addr}
		if ok {
			v, err := strconv.ParseUint(sats, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid satoshis in %q", s)
			}
			out.Satoshis = v
		}
		if out.Address == "" {
			return nil, errors.Errorf("missing address in %q", s)
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// readInscription loads the body from file. contentType falls back to the
// file extension.
func readInscription(file, contentType string) (*ordtx.Inscription, error) {
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read inscription file")
	}
	if contentType == "" {
		contentType = lib.ContentTypeFromName(file)
	}
	return &ordtx.Inscription{
		Body: body,
		Type: contentType,
	}, nil
}
