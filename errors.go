package ordtx

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingData       = errors.New("missing data")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMissingKey        = errors.New("missing signing key")
	ErrMissingUtxo       = errors.New("missing utxo")
)

type HttpError struct {
	StatusCode int
	Err        error
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("%d: %v", e.StatusCode, e.Err)
}

func (e *HttpError) Unwrap() error {
	return e.Err
}
