package config

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	ErrConfigFormat = errors.New(f("unknown configuration format"))
	ErrConfigType   = errors.New(f("wrong type"))
)

// ErrConfigKey indicates which configuration key is invalid.
type ErrConfigKey struct {
	Key string
	Err error
}

func (err *ErrConfigKey) Error() string {
	return f("%v: %v", err.Key, err.Err)
}

func (err *ErrConfigKey) Unwrap() error {
	return err.Err
}
