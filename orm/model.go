package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message

	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Marshal serializes given model.
func Marshal(m Model) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads serialized data into given model.
func Unmarshal(raw []byte, dest Model) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
