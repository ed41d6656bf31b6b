package app

import (
	"fmt"
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/crypto"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x/sigs"
)

// Message is a Msg with a protobuf encoding. All extension messages
// implement it.
type Message interface {
	nestera.Msg
	proto.Message
}

// Tx is the transaction envelope. It carries a single serialized message,
// the path that message is routed by and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path,omitempty"`
	Msg        []byte               `protobuf:"bytes,3,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

var _ orm.Model = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx serializes given message into an unsigned envelope.
func NewTx(msg Message) (*Tx, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	raw, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "marshal %T: %s", msg, err)
	}
	return &Tx{Path: msg.Path(), Msg: raw}, nil
}

// Validate ensures the envelope is well formed. The message itself is
// validated by its handler.
func (m *Tx) Validate() error {
	var errs error
	if !isPath(m.Path) {
		errs = errors.AppendField(errs, "Path", errors.ErrInvalidInput)
	}
	for i, s := range m.Signatures {
		if s == nil {
			errs = errors.Append(errs, errors.Field("Signatures", errors.ErrEmpty, "signature %d", i))
		}
	}
	return errs
}

// GetSignatures returns the signatures attached to the envelope.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are never part of the
// signed content.
func (m *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Path: m.Path, Msg: m.Msg}
	return orm.Marshal(&unsigned)
}

// Sign appends a signature of the envelope created with given key.
func (m *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, m, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	m.Signatures = append(m.Signatures, sig)
	return nil
}

// TxDecoder turns raw envelopes into transactions, resolving the message
// type by its path.
type TxDecoder struct {
	msgs map[string]reflect.Type
}

// NewTxDecoder returns a decoder that knows no messages.
func NewTxDecoder() *TxDecoder {
	return &TxDecoder{msgs: make(map[string]reflect.Type)}
}

// Register makes the decoder recognize the messages of the same type as
// each given prototype. Prototypes must be pointers. This function panics
// if a message path is registered twice.
func (d *TxDecoder) Register(prototypes ...Message) *TxDecoder {
	for _, p := range prototypes {
		t := reflect.TypeOf(p)
		if t == nil || t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message prototype must be a pointer, got %T", p))
		}
		path := p.Path()
		if _, ok := d.msgs[path]; ok {
			panic(fmt.Sprintf("message path registered twice: %s", path))
		}
		d.msgs[path] = t.Elem()
	}
	return d
}

// Decode deserializes an envelope and its message.
func (d *TxDecoder) Decode(raw []byte) (nestera.Tx, error) {
	var env Tx
	if err := orm.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrap(err, "envelope")
	}
	if err := env.Validate(); err != nil {
		return nil, errors.Wrap(err, "envelope")
	}
	t, ok := d.msgs[env.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", env.Path)
	}
	msg := reflect.New(t).Interface().(Message)
	if err := proto.Unmarshal(env.Msg, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unmarshal %s: %s", env.Path, err)
	}
	if msg.Path() != env.Path {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "message path %q does not match envelope", msg.Path())
	}
	return &decodedTx{Tx: &env, msg: msg}, nil
}

// decodedTx is an envelope together with its decoded message.
type decodedTx struct {
	*Tx
	msg nestera.Msg
}

var _ nestera.Tx = (*decodedTx)(nil)
var _ sigs.SignedTx = (*decodedTx)(nil)

func (tx *decodedTx) GetMsg() (nestera.Msg, error) {
	return tx.msg, nil
}
