package app

import (
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/crypto"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x/lock"
	"github.com/nestera-labs/nestera/x/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxDecoding(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519().PublicKey().Address()
	msg := &lock.CreateMsg{Owner: owner, Amount: 500, Duration: 10}

	tx, err := NewTx(msg)
	require.NoError(t, err)
	assert.Equal(t, "lock/create", tx.Path)

	raw, err := orm.Marshal(tx)
	require.NoError(t, err)

	decoded, err := Decoder().Decode(raw)
	require.NoError(t, err)
	got, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	var loaded lock.CreateMsg
	require.NoError(t, nestera.LoadMsg(decoded, &loaded))
	assert.Equal(t, int64(500), loaded.Amount)
}

func TestTxDecodingErrors(t *testing.T) {
	encode := func(tx *Tx) []byte {
		raw, err := orm.Marshal(tx)
		require.NoError(t, err)
		return raw
	}

	cases := map[string]struct {
		raw     []byte
		wantErr *errors.Error
	}{
		"not an envelope": {
			raw:     []byte{0xff, 0xff},
			wantErr: errors.ErrInvalidModel,
		},
		"missing path": {
			raw:     encode(&Tx{Msg: []byte{0x08, 0x01}}),
			wantErr: errors.ErrInvalidInput,
		},
		"malformed path": {
			raw:     encode(&Tx{Path: "lock:create"}),
			wantErr: errors.ErrInvalidInput,
		},
		"unknown path": {
			raw:     encode(&Tx{Path: "lock/destroy"}),
			wantErr: errors.ErrNotFound,
		},
		"malformed message": {
			raw:     encode(&Tx{Path: "lock/create", Msg: []byte{0xff, 0xff}}),
			wantErr: errors.ErrInvalidMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Decoder().Decode(tc.raw)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestSignBytesIgnoreSignatures(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx, err := NewTx(&user.RegisterUserMsg{Address: key.PublicKey().Address()})
	require.NoError(t, err)

	before, err := tx.GetSignBytes()
	require.NoError(t, err)

	require.NoError(t, tx.Sign(key, "test-chain", 0))
	require.Len(t, tx.GetSignatures(), 1)

	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.True(t, errors.ErrInvalidInput.Is(tx.Sign(key, "x", 1)))
}

func TestDecoderRejectsDuplicatePath(t *testing.T) {
	d := NewTxDecoder().Register(&lock.CreateMsg{})
	assert.Panics(t, func() { d.Register(&lock.CreateMsg{}) })
}

func TestNewTxWithoutMessage(t *testing.T) {
	_, err := NewTx(nil)
	assert.True(t, errors.ErrEmpty.Is(err))
}
