package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest/assert"
)

type limits struct {
	Max    int64  `protobuf:"varint,1,opt,name=max,proto3" json:"max"`
	Reason string `protobuf:"bytes,2,opt,name=reason,proto3" json:"reason"`
}

func (m *limits) Reset()         { *m = limits{} }
func (m *limits) String() string { return proto.CompactTextString(m) }
func (*limits) ProtoMessage()    {}

func (m *limits) Validate() error {
	if m.Max <= 0 {
		return errors.Wrap(errors.ErrInvalidInput, "max must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limits
	assert.IsErr(t, errors.ErrNotFound, Load(db, "limits", &got))
	ok, err := Has(db, "limits")
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	assert.IsErr(t, errors.ErrInvalidInput, Save(db, "limits", &limits{Max: -1}))
	assert.Nil(t, Save(db, "limits", &limits{Max: 7, Reason: "test"}))

	assert.Nil(t, Load(db, "limits", &got))
	assert.Equal(t, limits{Max: 7, Reason: "test"}, got)
	ok, err = Has(db, "limits")
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantMax int64
	}{
		"valid configuration": {
			genesis: `{"conf": {"limits": {"max": 3, "reason": "genesis"}}}`,
			wantMax: 3,
		},
		"missing configuration": {
			genesis: `{"conf": {"other": {}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"limits": {"max": 0}}}`,
			wantErr: errors.ErrInvalidInput,
		},
		"malformed configuration": {
			genesis: `{"conf": {"limits": {"max": "many"}}}`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts nestera.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			err := InitConfig(db, opts, "limits", &limits{})
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			var got limits
			assert.Nil(t, Load(db, "limits", &got))
			assert.Equal(t, tc.wantMax, got.Max)
		})
	}
}
