package assert

import (
	"testing"

	"github.com/nestera-labs/nestera/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     *errors.Error
		got      error
		wantFail bool
	}{
		"same error": {
			want:     errors.ErrEmpty,
			got:      errors.ErrEmpty,
			wantFail: false,
		},
		"compared to nil": {
			want:     nil,
			got:      errors.ErrEmpty,
			wantFail: true,
		},
		"both nil": {
			want:     nil,
			got:      nil,
			wantFail: false,
		},
		"wrapped": {
			want:     errors.ErrLockNotFound,
			got:      errors.Wrap(errors.ErrLockNotFound, "test"),
			wantFail: false,
		},
		"different kind": {
			want:     errors.ErrLockNotFound,
			got:      errors.ErrScheduleNotFound,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.want, tc.got)
			if failed := mock.failcalls > 0; tc.wantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		err      error
		name     string
		want     *errors.Error
		wantFail bool
	}{
		"field error found": {
			err:      errors.Field("Amount", errors.ErrInvalidAmount, "negative"),
			name:     "Amount",
			want:     errors.ErrInvalidAmount,
			wantFail: false,
		},
		"no error expected and none found": {
			err:      errors.Field("Amount", errors.ErrInvalidAmount, "negative"),
			name:     "Owner",
			want:     nil,
			wantFail: false,
		},
		"no error expected but one found": {
			err:      errors.Field("Amount", errors.ErrInvalidAmount, "negative"),
			name:     "Amount",
			want:     nil,
			wantFail: true,
		},
		"different kind": {
			err:      errors.Field("Amount", errors.ErrOverflow, "too big"),
			name:     "Amount",
			want:     errors.ErrInvalidAmount,
			wantFail: true,
		},
		"one of many": {
			err: errors.Append(
				errors.Field("Amount", errors.ErrOverflow, "too big"),
				errors.Field("Amount", errors.ErrInvalidAmount, "odd"),
			),
			name:     "Amount",
			want:     errors.ErrInvalidAmount,
			wantFail: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.err, tc.name, tc.want)
			if failed := mock.failcalls > 0; tc.wantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	mock := &tmock{TB: t}
	Equal(mock, []uint64{1, 2}, []uint64{1, 2})
	if mock.failcalls != 0 {
		t.Fatal("equal slices reported as different")
	}
	Equal(mock, []uint64{1, 2}, []uint64{2, 1})
	if mock.failcalls == 0 {
		t.Fatal("different slices reported as equal")
	}
}

// tmock counts fatal calls instead of stopping the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (m *tmock) Fatal(args ...interface{}) {
	m.failcalls++
}

func (m *tmock) Fatalf(format string, args ...interface{}) {
	m.failcalls++
}
