package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		err       error
		field     string
		wantCount int
	}{
		"nil error": {
			err:       nil,
			field:     "Amount",
			wantCount: 0,
		},
		"single field error": {
			err:       Field("Amount", ErrInvalidAmount, "must be positive"),
			field:     "Amount",
			wantCount: 1,
		},
		"different field name": {
			err:       Field("Amount", ErrInvalidAmount, "must be positive"),
			field:     "Duration",
			wantCount: 0,
		},
		"wrapped field error": {
			err:       Wrap(Field("Owner", ErrEmpty, "required"), "validate"),
			field:     "Owner",
			wantCount: 1,
		},
		"collection of field errors": {
			err: Append(
				Field("Amount", ErrInvalidAmount, "must be positive"),
				Field("Duration", ErrInvalidDuration, "must not be zero"),
				Field("Amount", ErrOverflow, "too big"),
			),
			field:     "Amount",
			wantCount: 2,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if len(got) != tc.wantCount {
				t.Fatalf("want %d errors, got %d: %v", tc.wantCount, len(got), got)
			}
		})
	}
}

func TestAppendField(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Owner", nil)
	if errs != nil {
		t.Fatalf("nil field error must be ignored: %v", errs)
	}
	errs = AppendField(errs, "Owner", ErrEmpty)
	errs = AppendField(errs, "Amount", ErrInvalidAmount)
	if !ErrEmpty.Is(errs) || !ErrInvalidAmount.Is(errs) {
		t.Fatalf("both kinds must be found: %v", errs)
	}
	if n := len(FieldErrors(errs, "Owner")); n != 1 {
		t.Fatalf("want one owner error, got %d", n)
	}
}
