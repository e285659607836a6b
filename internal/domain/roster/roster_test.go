package roster

import (
	"errors"
	"testing"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		names   []string
		wantErr error
	}{
		{name: "empty", names: nil, wantErr: ErrEmptyRoster},
		{name: "duplicate", names: []string{"Leila", "Karine", "Leila"}, wantErr: ErrDuplicateName},
		{name: "duplicate after trim", names: []string{"Leila", " Leila "}, wantErr: ErrDuplicateName},
		{name: "blank", names: []string{"Leila", "  "}, wantErr: ErrBlankName},
		{name: "single", names: []string{"Leila"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.names)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("New(%v) error: %v", tt.names, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New(%v) error = %v, want %v", tt.names, err, tt.wantErr)
			}
		})
	}
}

func TestRosterAtWraps(t *testing.T) {
	t.Parallel()
	r, err := New([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	want := []string{"a", "b", "c", "a", "b", "c", "a"}
	for i, w := range want {
		if got := r.At(i); got != w {
			t.Fatalf("At(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	t.Parallel()
	r := Default()
	names := r.Names()
	names[0] = "changed"
	if r.At(0) != DefaultNames[0] {
		t.Fatalf("roster mutated through Names(): %q", r.At(0))
	}
	if r.Len() != len(DefaultNames) {
		t.Fatalf("Len = %d, want %d", r.Len(), len(DefaultNames))
	}
}
