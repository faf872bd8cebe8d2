package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindIncompleteByte,
				Path:   []string{"Header", "flags"},
				Type:   "u8",
				Detail: "bit cursor at 3 is not byte aligned",
				Line:   7,
			},
			contains: []string{"[validate]", "incomplete_byte", "Header.flags", "(line 7)", "type u8", "not byte aligned"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindSyntax,
			},
			contains: []string{"[parse]", "syntax"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseEmit,
				Kind:   KindInternal,
				Detail: "format source",
				Cause:  errors.New("expected ';'"),
			},
			contains: []string{"[emit]", "internal", "format source", "caused by", "expected ';'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseConfig, KindInvalidInput, cause, "read config")

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := BadReference([]string{"Rec", "data"}, "len", "is not declared before use")

	if !errors.Is(err, &Error{Phase: PhaseValidate, Kind: KindBadReference}) {
		t.Error("should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseParse, Kind: KindBadReference}) {
		t.Error("should not match different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseValidate, Kind: KindIncompleteByte}) {
		t.Error("should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseParse, KindMalformedAttribute).
		Path("Rec", "f").
		Type("Vec<u8>").
		Line(3).
		Value("size(x").
		Detail("unbalanced %s", "parenthesis").
		Build()

	if err.Detail != "unbalanced parenthesis" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Line != 3 || err.Type != "Vec<u8>" || err.Value != "size(x" {
		t.Errorf("builder fields not set: %+v", err)
	}
	if strings.Join(err.Path, ".") != "Rec.f" {
		t.Errorf("Path = %v", err.Path)
	}
}

func TestList(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Fatal("empty list should yield nil error")
	}

	l.Add(nil)
	l.Add(DuplicateAttribute([]string{"R", "a"}, "bits"))
	if got := l.Err(); got != l[0] {
		t.Errorf("single entry Err() = %v, want the entry itself", got)
	}

	l.Merge(PhaseParse, MalformedAttribute([]string{"R", "b"}, "size", "missing value"))
	l.Merge(PhaseParse, List{Syntax(2, "unexpected %q", "}")})
	l.Merge(PhaseParse, errors.New("boom"))

	if len(l) != 4 {
		t.Fatalf("len = %d, want 4", len(l))
	}
	want := []Kind{KindDuplicateAttribute, KindMalformedAttribute, KindSyntax, KindInternal}
	for i, k := range KindsOf(l.Err()) {
		if k != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, k, want[i])
		}
	}

	var target *Error
	if !errors.As(l.Err(), &target) {
		t.Error("errors.As should find an *Error in the list")
	}
	if !errors.Is(l.Err(), &Error{Phase: PhaseParse, Kind: KindSyntax}) {
		t.Error("errors.Is should search every entry")
	}
	if !strings.HasPrefix(l.Error(), "4 error(s):") {
		t.Errorf("List.Error() = %q", l.Error())
	}
}
