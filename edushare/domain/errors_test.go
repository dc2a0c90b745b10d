package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{name: "not found", err: NotFound("post %q does not exist", "slug"), kind: KindNotFound},
		{name: "conflict", err: Conflict("email already registered"), kind: KindConflict},
		{name: "validation", err: Validation("a title is required"), kind: KindValidation},
		{name: "transient", err: Transient(cause, "failed to query posts"), kind: KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	if got := KindOf(errors.New("some driver error")); got != KindTransient {
		t.Errorf("KindOf(foreign error) = %v, want KindTransient", got)
	}
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := Transient(cause, "failed to connect")

	if !errors.Is(err, cause) {
		t.Error("errors.Is lost the wrapped cause")
	}

	wrapped := fmt.Errorf("while listing posts: %w", err)
	if KindOf(wrapped) != KindTransient {
		t.Errorf("KindOf(wrapped) = %v, want KindTransient", KindOf(wrapped))
	}
}

func TestError_Message(t *testing.T) {
	plain := NotFound("file %q not found", "abc")
	if plain.Error() != `file "abc" not found` {
		t.Errorf("Error() = %q", plain.Error())
	}

	withCause := Transient(errors.New("boom"), "failed to save")
	if withCause.Error() != "failed to save: boom" {
		t.Errorf("Error() = %q", withCause.Error())
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(NotFound("x")) || IsNotFound(Conflict("x")) {
		t.Error("IsNotFound misclassified")
	}
	if !IsConflict(Conflict("x")) || IsConflict(Validation("x")) {
		t.Error("IsConflict misclassified")
	}
	if !IsValidation(Validation("x")) || IsValidation(nil) {
		t.Error("IsValidation misclassified")
	}
}
