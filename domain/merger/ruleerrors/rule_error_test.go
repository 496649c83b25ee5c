package ruleerrors

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestRuleErrorSentinelsSurviveWrapping(t *testing.T) {
	wrapped := pkgerrors.Wrapf(ErrCyclicDependencies, "dependency cycle through deploy %s", "abc")

	if !errors.Is(wrapped, ErrCyclicDependencies) {
		t.Fatal("wrapped error should match ErrCyclicDependencies")
	}
	if errors.Is(wrapped, ErrEmptyFringeSet) {
		t.Fatal("wrapped error should not match ErrEmptyFringeSet")
	}

	rule := &RuleError{}
	if !errors.As(wrapped, rule) {
		t.Fatal("wrapped error should contain a RuleError in it")
	}
	if rule.message != "ErrCyclicDependencies" {
		t.Fatalf("expected message = 'ErrCyclicDependencies', found: '%s'", rule.message)
	}
}
