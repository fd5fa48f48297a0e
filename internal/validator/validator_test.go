package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNotBlank(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("notblank", NotBlank); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cases := []struct {
		in   string
		pass bool
	}{
		{"Books", true},
		{" padded ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}
	for _, tc := range cases {
		err := v.Var(tc.in, "notblank")
		if tc.pass && err != nil {
			t.Errorf("%q should pass, got %v", tc.in, err)
		}
		if !tc.pass && err == nil {
			t.Errorf("%q should fail", tc.in)
		}
	}
}
