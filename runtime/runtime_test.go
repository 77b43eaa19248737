package runtime

import (
	"strings"
	"testing"
)

func TestPreludeContainsAllFiveRoutines(t *testing.T) {
	routines := []string{"print_no_nl", "print_str_no_nl", "input", "str_to_int", "strcpy_internal"}
	p := Prelude()
	for _, name := range routines {
		if !strings.Contains(p, name+":") {
			t.Errorf("prelude missing routine label %q", name+":")
		}
	}
}

func TestDataSectionDeclaresScratchBuffers(t *testing.T) {
	for _, name := range []string{"digit_buffer", "digit_count", "input_buffer", "newline"} {
		if !strings.Contains(DataSection, name) {
			t.Errorf("DataSection missing %q", name)
		}
	}
}

// TestInputDoesNotGuardAgainstEmptyRead pins the documented sharp edge
// (spec.md §9): `input` assumes the read it issues returns at least one
// byte, and on an empty read (EOF with nothing buffered) unconditionally
// decrements its length before indexing into input_buffer, landing on
// input_buffer[-1]. This is intentional and must not be "fixed" by adding
// a length guard.
func TestInputDoesNotGuardAgainstEmptyRead(t *testing.T) {
	p := Prelude()
	start := strings.Index(p, "\ninput:")
	if start == -1 {
		t.Fatal("input routine not found in prelude")
	}
	end := strings.Index(p[start+1:], "\n\n")
	if end == -1 {
		end = len(p) - start - 1
	}
	body := p[start : start+1+end]
	if strings.Contains(body, "cmp rcx, 0") || strings.Contains(body, "jle") {
		t.Error("input routine guards against an empty read; spec.md §9 documents this as an unguarded sharp edge")
	}
	if !strings.Contains(body, "dec rcx") {
		t.Error("input routine no longer decrements before indexing input_buffer")
	}
}
