package token

import "testing"

func TestLookupIdent(t *testing.T) {
	cases := map[string]Type{
		"func":     FUNC,
		"import":   IMPORT,
		"return":   RETURN,
		"if":       IF,
		"else":     ELSE,
		"loop":     LOOP,
		"break":    BREAK,
		"continue": CONTINUE,
		"int":      INT,
		"float":    FLOATKW,
		"bool":     BOOL,
		"string":   STRINGKW,
		"x":        IDENT,
		"Main":     IDENT,
	}
	for lexeme, want := range cases {
		if got := LookupIdent(lexeme); got != want {
			t.Errorf("LookupIdent(%q) = %s, want %s", lexeme, got, want)
		}
	}
}

func TestNewTruncatesLongLexemes(t *testing.T) {
	long := make([]byte, MaxLexemeBytes+50)
	for i := range long {
		long[i] = 'a'
	}
	tok := New(IDENT, string(long), 1)
	if len(tok.Lexeme) != MaxLexemeBytes {
		t.Fatalf("Lexeme length = %d, want %d", len(tok.Lexeme), MaxLexemeBytes)
	}
}

func TestTypeStringUnknown(t *testing.T) {
	var t2 Type = 9999
	if got := t2.String(); got == "" {
		t.Fatal("String() of an unknown Type returned empty string")
	}
}
