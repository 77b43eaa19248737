package codegen

import "strconv"

// emitStart emits the process entry point: call main, move its return
// value into rdi, and invoke syscall 60 (exit). This is the only code in
// the translation unit that runs before any user function.
func (g *Generator) emitStart() {
	g.line("_start:")
	g.line("    call main")
	g.line("    mov rdi, rax")
	g.line("    mov rax, 60")
	g.line("    syscall")
}

// nasm byte-sequence rendering for a string literal: each byte as a
// decimal number, comma-separated, with a trailing 0 terminator. Escapes
// were already resolved to real bytes by the lexer; this only has to
// render whatever bytes survived into the AST.
func nasmStringBytes(s string) string {
	if len(s) == 0 {
		return "0"
	}
	out := make([]byte, 0, len(s)*4)
	for i := 0; i < len(s); i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendInt(out, int64(s[i]), 10)
	}
	out = append(out, ",0"...)
	return string(out)
}
