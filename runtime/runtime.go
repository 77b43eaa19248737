// Package runtime embeds the hand-written NASM runtime prelude shared by
// every compiled B program: integer print, string print, line input,
// decimal parse, and a NUL-terminated string copy. See spec.md §4.5.
package runtime

import _ "embed"

//go:embed asm/prelude.asm
var prelude string

// Prelude returns the fixed assembly text emitted once at the top of
// every generated .text section, before any user function.
func Prelude() string {
	return prelude
}

// DataSection is the fixed section .data scratch buffers the prelude
// routines rely on: a 10-byte digit buffer plus trailing newline slot, a
// digit counter, a 256-byte line-input buffer, and a spare newline byte.
const DataSection = `digit_buffer: times 10 db 0
    db 10
digit_count: dq 0
input_buffer: times 256 db 0
newline: db 10
`
