package exec

import (
	"unicode/utf8"

	"github.com/pantae35872/craion/internal/vmerr"
)

// handleOutc implements OUTC reg: interprets the low 32 bits of reg as a
// Unicode scalar value and writes its UTF-8 encoding to the host's output
// stream.
func handleOutc(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	v, err := ctx.Regs.GetGeneral(reg)
	if err != nil {
		return err
	}
	r := rune(v & 0xffffffff)
	if !utf8.ValidRune(r) {
		return vmerr.ErrInvalidUTF8
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	_, err = ctx.Out.Write(buf[:n])
	return err
}
