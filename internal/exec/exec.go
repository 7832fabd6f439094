// Package exec implements the instruction set, the executor loop, and the
// executor state/return stack/argument memory it depends on. Handlers are
// grouped by instruction family, one file per family (mov.go, arith.go,
// stack.go, jump.go, call.go, and so on).
package exec

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/argparse"
	"github.com/pantae35872/craion/internal/decode"
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/memory"
	"github.com/pantae35872/craion/internal/registers"
	"github.com/pantae35872/craion/internal/sectionmgr"
	"github.com/pantae35872/craion/internal/typeheap"
	"github.com/pantae35872/craion/internal/vmerr"
)

// Context bundles everything a handler needs to execute one instruction:
// the register file, memory, the section manager, the executor state, the
// return stack, the argument cursor over this instruction's tail, the
// instruction's on-wire length, and the host's output stream.
type Context struct {
	Regs     *registers.File
	Mem      *memory.Memory
	Sections *sectionmgr.Manager
	Types    *typeheap.Heap
	State    *State
	Returns  *ReturnStack
	Args     *argparse.Cursor
	Length   uint64
	Out      io.Writer

	// Jumped is set by a handler that has already moved IP itself (a jump,
	// call, or ret). It tells Step not to auto-advance IP by the
	// instruction's length, regardless of where the handler moved IP to.
	Jumped bool
}

// Handler executes one instruction given its decoded context.
type Handler func(ctx *Context) error

// table is the static, opcode-indexed dispatch table: a plain array indexed
// directly by opcode, with no metaprogramming or registration step. A nil
// entry means the opcode has no registered handler.
var table [1 << 16]Handler

func init() {
	table[isa.MOV] = handleMov
	table[isa.PUSH] = handlePush
	table[isa.POP] = handlePop
	table[isa.ENTER] = handleEnter
	table[isa.LEAVE] = handleLeave
	table[isa.ARG] = handleArg
	table[isa.LARG] = handleLarg
	table[isa.SAVR] = handleSavr
	table[isa.RESTR] = handleRestr

	table[isa.INC] = handleInc
	table[isa.CMP] = handleCmp
	table[isa.ADD] = handleAdd
	table[isa.SUB] = handleSub
	table[isa.MUL] = handleMul
	table[isa.DIV] = handleDiv

	table[isa.JMP] = handleJmp
	table[isa.JMZ] = handleJmz
	table[isa.JMN] = handleJmn
	table[isa.JACN] = handleJacn
	table[isa.JACZ] = handleJacz
	table[isa.JACC] = handleJacc
	table[isa.JACE] = handleJace
	table[isa.JME] = handleJme
	table[isa.JMC] = handleJmc
	table[isa.CALL] = handleCall
	table[isa.RET] = handleRet

	table[isa.OUTC] = handleOutc

	table[isa.EXIT] = handleExit
	table[isa.HALT] = handleHalt
}

// Executor owns one VM run: its register file, memory, loaded sections,
// type heap, executor state, and return stack.
type Executor struct {
	Regs     *registers.File
	Mem      *memory.Memory
	Sections *sectionmgr.Manager
	Types    *typeheap.Heap
	State    *State
	Returns  *ReturnStack
	Out      io.Writer
	ErrOut   io.Writer

	cancelRequested int32
}

// New constructs an Executor ready to run starting from IP=0. Callers set
// Regs.SetIP/SetSP before calling Run to pick the entry procedure and stack
// top.
func New(mem *memory.Memory, sections *sectionmgr.Manager, types *typeheap.Heap) *Executor {
	return &Executor{
		Regs:     registers.New(),
		Mem:      mem,
		Sections: sections,
		Types:    types,
		State:    NewState(),
		Returns:  NewReturnStack(),
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}
}

// Run executes instructions until Halt is set:
//
//	while not Halt:
//	    inst <- decode(mem, regs, argmem)
//	    inst.execute()
//
// Any error halts the executor and prints a diagnostic.
func (e *Executor) Run() {
	for !e.Regs.GetHalt() {
		if atomic.LoadInt32(&e.cancelRequested) != 0 {
			e.Regs.SetHalt(true)
			return
		}
		if _, err := e.Step(); err != nil {
			return
		}
	}
}

// Step fetches, decodes, and dispatches exactly one instruction, returning
// the fetched instruction for a caller that wants to trace it (a
// debug/verbose single-step mode, as an alternative to driving a whole run
// through the Run loop). A handler that does not itself move IP (no
// jump/call/ret) falls through to the instruction-length auto-increment. On
// error the executor halts, a diagnostic is printed, and the error is
// returned.
func (e *Executor) Step() (decode.Instruction, error) {
	ipBefore := e.Regs.GetIP()
	instr, err := decode.Fetch(e.Mem, ipBefore)
	if err != nil {
		e.fail(err, ipBefore, 0)
		return instr, err
	}
	handler := table[instr.Opcode]
	if handler == nil {
		err := &vmerr.InvalidOpcodeError{Opcode: uint16(instr.Opcode)}
		e.fail(err, ipBefore, uint16(instr.Opcode))
		return instr, err
	}
	ctx := &Context{
		Regs:     e.Regs,
		Mem:      e.Mem,
		Sections: e.Sections,
		Types:    e.Types,
		State:    e.State,
		Returns:  e.Returns,
		Args:     argparse.New(instr.Tail),
		Length:   instr.Length,
		Out:      e.Out,
	}
	if err := handler(ctx); err != nil {
		e.fail(err, ipBefore, uint16(instr.Opcode))
		return instr, err
	}
	if !ctx.Jumped {
		e.Regs.IncIP(instr.Length)
	}
	return instr, nil
}

// Halt requests that Run stop before its next instruction. Safe to call from
// a goroutine other than the one running Run: the request is recorded
// through sync/atomic rather than by poking the packed Flags word directly,
// since the register file itself is not safe for concurrent access.
func (e *Executor) Halt() {
	atomic.StoreInt32(&e.cancelRequested, 1)
}

func (e *Executor) fail(err error, ip address.Address, op uint16) {
	fmt.Fprintf(e.ErrOut, "error: %s (ip=%s, op=%d)\n", err, ip, op)
	e.Regs.SetHalt(true)
}

// ExitCode returns the exit code recorded by EXIT, or 0 if the guest
// program never executed one.
func (e *Executor) ExitCode() uint64 {
	return e.State.ExitCode()
}

// lookupProcedure resolves hash to a loaded procedure, enforcing that the
// entity is in fact a Procedure, for JMP/JACx/CALL.
func lookupProcedure(sections *sectionmgr.Manager, hash uint64) (*sectionmgr.LoadedProcedure, error) {
	entity, ok := sections.Lookup(hash)
	if !ok {
		return nil, &vmerr.InvalidSectionError{Hash: hash}
	}
	if entity.Kind != sectionmgr.EntityProcedure {
		return nil, vmerr.ErrNotProcedureSection
	}
	return entity.Procedure, nil
}
