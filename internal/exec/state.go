package exec

import (
	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/vmerr"
)

// State is the executor state: the saved-stack-size LIFO fed by
// ENTER/LEAVE, the procedure argument slots fed by ARG/LARG, and the exit
// code set by EXIT.
type State struct {
	savedSizes []uint64
	argSlots   map[uint32]uint64
	exitCode   uint64
}

// NewState returns a fresh, empty executor state.
func NewState() *State {
	return &State{argSlots: map[uint32]uint64{}}
}

// PushSavedSize records n as the most recently entered stack frame's size.
func (s *State) PushSavedSize(n uint64) {
	s.savedSizes = append(s.savedSizes, n)
}

// PopSavedSize pops the most recently pushed frame size, or 0 if the stack
// is empty.
func (s *State) PopSavedSize() uint64 {
	if len(s.savedSizes) == 0 {
		return 0
	}
	n := s.savedSizes[len(s.savedSizes)-1]
	s.savedSizes = s.savedSizes[:len(s.savedSizes)-1]
	return n
}

// SetArg stores a procedure argument slot.
func (s *State) SetArg(index uint32, value uint64) {
	s.argSlots[index] = value
}

// GetArg loads a procedure argument slot, defaulting to 0 when unset.
func (s *State) GetArg(index uint32) uint64 {
	return s.argSlots[index]
}

// SetExitCode records the exit code carried by EXIT.
func (s *State) SetExitCode(v uint64) {
	s.exitCode = v
}

// ExitCode returns the exit code recorded so far.
func (s *State) ExitCode() uint64 {
	return s.exitCode
}

// ReturnStack is the LIFO of return addresses driven by CALL/RET.
type ReturnStack struct {
	addrs []address.Address
}

// NewReturnStack returns an empty return stack.
func NewReturnStack() *ReturnStack {
	return &ReturnStack{}
}

// Push records a as the address to resume at on the next RET.
func (r *ReturnStack) Push(a address.Address) {
	r.addrs = append(r.addrs, a)
}

// Pop returns the most recently pushed return address, or
// vmerr.ErrEmptyReturnStack if the stack is empty.
func (r *ReturnStack) Pop() (address.Address, error) {
	if len(r.addrs) == 0 {
		return 0, vmerr.ErrEmptyReturnStack
	}
	a := r.addrs[len(r.addrs)-1]
	r.addrs = r.addrs[:len(r.addrs)-1]
	return a, nil
}

// Len reports the current return-stack height.
func (r *ReturnStack) Len() int {
	return len(r.addrs)
}
