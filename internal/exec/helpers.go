package exec

import (
	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/registers"
)

func addrFrom(raw uint64) address.Address {
	return address.New(raw)
}

func regWidth(reg byte) (int, bool) {
	return registers.Width(reg)
}
