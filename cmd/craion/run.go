package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/exec"
	"github.com/pantae35872/craion/internal/hashing"
	"github.com/pantae35872/craion/internal/memory"
	"github.com/pantae35872/craion/internal/module"
	"github.com/pantae35872/craion/internal/sectionmgr"
	"github.com/pantae35872/craion/internal/typeheap"
)

// defaultMemSize is the default size of a run's linear memory.
const defaultMemSize = 1 << 20

// stackGuard is reserved at the top of memory so the initial SP never
// aliases the last valid address.
const stackGuard = 64

func newRunCmd() *cobra.Command {
	var memSize int
	var debug, verbose bool

	cmd := &cobra.Command{
		Use:   "run <module>",
		Short: "load and execute a compiled module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModule(args[0], memSize, debug, verbose)
		},
	}
	cmd.Flags().IntVar(&memSize, "mem", defaultMemSize, "VM memory size in bytes")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "pause after each instruction")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log the IP and opcode of each executed instruction")
	return cmd
}

func runModule(path string, memSize int, debug, verbose bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := module.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	mem := memory.New(memSize)
	sections := sectionmgr.New()
	if err := sections.Load(m, mem); err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	types, err := typeheap.Build(sections)
	if err != nil {
		return fmt.Errorf("build type heap: %w", err)
	}

	entity, ok := sections.Lookup(hashing.Hash("start"))
	if !ok || entity.Kind != sectionmgr.EntityProcedure {
		return fmt.Errorf("module has no start procedure")
	}

	e := exec.New(mem, sections, types)
	e.Regs.SetIP(entity.Procedure.LoadStart)
	e.Regs.SetSP(address.New(uint64(memSize - stackGuard)))

	if debug || verbose {
		log.Printf("craion: starting at %s, SP=%s, mem=%d bytes", e.Regs.GetIP(), e.Regs.GetSP(), memSize)
		for !e.Regs.GetHalt() {
			ip := e.Regs.GetIP()
			instr, err := e.Step()
			if verbose {
				log.Printf("craion: ip=%s op=%d", ip, instr.Opcode)
			}
			if debug {
				log.Printf("craion: paused...")
				fmt.Scanln()
			}
			if err != nil {
				break
			}
		}
	} else {
		e.Run()
	}

	code := e.ExitCode()
	if code != 0 {
		os.Exit(int(code))
	}
	return nil
}
