// Command craion is the toolchain's CLI entry point: run executes a
// compiled module, while build/compile/compile-emit-asm are stubs for the
// external compiler front-end.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "craion",
		Short:         "craion runs and builds register-VM bytecode modules",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newCompileEmitAsmCmd())
	return root
}
