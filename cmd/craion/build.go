package main

import (
	"github.com/spf13/cobra"

	"github.com/pantae35872/craion/internal/vmerr"
)

// Builder is the seam an external compiler front-end would implement to
// turn source text into a module.Module; assembler/compiler front-ends are
// out of scope for this toolchain. No implementation is bundled here;
// these commands exist so the CLI surface is complete without pretending
// to own the compiler.
type Builder interface {
	Build(source string) error
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "build a module from a project manifest (external compiler front-end)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return vmerr.ErrNotImplemented
		},
	}
}

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <source>",
		Short: "compile a source file to a module (external compiler front-end)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return vmerr.ErrNotImplemented
		},
	}
}

func newCompileEmitAsmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile-emit-asm <source>",
		Short: "compile a source file and print its intermediate assembly (external compiler front-end)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return vmerr.ErrNotImplemented
		},
	}
}
