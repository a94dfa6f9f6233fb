package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/josh-kwaku/securebank/internal/service"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a backup of the current user and directory" }
func (*exportCmd) Usage() string {
	return `bankctl export [-o <file>]

  Writes a backup bundle. Without -o the file is named after today's date,
  use -o - to print it.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, or - for stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bank, closeFn, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	data, name, err := bank.Export(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, service.Message(err))
		return subcommands.ExitFailure
	}

	switch c.output {
	case "-":
		if err := writeBackup(os.Stdout, data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case "":
		c.output = name
	}
	if err := os.WriteFile(c.output, data, 0o600); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("backup written to", c.output)
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore a backup file" }
func (*importCmd) Usage() string {
	return `bankctl import <file>

  Validates the whole backup, then replaces the current user and the
  directory. Nothing is written when the file is rejected.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	bank, closeFn, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	res, err := bank.Import(ctx, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, res.Message)
		return subcommands.ExitFailure
	}
	fmt.Printf("restored %s (%s)\n", res.User.FullName(), res.User.Email)
	return subcommands.ExitSuccess
}

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete the current user and the directory" }
func (*clearCmd) Usage() string {
	return `bankctl clear -yes

  Removes all stored bank data. Requires -yes.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm deletion.")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "refusing to clear data without -yes")
		return subcommands.ExitUsageError
	}
	bank, closeFn, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if _, err := bank.ClearAll(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("all data cleared")
	return subcommands.ExitSuccess
}

func writeBackup(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
