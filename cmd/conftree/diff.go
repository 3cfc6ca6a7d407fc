package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/stagekit/conftree"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getCfgFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getCfgFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	patch, err := conftree.Diff(a, b)
	if err != nil {
		return err
	}
	if string(patch) == "{}" {
		return nil
	}
	if _, err := cc.Out.Write(append(patch, '\n')); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
