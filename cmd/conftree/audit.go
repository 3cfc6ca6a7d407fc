package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/stagekit/conftree/encode"
)

func audit(cfg *AuditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Audit.Parse(cc, args)
	if err != nil {
		cfg.Audit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		c, err := getCfgFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if cfg.Unused {
			for _, p := range c.UnusedPaths() {
				fmt.Fprintln(cc.Out, p.String())
			}
			continue
		}
		opts := append(cfg.MainConfig.encOpts(cc.Out), encode.Render(encode.Verbose))
		if err := encode.Encode(c.Node(), cc.Out, opts...); err != nil {
			return err
		}
	}
	return nil
}
