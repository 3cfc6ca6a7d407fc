package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/stagekit/conftree"
	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/format"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
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
		if err := writeCfg(cfg.MainConfig, cc.Out, c); err != nil {
			return err
		}
	}
	return nil
}

func writeCfg(cfg *MainConfig, w io.Writer, c *conftree.Config) error {
	if cfg.outFormat() == format.YAMLFormat {
		d, err := c.ToYAML()
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	return encode.Encode(c.Node(), w, cfg.encOpts(w)...)
}
