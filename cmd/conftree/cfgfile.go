package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/stagekit/conftree"
	"github.com/stagekit/conftree/format"
)

// getCfgFile loads a configuration tree from path, or from cc.In when
// path is "-".  The input format comes from the -I flag when given,
// otherwise from the file suffix, defaulting to the literal text form.
func getCfgFile(cfg *MainConfig, cc *cli.Context, path string) (*conftree.Config, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	switch fileFormat(cfg, path) {
	case format.JSONFormat:
		return conftree.FromJSON(d)
	case format.YAMLFormat:
		return conftree.FromYAML(d)
	default:
		return conftree.FromLiteral(string(d))
	}
}

func fileFormat(cfg *MainConfig, path string) format.Format {
	if cfg.InFormat != nil || cfg.T || cfg.J || cfg.Y {
		return cfg.inFormat()
	}
	for _, f := range []format.Format{format.TextFormat, format.JSONFormat, format.YAMLFormat} {
		if strings.HasSuffix(path, f.Suffix()) {
			return f
		}
	}
	return format.TextFormat
}
