package debug

import (
	"fmt"
	"os"

	"github.com/stagekit/conftree/ir"
)

// Logf writes a debug line to stderr.  Paths render in dotted form;
// callers render nodes with encode.MustString.
func Logf(msg string, args ...any) {
	for i := range args {
		if x, ok := args[i].(ir.Path); ok {
			args[i] = x.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
