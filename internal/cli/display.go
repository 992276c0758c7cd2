package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	red   = color.New(color.FgRed, color.Bold)
	green = color.New(color.FgGreen)
	bold  = color.New(color.Bold)
	grey  = color.New(color.FgHiBlack)
)

// printError writes one diagnostic line per line of err. Errors joined with
// errors.Join print one line each.
func printError(w io.Writer, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(w, "%s %s\n", red.Sprint("error:"), line)
		}
	}
}
