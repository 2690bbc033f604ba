// Command demo compiles a small Loom template and runs it against a real
// terminal, as the minimal end-to-end exercise of the compile → runtime →
// backend/tui pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/loomtui/loom"
	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/backend/tui"
)

const source = `
border
    vstack
        text "Loom demo"
        text "press q to quit"
`

func main() {
	prog, err := loom.Compile(source, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compile:", err)
		os.Exit(1)
	}

	be := tui.New()
	onEvent := func(e backend.Event) bool {
		return e.Kind == backend.EventKey && e.Key.Code.Char == 'q'
	}

	if err := prog.Run(be, onEvent); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}
}
