package display

import (
	"fmt"
	"os"

	"github.com/backmassage/slidereel/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____  _ _     _      ____            _
/ ___|| (_) __| | ___|  _ \ ___  ___| |
\___ \| | |/ _`+"`"+` |/ _ \ |_) / _ \/ _ \ |
 ___) | | | (_| |  __/  _ <  __/  __/ |
|____/|_|_|\__,_|\___|_| \_\___|\___|_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
