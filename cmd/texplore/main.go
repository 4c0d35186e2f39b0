// Command texplore renders procedural textures: one-shot to a file, from an
// interactive shell or over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
