// Command jvmkit decodes JVM class files and lifts their bytecode to IR.
package main

import (
	"fmt"
	"os"

	"github.com/jvmkit/jvmkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
