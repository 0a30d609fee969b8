// Command amber is the CLI entry point for the interned type store.
package main

import "github.com/mesh-intelligence/amber/internal/cli"

func main() {
	cli.Execute()
}
