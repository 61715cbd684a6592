// Command mars assembles and runs Redcode '94 matches from the
// command line.
package main

import "go.redcode.dev/mars/cli"

func main() {
	cli.Execute()
}
