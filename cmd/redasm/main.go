// Command redasm assembles a Redcode '94 source file and pretty-prints
// the result back to source. With -verify it also checks the
// round-trip by re-parsing its own output and comparing instruction
// streams.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/redcode/parser"
)

func run(input string, coreSize int, verify bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	prog, err := parser.New(input, coreSize).Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to assemble: %w", err)
	}

	printed := prog.String()
	fmt.Print(printed)

	if !verify {
		return nil
	}
	reparsed, err := parser.New(input+" (round-trip)", coreSize).Parse(printed)
	if err != nil {
		return fmt.Errorf("round-trip re-parse failed: %w", err)
	}
	if !sameInstructions(prog.Instructions, reparsed.Instructions) {
		return fmt.Errorf("round-trip mismatch: pretty-printed output did not re-assemble to the same instructions")
	}
	log.Printf("round-trip OK (%d instructions)", len(prog.Instructions))
	return nil
}

func sameInstructions(a, b []redcode.Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func main() {
	log.SetFlags(0)
	coreSize := flag.Int("core-size", redcode.DefaultCoreSize, "core size used to fold operand fields")
	verify := flag.Bool("verify", false, "re-parse the pretty-printed output and check it matches")
	flag.Parse()
	input := flag.Arg(0)
	if input == "" {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s <warrior.red> [options]\n", binName)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(input, *coreSize, *verify); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
