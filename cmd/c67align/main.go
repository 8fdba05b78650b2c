// main.go - a small demo CLI for the load alignment rewriter, grounded on
// the teacher's main.go/cli.go flag conventions: dual short/long boolean
// flags merged with a plain ||, a -V/-version pair that prints and exits,
// and environment-variable defaults layered under the flags (there via
// nothing, since the teacher reads no env vars for these; here via
// github.com/xyproto/env/v2, which the teacher's go.mod declares but never
// imports - this CLI is the first thing in this lineage to actually call
// it).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/xyproto/loadalign/align"
)

const versionString = "c67align 0.1.0"

func main() {
	defaultVerbose := env.Bool("LOADALIGN_VERBOSE")
	defaultAlignBytes := env.Int("LOADALIGN_ALIGN_BYTES", 16)

	var versionShort = flag.Bool("V", false, "print version information and exit")
	var version = flag.Bool("version", false, "print version information and exit")
	var verbose = flag.Bool("v", defaultVerbose, "verbose mode (trace context push/pop and rewrite stages)")
	var verboseLong = flag.Bool("verbose", defaultVerbose, "verbose mode (trace context push/pop and rewrite stages)")
	var alignBytes = flag.Int("align", defaultAlignBytes, "natural vector width in bytes for the demo target")
	var scenarioName = flag.String("scenario", "", "run only the named scenario (default: run all)")
	flag.Parse()

	if *version || *versionShort {
		fmt.Println(versionString)
		os.Exit(0)
	}

	align.Trace = *verbose || *verboseLong

	if align.Trace {
		fmt.Fprintf(os.Stderr, "DEBUG c67align: verbose mode enabled, host page size %d bytes\n", hostPageSizeBytes())
	}

	scenarios := Scenarios()
	for i := range scenarios {
		scenarios[i].Target.NaturalVectorBytes = *alignBytes
	}

	ran := 0
	for _, s := range scenarios {
		if *scenarioName != "" && s.Name != *scenarioName {
			continue
		}
		ran++
		runAndPrint(s)
	}

	if *scenarioName != "" && ran == 0 {
		fmt.Fprintf(os.Stderr, "c67align: no scenario named %q (known scenarios: %s)\n", *scenarioName, scenarioNames(scenarios))
		os.Exit(1)
	}
}

func runAndPrint(s Scenario) {
	fmt.Printf("=== %s (align=%d bytes) ===\n", s.Name, s.Target.NaturalVectorBytes)
	input, output, findings := RunScenario(s)
	fmt.Printf("  in:  %s\n", input)
	fmt.Printf("  out: %s\n", output)
	if len(findings) == 0 {
		fmt.Println("  surviving unaligned loads: none")
		return
	}
	for _, f := range findings {
		fmt.Printf("  surviving unaligned load: %s\n", f)
	}
}

func scenarioNames(scenarios []Scenario) string {
	names := ""
	for i, s := range scenarios {
		if i > 0 {
			names += ", "
		}
		names += s.Name
	}
	return names
}
