// Command atsmatch scores a resume against a job description from the shell.
//
//	atsmatch score --resume resume.pdf --jd job.txt --out ats-real-report.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
