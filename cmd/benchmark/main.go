// Command benchmark is a small CLI front end over the correction engine:
// it trains (or loads) a language model and runs FixFragment over stdin,
// optionally printing, after each corrected line, a JSON report of the
// top ranked candidates for every flagged token. It lives outside the
// engine package itself, kept here as a runnable demonstration of the library.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"contextspell"
	"contextspell/langmodel"
	"contextspell/verbosity"
)

func parseVerbosity(s string) verbosity.Verbosity {
	switch s {
	case "closest":
		return verbosity.Closest
	case "all":
		return verbosity.All
	default:
		return verbosity.Top
	}
}

func main() {
	corpus := flag.String("corpus", "", "training corpus text file")
	alphabet := flag.String("alphabet", "", "alphabet file (characters usable in edits)")
	modelPath := flag.String("model", "model.bin", "path to load/write the trained model")
	verbosityFlag := flag.String("verbosity", "top", "top|closest|all: how many ranked candidates to print per token")
	flag.Parse()

	e := contextspell.NewEngine(langmodel.NewNgramModel())

	if *corpus != "" && *alphabet != "" {
		if !e.TrainLangModel(*corpus, *alphabet, *modelPath) {
			fmt.Fprintln(os.Stderr, "training failed")
			os.Exit(1)
		}
	} else if !e.LoadLangModel(*modelPath) {
		fmt.Fprintln(os.Stderr, "failed to load model; pass -corpus and -alphabet to train one")
		os.Exit(1)
	}

	v := parseVerbosity(*verbosityFlag)

	const fullCandidateLimit = 7

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Println(e.FixFragment(line))

		limit := v.CandidateLimit(fullCandidateLimit)
		if limit == 0 {
			continue
		}

		report, err := e.GetCandidatesScoredJSON(line, limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "json report failed:", err)
			continue
		}
		fmt.Println(report)
	}
}
