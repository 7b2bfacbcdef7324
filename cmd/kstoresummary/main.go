// kstoresummary is a convenience tool to summarize the site k store:
// per-key sample counts, order statistics, and a terminal histogram of
// the measured calibration constants.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"

	"github.com/petplan/petplan/kstore"
)

func main() {
	var (
		storePath string
		key       string
		bins      int
	)

	flag.StringVar(&storePath, "store", "k_store.json", "Path to the site k store")
	flag.StringVar(&key, "key", "", "Optional: restrict to one {TRACER}_{PROFILE} key")
	flag.IntVar(&bins, "bins", 10, "Histogram bucket count")
	flag.Parse()

	store, status := kstore.New(storePath).Load()
	switch status {
	case kstore.LoadNotFound:
		log.Fatalln("No k store found at", storePath)
	case kstore.LoadParseError:
		log.Fatalln("k store at", storePath, "is unreadable")
	}

	keys := make([]string, 0, len(store))
	for k := range store {
		if key != "" && k != key {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		log.Fatalln("No measurements to summarize")
	}

	fmt.Println(strings.Join([]string{"Key", "N", "Mean", "SD", "Median", "P25", "P75"}, "\t"))

	for _, k := range keys {
		if err := summarizeKey(k, store[k]); err != nil {
			log.Fatalln(err)
		}
	}

	for _, k := range keys {
		vals := store[k]
		if len(vals) < 2 {
			continue
		}

		fmt.Printf("\n%s (n=%d):\n", k, len(vals))
		hist := histogram.Hist(bins, vals)
		if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
			log.Fatalln(err)
		}
	}
}

func summarizeKey(key string, vals []float64) error {
	if len(vals) == 0 {
		fmt.Println(strings.Join([]string{key, "0", "N/A", "N/A", "N/A", "N/A", "N/A"}, "\t"))
		return nil
	}

	data := stats.Float64Data(vals)

	mean, err := data.Mean()
	if err != nil {
		return err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return err
	}
	median, err := data.Median()
	if err != nil {
		return err
	}
	p25, err := data.Percentile(25)
	if err != nil {
		return err
	}
	p75, err := data.Percentile(75)
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%d\t%.5f\t%.5f\t%.5f\t%.5f\t%.5f\n", key, len(vals), mean, sd, median, p25, p75)

	return nil
}
