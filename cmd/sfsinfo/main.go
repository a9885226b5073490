// Command sfsinfo integrates a model allele-frequency density into a site
// frequency spectrum and prints it together with its summary statistics.
//
// Usage:
//
//	sfsinfo [flags]
//
// With -pops 1 (the default) it prints the spectrum bins plus Watterson's
// theta, pi and Tajima's D. With -pops 2 it prints the joint spectrum's Fst,
// and with -resample additionally the Fst of the pooled-and-redealt null
// spectrum.
//
// Examples:
//
//	sfsinfo -n 10
//	sfsinfo -n 20 -points 101 -theta0 4
//	sfsinfo -pops 2 -n 8 -resample
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-popgen/discretize"
	"github.com/cwbudde/algo-popgen/stats"
)

func main() {
	n := flag.Int("n", 10, "haploid sample size per population")
	points := flag.Int("points", 51, "frequency grid points over [0,1]")
	theta0 := flag.Float64("theta0", 1, "constant density scale")
	pops := flag.Int("pops", 1, "number of populations (1 or 2)")
	resample := flag.Bool("resample", false, "with -pops 2, also print the resampled null Fst")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sfsinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Integrates a constant allele-frequency density and prints the\n")
		fmt.Fprintf(os.Stderr, "resulting site frequency spectrum with its summary statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sfsinfo -n 20 -points 101\n")
		fmt.Fprintf(os.Stderr, "  sfsinfo -pops 2 -n 8 -resample\n")
	}
	flag.Parse()

	if *n < 1 || *points < 2 {
		fmt.Fprintf(os.Stderr, "error: need -n >= 1 and -points >= 2\n")
		os.Exit(1)
	}

	grid := uniformGrid(*points)
	switch *pops {
	case 1:
		runSingle(*n, grid, *theta0)
	case 2:
		runJoint(*n, grid, *theta0, *resample)
	default:
		fmt.Fprintf(os.Stderr, "error: -pops must be 1 or 2\n")
		os.Exit(1)
	}
}

func uniformGrid(points int) []float64 {
	grid := make([]float64, points)
	for i := range grid {
		grid[i] = float64(i) / float64(points-1)
	}
	grid[points-1] = 1

	return grid
}

func constantDensity(value float64, size int) []float64 {
	phi := make([]float64, size)
	for i := range phi {
		phi[i] = value
	}

	return phi
}

func runSingle(n int, grid []float64, theta0 float64) {
	model, err := discretize.FromPhi1D(n, grid, constantDensity(theta0, len(grid)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Derived count\tSites\n")
	fmt.Fprintf(tw, "-------------\t-----\n")
	for i := 0; i < model.Len(); i++ {
		fmt.Fprintf(tw, "%d\t%.6f\n", i, model.AtFlat(i))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	theta, _ := stats.WattersonTheta(model)
	pi, _ := stats.Pi(model)
	d, _ := stats.TajimaD(model)

	fmt.Printf("\nsegregating sites: %.6f\n", stats.SegregatingSites(model))
	fmt.Printf("Watterson theta:   %.6f\n", theta)
	fmt.Printf("pi:                %.6f\n", pi)
	fmt.Printf("Tajima's D:        %.6f\n", d)
}

func runJoint(n int, grid []float64, theta0 float64, resample bool) {
	phi := constantDensity(theta0, len(grid)*len(grid))
	model, err := discretize.FromPhi2D(n, n, grid, grid, phi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	masked := model.MaskCorners()
	fst, _ := stats.Fst(masked)
	fmt.Printf("segregating sites: %.6f\n", masked.Sum())
	fmt.Printf("Fst:               %.6f\n", fst)

	if resample {
		redealt, err := stats.RandomlyResampled2D(masked)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		nullFst, _ := stats.Fst(redealt.MaskCorners())
		fmt.Printf("resampled Fst:     %.6f\n", nullFst)
	}
}
