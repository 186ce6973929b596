// ntt-demo replays the reference vectors of the transform, checks a random
// product against the schoolbook algorithm and can chart transform timings.
//
//	ntt-demo -n 4096 -variant gs -sweep 16 -chart ntt.html
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	ntt "github.com/jonathanmweiss/go-ntt"
	"github.com/jonathanmweiss/go-ntt/field"
)

// naiveLimit bounds the sizes the schoolbook product is run on.
const naiveLimit = 1 << 13

func main() {
	var (
		n        = flag.Int("n", 1024, "Length of the random self-check operands")
		seed     = flag.String("seed", "ntt-demo", "Seed for the SHAKE128 operand sampler")
		variantS = flag.String("variant", "ct", "Forward network: ct (decimation in time) or gs (decimation in frequency)")
		sweep    = flag.Int("sweep", 0, "Time transforms for n = 2^1 .. 2^sweep (0 disables)")
		reps     = flag.Int("reps", 20, "Repetitions per timed size")
		chart    = flag.String("chart", "", "Write the sweep as an HTML line chart to this path")
	)
	flag.Parse()

	variant, err := ntt.ParseVariant(*variantS)
	if err != nil {
		log.Fatal(err)
	}

	if err := referenceVectors(variant); err != nil {
		log.Fatalf("reference vectors: %v", err)
	}

	if err := selfCheck(variant, *n, *seed); err != nil {
		log.Fatalf("self check: %v", err)
	}

	if *sweep <= 0 {
		return
	}

	if *sweep > field.MaxLogN {
		log.Fatalf("sweep must be at most %d", field.MaxLogN)
	}

	rows, err := timeSweep(*sweep, *reps, *seed)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	for _, r := range rows {
		log.Printf("n=2^%-2d ct=%10s gs=%10s mul=%10s naive=%10s", r.logN, r.ct, r.gs, r.mul, naiveLabel(r))
	}

	if *chart != "" {
		if err := renderChart(*chart, rows); err != nil {
			log.Fatalf("chart: %v", err)
		}
		log.Printf("chart written to %s", *chart)
	}
}

func referenceVectors(v ntt.Variant) error {
	coefficients := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	og := slices.Clone(coefficients)

	if err := ntt.ForwardWith(v, coefficients, len(coefficients), field.PrimitiveRoot); err != nil {
		return err
	}
	log.Printf("NTT (%v): %v", v, coefficients)

	if err := ntt.Inverse(coefficients, len(coefficients), field.PrimitiveRoot); err != nil {
		return err
	}
	log.Printf("Inverse NTT: %v", coefficients)

	if !slices.Equal(og, coefficients) {
		return fmt.Errorf("round trip: got %v, want %v", coefficients, og)
	}

	vec0 := []uint64{4, 1, 4, 2, 1, 3, 5, 6}
	vec1 := []uint64{6, 1, 8, 0, 3, 3, 9, 8}
	expected := []uint64{123, 120, 106, 92, 139, 144, 140, 124}

	if err := ntt.Convolve(vec0, vec1, v); err != nil {
		return err
	}
	log.Printf("Convolution: %v", vec0)

	if !slices.Equal(expected, vec0) {
		return fmt.Errorf("convolution: got %v, want %v", vec0, expected)
	}

	return nil
}

func selfCheck(v ntt.Variant, n int, seed string) error {
	a := field.SampleUniform([]byte(seed+"/a"), n)
	b := field.SampleUniform([]byte(seed+"/b"), n)

	got, err := ntt.MultiplyWith(v, a, b)
	if err != nil {
		return err
	}

	if n <= naiveLimit {
		if want := ntt.MulNaive(a, b); !slices.Equal(want, got) {
			return fmt.Errorf("product of two length-%d operands differs from the schoolbook result", n)
		}
		log.Printf("product of two length-%d operands matches the schoolbook result", n)
	}

	size := ntt.ProductLength(len(got), 1)
	padded := make([]uint64, size)
	copy(padded, got)
	orig := slices.Clone(padded)

	if err := ntt.ForwardWith(v, padded, size, field.PrimitiveRoot); err != nil {
		return err
	}

	if err := ntt.Inverse(padded, size, field.PrimitiveRoot); err != nil {
		return err
	}

	if !slices.Equal(orig, padded) {
		return fmt.Errorf("round trip of length %d failed", size)
	}
	log.Printf("round trip of length %d ok", size)

	return nil
}

type sweepRow struct {
	logN         int
	ct, gs, mul  time.Duration
	naive        time.Duration
	naiveSkipped bool
}

func naiveLabel(r sweepRow) string {
	if r.naiveSkipped {
		return "-"
	}

	return r.naive.String()
}

func timeSweep(maxLog, reps int, seed string) ([]sweepRow, error) {
	if reps < 1 {
		reps = 1
	}

	rows := make([]sweepRow, 0, maxLog)
	for h := 1; h <= maxLog; h++ {
		n := 1 << h
		src := field.SampleUniform([]byte(seed+"/sweep/"+strconv.Itoa(h)), n)
		buf := make([]uint64, n)

		row := sweepRow{logN: h}
		for _, v := range []ntt.Variant{ntt.CT, ntt.GS} {
			var total time.Duration
			for i := 0; i < reps; i++ {
				copy(buf, src)
				start := time.Now()
				if err := ntt.ForwardWith(v, buf, n, field.PrimitiveRoot); err != nil {
					return nil, err
				}
				total += time.Since(start)
			}

			if v == ntt.CT {
				row.ct = total / time.Duration(reps)
			} else {
				row.gs = total / time.Duration(reps)
			}
		}

		half := src[:n/2]
		start := time.Now()
		for i := 0; i < reps; i++ {
			if _, err := ntt.Multiply(half, half); err != nil {
				return nil, err
			}
		}
		row.mul = time.Since(start) / time.Duration(reps)

		row.naiveSkipped = n > naiveLimit
		if !row.naiveSkipped {
			start = time.Now()
			for i := 0; i < reps; i++ {
				ntt.MulNaive(half, half)
			}
			row.naive = time.Since(start) / time.Duration(reps)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func micros(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e3
}

func renderChart(path string, rows []sweepRow) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "NTT timings over GF(998244353)",
			Subtitle: "mean microseconds per call",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "n"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "µs", Type: "log"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)

	labels := make([]string, 0, len(rows))
	ct := make([]opts.LineData, 0, len(rows))
	gs := make([]opts.LineData, 0, len(rows))
	mul := make([]opts.LineData, 0, len(rows))
	naive := make([]opts.LineData, 0, len(rows))

	for _, r := range rows {
		labels = append(labels, "2^"+strconv.Itoa(r.logN))
		ct = append(ct, opts.LineData{Value: micros(r.ct)})
		gs = append(gs, opts.LineData{Value: micros(r.gs)})
		mul = append(mul, opts.LineData{Value: micros(r.mul)})
		if r.naiveSkipped {
			naive = append(naive, opts.LineData{Value: "-"})
		} else {
			naive = append(naive, opts.LineData{Value: micros(r.naive)})
		}
	}

	line.SetXAxis(labels).
		AddSeries("forward ct", ct).
		AddSeries("forward gs", gs).
		AddSeries("multiply (ntt)", mul).
		AddSeries("multiply (schoolbook)", naive)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
