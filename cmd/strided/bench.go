package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/born-ml/strided/internal/backend/cpu"
	"github.com/born-ml/strided/internal/envconfig"
	"github.com/born-ml/strided/internal/interop"
	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/tensor"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// benchCase multiplies A (shape a) by B (shape b) runs times.
type benchCase struct {
	name string
	a, b tensor.Shape
	runs int
}

type benchResult struct {
	benchCase
	engine time.Duration
	gonum  time.Duration
	match  bool
}

func newBenchCmd() *cobra.Command {
	var (
		smallRuns int
		largeRuns int
		threads   uint
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare batched matmul against gonum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debugEnv()
			if !cmd.Flags().Changed("threads") {
				threads = envconfig.NumThreads()
			}
			backend := cpu.NewWithConfig(parallel.WithWorkers(int(threads)))

			cases := []benchCase{
				{"small", tensor.Shape{1, 2, 5, 8}, tensor.Shape{1, 2, 8, 5}, smallRuns},
				{"large", tensor.Shape{10, 20, 50, 80}, tensor.Shape{10, 20, 80, 50}, largeRuns},
			}
			results := make([]benchResult, 0, len(cases))
			for _, bc := range cases {
				r, err := runBench(backend, bc)
				if err != nil {
					return fmt.Errorf("%s: %w", bc.name, err)
				}
				results = append(results, r)
			}
			renderBench(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().IntVar(&smallRuns, "small-runs", 10000, "Repetitions of the small case")
	cmd.Flags().IntVar(&largeRuns, "large-runs", 10, "Repetitions of the large case")
	cmd.Flags().UintVar(&threads, "threads", 1, "Workers for batch-parallel matmul (default from STRIDED_NUM_THREADS)")
	return cmd
}

// runBench times bc on the engine and on gonum, one float32 product per run,
// and checks that both produce the same values.
func runBench(backend *cpu.CPUBackend, bc benchCase) (benchResult, error) {
	res := benchResult{benchCase: bc}

	a, err := backend.Fill(bc.a, tensor.Float32, 0.5)
	if err != nil {
		return res, err
	}
	b, err := backend.Fill(bc.b, tensor.Float32, 0.25)
	if err != nil {
		return res, err
	}
	at, bt := tensor.New(a, backend), tensor.New(b, backend)

	var c *tensor.Tensor
	start := time.Now()
	for i := 0; i < bc.runs; i++ {
		if c, err = at.MatMul(bt); err != nil {
			return res, err
		}
	}
	res.engine = time.Since(start)

	as, err := interop.ToDenseBatch(a)
	if err != nil {
		return res, err
	}
	bs, err := interop.ToDenseBatch(b)
	if err != nil {
		return res, err
	}
	dst := make([]mat.Dense, len(as))

	start = time.Now()
	for i := 0; i < bc.runs; i++ {
		for j := range as {
			dst[j].Reset()
			dst[j].Mul(as[j], bs[j])
		}
	}
	res.gonum = time.Since(start)

	res.match = true
	if c != nil {
		cs, err := interop.ToDenseBatch(c.Raw())
		if err != nil {
			return res, err
		}
		for j := range cs {
			if !mat.EqualApprox(cs[j], &dst[j], 1e-3) {
				res.match = false
				break
			}
		}
	}

	slog.Debug("bench", "case", bc.name, "runs", bc.runs, "engine", res.engine, "gonum", res.gonum)
	return res, nil
}

func perRun(d time.Duration, runs int) string {
	if runs <= 0 {
		return "-"
	}
	return (d / time.Duration(runs)).String()
}

func renderBench(w io.Writer, results []benchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"CASE", "A", "B", "RUNS", "ENGINE/RUN", "GONUM/RUN", "RATIO", "MATCH"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, r := range results {
		ratio := "-"
		if r.gonum > 0 {
			ratio = strconv.FormatFloat(float64(r.engine)/float64(r.gonum), 'f', 2, 64)
		}
		table.Append([]string{
			r.name,
			fmt.Sprint([]int(r.a)),
			fmt.Sprint([]int(r.b)),
			strconv.Itoa(r.runs),
			perRun(r.engine, r.runs),
			perRun(r.gonum, r.runs),
			ratio,
			strconv.FormatBool(r.match),
		})
	}
	table.Render()
}
