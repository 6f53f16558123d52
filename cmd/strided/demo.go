package main

import (
	"fmt"

	"github.com/born-ml/strided/tensor"
	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	var dtypeName string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the basic views, scalar ops and batched matmul example",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dtype, err := tensor.ParseDataType(dtypeName)
			if err != nil {
				return err
			}
			debugEnv()
			return runDemo(cmd, dtype)
		},
	}

	cmd.Flags().StringVar(&dtypeName, "dtype", "int32", "Element type (uint8, int32, float32)")
	return cmd
}

func runDemo(cmd *cobra.Command, dtype tensor.DataType) error {
	out := cmd.OutOrStdout()

	a, err := tensor.Ones(tensor.Shape{2, 5, 8}, dtype)
	if err != nil {
		return err
	}
	b, err := tensor.Ones(tensor.Shape{2, 8, 5}, dtype)
	if err != nil {
		return err
	}

	first, err := a.Index(0)
	if err != nil {
		return err
	}
	first.MulInPlace(2).AddInPlace(1.5)
	fmt.Fprintf(out, "a[0] after *2 then +1.5:\n%s\n\n", first)

	c, err := a.Mul(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "a @ b:\n%s\n", c)
	return nil
}
