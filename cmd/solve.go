package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crillab/gophercp/cp"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Pack two fixed-size boxes on a strip and print the labeling",
	Long: "solve builds a small built-in model (two 3-wide boxes that must " +
		"not overlap, each starting at x in [0,3]) and runs the default " +
		"leftmost/min-value labeling search over it, the same way the " +
		"teacher's main.go ran a .cnf file straight through Solve and " +
		"printed the result.",
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	params := ParametersFromViper(viper.GetViper())
	s := cp.NewSolver(params)
	s.Verbose, _ = cmd.Flags().GetBool("verbose")

	x := []*cp.IntVar{s.NewIntVar(0, 3, "x0"), s.NewIntVar(0, 3, "x1")}
	y := []*cp.IntVar{s.NewIntVar(0, 0, "y0"), s.NewIntVar(0, 0, "y1")}
	dx := []*cp.IntVar{s.NewIntVar(3, 3, "dx0"), s.NewIntVar(3, 3, "dx1")}
	dy := []*cp.IntVar{s.NewIntVar(1, 1, "dy0"), s.NewIntVar(1, 1, "dy1")}

	if err := s.Post(s.MakeNonOverlappingRectangles(x, y, dx, dy)); err != nil {
		return err
	}

	found, err := s.Label(x)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("UNSAT")
		return nil
	}
	for i, v := range x {
		fmt.Printf("box %d: x=%d\n", i, v.Value())
	}
	return nil
}
