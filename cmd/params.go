package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gophercp/cp"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the resolved solver parameters",
	RunE:  runParams,
}

// ParametersFromViper reads the three configuration options of spec.md
// §6 (array_split_size, cache_initial_size, trail_chunk_size) out of v,
// falling back to cp.DefaultParameters for anything unset.
func ParametersFromViper(v *viper.Viper) cp.Parameters {
	def := cp.DefaultParameters()
	p := def
	if v.IsSet("array_split_size") {
		p.ArraySplitSize = v.GetInt("array_split_size")
	}
	if v.IsSet("cache_initial_size") {
		p.CacheInitialSize = v.GetInt("cache_initial_size")
	}
	if v.IsSet("trail_chunk_size") {
		p.TrailChunkSize = v.GetInt("trail_chunk_size")
	}
	return p
}

func runParams(cmd *cobra.Command, args []string) error {
	params := ParametersFromViper(viper.GetViper())
	out, err := yaml.Marshal(params)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
