package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ghettovoice/gouri/internal/errorutil"
)

const envPrefix = "urictl"

// checkEnvironmentVariables sets flags that were not given on the command line
// from the URICTL_<FLAG> environment variables.
func checkEnvironmentVariables(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if f.Changed || !v.IsSet(name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
			errs = append(errs, err)
		}
	})
	return errorutil.JoinPrefix("map environment variables to flags:", errs...) //errtrace:skip
}
