package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func setLogLevel(verbose, verbose2 bool) {
	switch {
	case verbose2:
		logrus.SetLevel(logrus.DebugLevel)
	case verbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// NewRootCmd builds the tierfs command tree.
func NewRootCmd() *cobra.Command {
	var verbose, verbose2 bool

	root := &cobra.Command{
		Use:   "tierfs",
		Short: "Inspect and change the metadata of a tiered file system",
		Long: fmt.Sprintf(`tierfs lists paths and changes their pin state and time to live.

A path is either local (./dir, /tmp/file) or store/path where store.yaml is a store
configuration in %s. Define TIERFS_HOME for a different location.`, GetHome()),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setLogLevel(verbose, verbose2)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shows verbose log")
	root.PersistentFlags().BoolVar(&verbose2, "vv", false, "shows very verbose log")

	root.AddCommand(
		newListCmd(),
		newStatCmd(),
		newPinCmd(),
		newUnpinCmd(),
		newSetTTLCmd(),
		newUnsetTTLCmd(),
		newCreateCmd(),
	)
	return root
}

// Execute runs root and closes the file systems it opened, whether the command fails or not.
func Execute(root *cobra.Command) error {
	defer CloseAllFss()
	return root.Execute()
}

// Process runs the command line.
func Process() error {
	return Execute(NewRootCmd())
}
