package cli

import (
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin path...",
		Short: "Pin paths so that the storage tier never evicts them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Pin(args, true)
		},
	}
}

func newUnpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin path...",
		Short: "Unpin paths so that the storage tier can evict them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Pin(args, false)
		},
	}
}

// Pin changes the pin state of every path, even when some of them fail.
func Pin(args []string, pinned bool) error {
	var errs *multierror.Error
	for _, arg := range args {
		f, _, ph, err := GetFS(arg)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		if err := SetPinned(f, ph, pinned); err != nil {
			color.Red("cannot change the pin state of '%s': %v", arg, err)
			errs = multierror.Append(errs, err)
			continue
		}
		if pinned {
			color.Green("'%s' was successfully pinned", arg)
		} else {
			color.Green("'%s' was successfully unpinned", arg)
		}
	}
	return errs.ErrorOrNil()
}
