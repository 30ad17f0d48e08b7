package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSetTTLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setTtl path ttlMs",
		Short: "Delete a path ttlMs milliseconds from now, pinned or not",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || ttl < 0 {
				return fmt.Errorf("TTL value must be >= 0, got '%s'", args[1])
			}
			return TTL(args[0], ttl)
		},
	}
}

func newUnsetTTLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsetTtl path",
		Short: "Remove the TTL of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return TTL(args[0], NoTTL)
		},
	}
}

// TTL sets or, with NoTTL, unsets the TTL of target.
func TTL(target string, ttlMs int64) error {
	f, _, ph, err := GetFS(target)
	if err != nil {
		return err
	}

	err = SetTTL(f, ph, ttlMs)
	switch {
	case err != nil:
		color.Red("cannot change the TTL of '%s': %v", target, err)
	case ttlMs == NoTTL:
		color.Green("TTL of '%s' was successfully removed", target)
	default:
		color.Green("TTL of '%s' was successfully set to %d milliseconds", target, ttlMs)
	}
	return err
}
