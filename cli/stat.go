package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tierfs/client"
)

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat path",
		Short: "Show the status of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, ph, err := GetFS(args[0])
			if err != nil {
				return err
			}
			return Stat(cmd.OutOrStdout(), f, ph)
		},
	}
}

func Stat(w io.Writer, f client.FileSystem, ph string) error {
	st, err := f.GetStatus(ph)
	if err != nil {
		return toIOError(err)
	}

	pinned := "no"
	if st.Pinned {
		pinned = "yes"
	}
	ttl := "none"
	if st.HasTTL() {
		ttl = fmt.Sprintf("%dms", st.TTL)
	}
	_, err = fmt.Fprintf(w, "Path:        %s\nPermission:  %s\nSize:        %d\nPinned:      %s\nTTL:         %s\nCreated:     %s\nModified:    %s\n",
		st.Path,
		FormatPermission(st.Mode, st.Folder),
		st.Length,
		pinned,
		ttl,
		ConvertMsToDate(st.CreationTimeMs),
		ConvertMsToDate(st.LastModificationTimeMs))
	return err
}
