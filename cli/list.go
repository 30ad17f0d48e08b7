package cli

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tierfs/client"
	"tierfs/client/options"
	"tierfs/wire"
)

type listFlags struct {
	recursive    bool
	force        bool
	dirAsFile    bool
	pinned       bool
	loadMetadata string
}

func (f listFlags) options() (*options.ListStatusOptions, error) {
	lmt, err := wire.ParseLoadMetadataType(f.loadMetadata)
	if err != nil {
		return nil, err
	}
	return options.ListStatusDefaults().
		SetLoadMetadataType(lmt).
		SetRecursive(f.recursive).
		SetForceMetadataReload(f.force).
		SetDirAsFile(f.dirAsFile).
		SetPinned(f.pinned), nil
}

func newListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "ls path",
		Short: "List the content of a directory",
		Long: `List the content of a directory with permissions, size, pin state and TTL.

Examples:
  # List a folder of the store s3
  tierfs ls s3/data

  # List only pinned files, reloading metadata from the under file system
  tierfs ls -R -p --load-metadata always s3/data`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := flags.options()
			if err != nil {
				return err
			}
			f, _, ph, err := GetFS(args[0])
			if err != nil {
				return err
			}
			return List(cmd.OutOrStdout(), f, ph, o)
		},
	}
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "R", false, "list subdirectories recursively")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "bypass cached metadata")
	cmd.Flags().BoolVarP(&flags.dirAsFile, "directory", "d", false, "list directories as plain files")
	cmd.Flags().BoolVarP(&flags.pinned, "pinned", "p", false, "list only pinned files")
	cmd.Flags().StringVar(&flags.loadMetadata, "load-metadata", wire.Once.String(),
		"when to load metadata from the under file system: never, once or always")
	return cmd
}

func formatTTL(ttl int64) string {
	if ttl == wire.NoTTL {
		return "-"
	}
	return strconv.FormatInt(ttl, 10)
}

func formatPinned(pinned bool) string {
	if pinned {
		return "PINNED"
	}
	return ""
}

func statusRow(st client.URIStatus) []string {
	return []string{
		FormatPermission(st.Mode, st.Folder),
		humanize.Bytes(uint64(st.Length)),
		formatPinned(st.Pinned),
		formatTTL(st.TTL),
		ConvertMsToDate(st.LastModificationTimeMs),
		st.Path,
	}
}

// List prints the listing of ph as a table.
func List(w io.Writer, f client.FileSystem, ph string, o *options.ListStatusOptions) error {
	sts, err := f.ListStatus(ph, o)
	if err != nil {
		return toIOError(err)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Permission", "Size", "Pin", "TTL", "Modified", "Path"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, st := range sts {
		table.Append(statusRow(st))
	}
	table.Render()
	return nil
}
