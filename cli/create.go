package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"tierfs/ufs"
)

var storeTypes = []string{"local", "s3", "sftp", "ftp", "memory"}

func getUnixEditor(editor ...string) string {
	for _, e := range editor {
		for _, f := range []string{"/usr/bin", "/bin"} {
			n := filepath.Join(f, e)
			if _, err := os.Stat(n); err == nil {
				return n
			}
		}
	}
	return "vi"
}

func getEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return getUnixEditor("micro", "nano", "vim", "vi")
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       fmt.Sprintf("create [%s]", strings.Join(storeTypes, "|")),
		Short:     "Create a new store configuration",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: storeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Create(args[0])
		},
	}
}

// NewStoreConfig returns an empty configuration for the given store type.
func NewStoreConfig(storeType string) (StoreConfig, error) {
	var c StoreConfig
	switch storeType {
	case "local":
		c.Local = &ufs.LocalConfig{Perm: 0644}
	case "s3":
		c.S3 = &ufs.S3Config{}
	case "sftp":
		c.SFTP = &ufs.SFTPConfig{}
	case "ftp":
		c.FTP = &ufs.FTPConfig{Timeout: 30 * time.Second}
	case "memory":
		c.Memory = true
	default:
		return c, fmt.Errorf("unknown store type '%s'", storeType)
	}
	return c, nil
}

// Create writes a configuration template, opens it in an editor and saves it as <name>.yaml.
func Create(storeType string) error {
	c, err := NewStoreConfig(storeType)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		color.Red("cannot generate %s file: %v", storeType, err)
		return err
	}

	home := GetHome()
	name := filepath.Join(home, fmt.Sprintf("%s-%d.yaml", storeType, time.Now().Unix()))
	if err = os.WriteFile(name, data, 0644); err != nil {
		color.Red("cannot write %s: %v", name, err)
		return err
	}

	cmd := exec.Command(getEditor(), name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		color.Red("Something went wrong: %v", err)
		return err
	}

	data, err = os.ReadFile(name)
	if err != nil {
		return err
	}
	c = StoreConfig{}
	if err = yaml.Unmarshal(data, &c); err != nil {
		color.Red("invalid configuration in %s: %v", name, err)
		return err
	}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		color.Yellow("no name in %s, the store is not available until it is renamed", name)
		return nil
	}
	target := filepath.Join(home, fmt.Sprintf("%s.yaml", c.Name))
	if err = os.Rename(name, target); err != nil {
		color.Red("Cannot rename %s to %s: %v", name, c.Name, err)
		return err
	}
	color.Green("store '%s' created in %s", c.Name, target)
	return nil
}
