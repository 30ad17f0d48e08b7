package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"tierfs/client"
	"tierfs/master"
	"tierfs/ufs"
)

// StoreConfig is the content of <home>/<name>.yaml.
type StoreConfig struct {
	ufs.Config `yaml:",inline"`
	Client     client.Config `json:"client" yaml:"client"`
}

var fsCache = map[string]client.FileSystem{}
var home string

func GetHome() string {
	if home != "" {
		return home
	}

	home = os.Getenv("TIERFS_HOME")
	if home == "" {
		configDir, _ := os.UserConfigDir()
		home = filepath.Join(configDir, "tierfs")
		_ = os.MkdirAll(home, 0755)
	}
	return home
}

func isLocalPath(ph string) bool {
	if strings.HasPrefix(ph, ".") || strings.HasPrefix(ph, string(os.PathSeparator)) || strings.HasPrefix(ph, "/") {
		return true
	}

	if runtime.GOOS == "windows" && len(ph) >= 2 && ph[1] == ':' {
		return true
	}

	return false
}

func newFileSystem(f ufs.FS, c client.Config) (client.FileSystem, error) {
	m, err := master.New(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return client.NewFileSystem(m, c), nil
}

// GetFS resolves store/some/path to the file system of the store and the path /some/path in
// it. Local paths are served by a file system mounted on their parent folder.
func GetFS(ph string) (f client.FileSystem, name, ph2 string, err error) {
	if isLocalPath(ph) {
		abs, err := filepath.Abs(ph)
		if err != nil {
			return nil, "", "", err
		}
		dir, base := filepath.Split(abs)
		if base == "" {
			dir, base = abs, ""
		}
		key := "file://" + filepath.Clean(dir)
		if f = fsCache[key]; f == nil {
			f, err = newFileSystem(ufs.NewLocalMount(dir), client.Config{})
			if err != nil {
				return nil, "", "", err
			}
			fsCache[key] = f
		}
		return f, ".", path.Join("/", base), nil
	}

	name = strings.Split(ph, "/")[0]

	var found bool
	if f, found = fsCache[name]; !found {
		home := GetHome()
		logrus.Infof("home is '%s'", home)

		var c StoreConfig
		l := ufs.NewLocalMount(home)
		err := ufs.ReadYaml(l, fmt.Sprintf("%s.yaml", name), &c)
		if err != nil {
			color.Red("store '%s' not defined", name)
			logrus.Infof("cannot load '%s' from '%s': %v", name, home, err)
			return nil, "", "", err
		}

		u, err := ufs.NewFS(c.Config)
		if err != nil {
			color.Red("connection fail on store '%s': %v", name, err)
			logrus.Infof("cannot connect to load '%s': %v", name, err)
			return nil, name, "", err
		}

		f, err = newFileSystem(u, c.Client)
		if err != nil {
			color.Red("cannot read the namespace of store '%s': %v", name, err)
			return nil, name, "", err
		}
		fsCache[name] = f
	}

	return f, name, path.Join("/", ph[len(name):]), nil
}

// CloseAllFss closes the file systems opened by GetFS, stores and local paths alike.
func CloseAllFss() {
	for _, f := range fsCache {
		_ = f.Close()
	}

	fsCache = map[string]client.FileSystem{}
}
