package injector

import (
	"os"
	"path/filepath"
)

// localConfigNames are looked up, in order, in the build directory.
var localConfigNames = []string{"direkli.yaml", "direkli.yml", "direkli.toml"}

// ConfigLocation returns the config file that applies to a build run from
// dir: the first of localConfigNames present in dir. It returns "" when
// there is none. Nothing outside dir is consulted, so the build does not
// depend on the machine it runs on.
func ConfigLocation(dir string) string {
	for _, name := range localConfigNames {
		p := filepath.Join(dir, name)
		if exists(p) {
			return p
		}
	}
	return ""
}

// ResolveConfig loads the config at path, or the one found by
// ConfigLocation(dir) when path is empty. With neither it returns
// DefaultConfig. The second result is the file that was loaded.
func ResolveConfig(path, dir string) (*Config, string, error) {
	if path == "" {
		path = ConfigLocation(dir)
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
