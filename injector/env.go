package injector

import (
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/errgo.v1"
)

//go:generate mockgen -destination=mocks/env_source_gen.go -package=mock github.com/Directly-web/direkli-landing/injector EnvSource

// EnvSource looks up configuration values by variable name.
type EnvSource interface {
	Lookup(key string) (string, bool)
}

// MapEnv is an EnvSource backed by a plain map.
type MapEnv map[string]string

// Lookup implements EnvSource.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvFromEnviron builds a MapEnv from "key=value" pairs in the form returned
// by os.Environ. Entries without "=" are ignored.
func EnvFromEnviron(environ []string) MapEnv {
	envMap := make(MapEnv, len(environ))
	for _, v := range environ {
		key, value, ok := strings.Cut(v, "=")
		if !ok {
			continue
		}
		envMap[key] = value
	}
	return envMap
}

// LoadEnvFile reads a dotenv file without touching the process environment.
func LoadEnvFile(path string) (MapEnv, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errgo.WithCausef(err, ErrMissingConfiguration, "cannot read env file %s", path)
	}
	return MapEnv(vars), nil
}

// Layered consults each source in order and returns the first non-empty
// value. A variable set to "" in an earlier source does not hide a value in
// a later one.
type Layered []EnvSource

// Lookup implements EnvSource.
func (l Layered) Lookup(key string) (string, bool) {
	found := false
	for _, src := range l {
		v, ok := src.Lookup(key)
		if v != "" {
			return v, true
		}
		found = found || ok
	}
	return "", found
}

// Acquire returns the value of the named variable. An unset or empty
// variable is an ErrMissingConfiguration.
func Acquire(env EnvSource, name string) (string, error) {
	value, _ := env.Lookup(name)
	if value == "" {
		return "", errgo.WithCausef(nil, ErrMissingConfiguration, "%s environment variable is not set", name)
	}
	return value, nil
}
