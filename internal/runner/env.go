package runner

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"mvdan.cc/sh/v3/syntax"
)

// Environ returns the current process environment with the variables from
// the dotenv file at path applied on top. An empty path returns
// os.Environ() unchanged.
func Environ(path string) ([]string, error) {
	env := os.Environ()
	if path == "" {
		return env, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(env)+len(vars))
	for _, kv := range env {
		name, _, _ := strings.Cut(kv, "=")
		if _, overridden := vars[name]; overridden {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range keys {
		out = append(out, k+"="+vars[k])
	}
	return out, nil
}

// Quote renders argv as a single bash command line.
func Quote(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", arg)
		}
		parts[i] = q
	}
	return strings.Join(parts, " ")
}
