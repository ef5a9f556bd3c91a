package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BartSte/bartste-prompts/pkg/types"
	"github.com/tidwall/jsonc"
)

var (
	envPattern  = regexp.MustCompile(`\{env:([^}]+)\}`)
	filePattern = regexp.MustCompile(`\{file:([^}]+)\}`)
)

// Load loads configuration from multiple sources (priority order):
// 1. Global config ($XDG_CONFIG_HOME/prompts/prompts.json[c])
// 2. Project config (.prompts.json[c] and .prompts/prompts.json[c])
// 3. PROMPTS_CONFIG file
// 4. Environment variables
//
// Missing files are skipped. A file that exists but does not parse is an error.
func Load(directory string) (*types.Config, error) {
	config := &types.Config{}

	loaded := make(map[string]bool)

	loadOnce := func(path string) error {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil
		}
		if loaded[absPath] {
			return nil
		}
		err = loadConfigFile(absPath, config)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
		loaded[absPath] = true
		return nil
	}

	candidates := []string{}

	// 1. Global config
	globalPath := GetPaths().Config
	candidates = append(candidates,
		filepath.Join(globalPath, "prompts.json"),
		filepath.Join(globalPath, "prompts.jsonc"),
	)

	// 2. Project config
	if directory != "" {
		projectConfigDir := filepath.Join(directory, ".prompts")
		candidates = append(candidates,
			filepath.Join(directory, ".prompts.json"),
			filepath.Join(directory, ".prompts.jsonc"),
			filepath.Join(projectConfigDir, "prompts.json"),
			filepath.Join(projectConfigDir, "prompts.jsonc"),
		)
	}

	// 3. PROMPTS_CONFIG file override
	if configPath := os.Getenv("PROMPTS_CONFIG"); configPath != "" {
		candidates = append(candidates, configPath)
	}

	for _, path := range candidates {
		if err := loadOnce(path); err != nil {
			return nil, err
		}
	}

	// 4. Environment variables (highest priority)
	applyEnvOverrides(config)

	return config, nil
}

// loadConfigFile loads a single config file with interpolation support.
// Relative instruction roots are resolved against the file's directory.
func loadConfigFile(path string, config *types.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(path)

	// Strip JSONC comments and trailing commas
	data = jsonc.ToJSON(data)

	data = interpolate(data, baseDir)

	var fileConfig types.Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	for i, dir := range fileConfig.Instructions {
		fileConfig.Instructions[i] = resolvePath(dir, baseDir)
	}
	if fileConfig.LogFile != "" {
		fileConfig.LogFile = resolvePath(fileConfig.LogFile, baseDir)
	}
	if fileConfig.Assistant != nil && fileConfig.Assistant.EnvFile != "" {
		fileConfig.Assistant.EnvFile = resolvePath(fileConfig.Assistant.EnvFile, baseDir)
	}

	mergeConfig(config, &fileConfig)
	return nil
}

// resolvePath expands ~/ and makes relative paths relative to baseDir.
func resolvePath(path, baseDir string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(os.Getenv("HOME"), path[2:])
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}
	return path
}

// interpolate processes {env:VAR} and {file:path} placeholders.
func interpolate(data []byte, baseDir string) []byte {
	str := string(data)

	str = envPattern.ReplaceAllStringFunc(str, func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		return escapeJSON(os.Getenv(varName))
	})

	str = filePattern.ReplaceAllStringFunc(str, func(match string) string {
		filePath := resolvePath(filePattern.FindStringSubmatch(match)[1], baseDir)

		content, err := os.ReadFile(filePath)
		if err != nil {
			return match // Keep original if file not found
		}
		return escapeJSON(strings.TrimRight(string(content), "\r\n"))
	})

	return []byte(str)
}

// escapeJSON escapes s for use inside a JSON string literal.
func escapeJSON(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted[1 : len(quoted)-1])
}

// mergeConfig merges source config into target.
// Instruction roots from later sources take priority over earlier ones.
func mergeConfig(target, source *types.Config) {
	if source.Schema != "" {
		target.Schema = source.Schema
	}
	if len(source.Instructions) > 0 {
		target.Instructions = append(append([]string{}, source.Instructions...), target.Instructions...)
	}
	if source.Action != "" {
		target.Action = source.Action
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
	}
	if source.Strict != nil {
		strict := *source.Strict
		target.Strict = &strict
	}

	if source.Assistant != nil {
		if target.Assistant == nil {
			target.Assistant = &types.AssistantConfig{}
		}
		if source.Assistant.Program != "" {
			target.Assistant.Program = source.Assistant.Program
		}
		if len(source.Assistant.Args) > 0 {
			target.Assistant.Args = source.Assistant.Args
		}
		if source.Assistant.EnvFile != "" {
			target.Assistant.EnvFile = source.Assistant.EnvFile
		}
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(config *types.Config) {
	if dirs := os.Getenv("PROMPTS_INSTRUCTIONS"); dirs != "" {
		var roots []string
		for _, dir := range filepath.SplitList(dirs) {
			if dir != "" {
				roots = append(roots, dir)
			}
		}
		config.Instructions = append(roots, config.Instructions...)
	}

	if action := os.Getenv("PROMPTS_ACTION"); action != "" {
		config.Action = action
	}

	if level := os.Getenv("PROMPTS_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	if program := os.Getenv("PROMPTS_ASSISTANT"); program != "" {
		if config.Assistant == nil {
			config.Assistant = &types.AssistantConfig{}
		}
		config.Assistant.Program = program
	}
}

// InstructionRoots returns the on-disk instruction roots in priority order:
// configured roots first, then the user-override directory when it exists.
func InstructionRoots(config *types.Config) []string {
	roots := append([]string{}, config.Instructions...)

	userDir := GetPaths().InstructionsDir()
	if info, err := os.Stat(userDir); err == nil && info.IsDir() {
		roots = append(roots, userDir)
	}

	seen := make(map[string]bool, len(roots))
	unique := roots[:0]
	for _, root := range roots {
		if seen[root] {
			continue
		}
		seen[root] = true
		unique = append(unique, root)
	}
	return unique
}
