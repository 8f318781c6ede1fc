// Package config resolves daylog settings from, in order of increasing
// precedence: the YAML config file, a .env file, process environment
// variables, and CLI flags. Each resolved value remembers where it came
// from so the resolution can be explained.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath string
	CLIDBPath  string
	CLIAddr    string
	CLINERMode string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath   ResolvedValue `json:"db_path"`
	HTTPAddr ResolvedValue `json:"http_addr"`

	NERMode          ResolvedValue `json:"ner_mode"`
	NERModelPath     ResolvedValue `json:"ner_model_path"`
	NERTokenizerPath ResolvedValue `json:"ner_tokenizer_path"`
	NERLibraryPath   ResolvedValue `json:"ner_library_path"`
}

type fileConfig struct {
	DBPath   string `yaml:"db_path"`
	HTTPAddr string `yaml:"http_addr"`
	NER      struct {
		Mode          string `yaml:"mode"`
		ModelPath     string `yaml:"model_path"`
		TokenizerPath string `yaml:"tokenizer_path"`
		LibraryPath   string `yaml:"library_path"`
	} `yaml:"ner"`
}

// DefaultHTTPAddr is used when no listen address is configured.
const DefaultHTTPAddr = ":8000"

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".daylog", "config.yaml")
}

// ResolveConfig builds the effective configuration. A .env file in the
// working directory is loaded first; variables already present in the
// environment win over it.
func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	// errors ignored: a missing .env file is the normal case
	_ = godotenv.Load()

	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}
	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.HTTPAddr, cfg.HTTPAddr, SourceConfig, path)
		apply(&out.NERMode, cfg.NER.Mode, SourceConfig, path)
		apply(&out.NERModelPath, cfg.NER.ModelPath, SourceConfig, path)
		apply(&out.NERTokenizerPath, cfg.NER.TokenizerPath, SourceConfig, path)
		apply(&out.NERLibraryPath, cfg.NER.LibraryPath, SourceConfig, path)
	}

	applyEnv(&out.DBPath, "DAYLOG_DB")
	applyEnv(&out.DBPath, "DAYLOG_DB_PATH")
	applyEnv(&out.HTTPAddr, "DAYLOG_HTTP_ADDR")
	applyEnv(&out.NERMode, "DAYLOG_NER_MODE")
	applyEnv(&out.NERModelPath, "DAYLOG_NER_MODEL")
	applyEnv(&out.NERTokenizerPath, "DAYLOG_NER_TOKENIZER")
	applyEnv(&out.NERLibraryPath, "DAYLOG_NER_LIBRARY")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.HTTPAddr, opts.CLIAddr, SourceCLI, "--addr")
	apply(&out.NERMode, opts.CLINERMode, SourceCLI, "--ner")

	if out.HTTPAddr.Value == "" {
		out.HTTPAddr = ResolvedValue{Value: DefaultHTTPAddr, Source: SourceDefault, From: "built-in default"}
	}
	if out.NERMode.Value == "" {
		out.NERMode = ResolvedValue{Value: "lexicon", Source: SourceDefault, From: "built-in default"}
	}

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}
	for _, v := range []*ResolvedValue{&out.NERModelPath, &out.NERTokenizerPath, &out.NERLibraryPath} {
		if v.Value != "" {
			v.Value = expandUserPath(v.Value)
		}
	}

	return out, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
