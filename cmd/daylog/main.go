package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/minseo-dev/daylog/internal/analyze"
	"github.com/minseo-dev/daylog/internal/api"
	"github.com/minseo-dev/daylog/internal/config"
	"github.com/minseo-dev/daylog/internal/engine"
	daylogmcp "github.com/minseo-dev/daylog/internal/mcp"
	"github.com/minseo-dev/daylog/internal/ner"
	"github.com/minseo-dev/daylog/internal/store"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "process":
		if err := runProcess(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := runStats(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("daylog %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath string
	dbPath     string
	addr       string
	nerMode    string
	userID     string
	rest       []string
}

func parseFlags(args []string) (cliFlags, error) {
	f := cliFlags{userID: "default"}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			f.rest = append(f.rest, arg)
			continue
		}
		if i+1 >= len(args) {
			return f, fmt.Errorf("flag %s needs a value", arg)
		}
		i++
		switch arg {
		case "--config":
			f.configPath = args[i]
		case "--db":
			f.dbPath = args[i]
		case "--addr":
			f.addr = args[i]
		case "--ner":
			f.nerMode = args[i]
		case "--user":
			f.userID = args[i]
		default:
			return f, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return f, nil
}

func setup(f cliFlags) (*engine.Engine, *store.SQLiteStore, config.ResolvedConfig, error) {
	cfg, err := config.ResolveConfig(config.ResolveOptions{
		ConfigPath: f.configPath,
		CLIDBPath:  f.dbPath,
		CLIAddr:    f.addr,
		CLINERMode: f.nerMode,
	})
	if err != nil {
		return nil, nil, cfg, err
	}

	st, err := store.NewStore(store.Config{DBPath: cfg.DBPath.Value})
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("opening store: %w", err)
	}

	recognizer, err := buildRecognizer(cfg)
	if err != nil {
		st.Close()
		return nil, nil, cfg, err
	}

	return engine.New(analyze.New(recognizer), st), st, cfg, nil
}

func buildRecognizer(cfg config.ResolvedConfig) (ner.Recognizer, error) {
	switch cfg.NERMode.Value {
	case "onnx":
		r, err := ner.NewONNXRecognizer(ner.ONNXConfig{
			ModelPath:     cfg.NERModelPath.Value,
			TokenizerPath: cfg.NERTokenizerPath.Value,
			LibraryPath:   cfg.NERLibraryPath.Value,
		})
		if err != nil {
			return nil, fmt.Errorf("loading NER model: %w", err)
		}
		return r, nil
	case "lexicon", "":
		return ner.NewLexiconRecognizer(ner.Lexicon{}), nil
	}
	return nil, fmt.Errorf("unknown NER mode: %s", cfg.NERMode.Value)
}

func runServe(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	eng, st, cfg, err := setup(f)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := api.NewServer(eng, st)
	fmt.Printf("daylog %s listening on %s\n", version, cfg.HTTPAddr.Value)
	return srv.Run(cfg.HTTPAddr.Value)
}

func runMCP(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	eng, st, _, err := setup(f)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := daylogmcp.NewServer(daylogmcp.ServerConfig{
		Engine:  eng,
		Store:   st,
		Version: version,
	})
	return daylogmcp.ServeStdio(srv)
}

func runProcess(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.rest) == 0 {
		return fmt.Errorf("usage: daylog process <text> [--user <id>] [--db <path>]")
	}
	text := strings.Join(f.rest, " ")

	eng, st, _, err := setup(f)
	if err != nil {
		return err
	}
	defer st.Close()

	out, err := eng.Process(context.Background(), text, f.userID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runStats(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	_, st, _, err := setup(f)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("calendar events: %d\n", stats.EventCount)
	fmt.Printf("notes:           %d\n", stats.NoteCount)
	fmt.Printf("tasks:           %d\n", stats.TaskCount)
	fmt.Printf("contacts:        %d\n", stats.ContactCount)
	fmt.Printf("work logs:       %d\n", stats.WorkLogCount)
	return nil
}

func printUsage() {
	fmt.Println(`daylog - Korean work-input analysis and routing

Usage:
  daylog serve [--addr :8000] [--db <path>] [--ner onnx|lexicon]
  daylog mcp [--db <path>] [--ner onnx|lexicon]
  daylog process <text> [--user <id>] [--db <path>]
  daylog stats [--db <path>]
  daylog version

Flags:
  --config <path>   config file (default ~/.daylog/config.yaml)
  --db <path>       SQLite database path (default ~/.daylog/daylog.db)
  --addr <addr>     HTTP listen address (serve)
  --ner <mode>      named-entity recognizer: onnx or lexicon
  --user <id>       record owner for process (default "default")`)
}
