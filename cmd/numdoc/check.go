package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"numdoc/internal/config"
	"numdoc/internal/diagfmt"
	"numdoc/internal/driver"
	"numdoc/internal/source"
	"numdoc/internal/ui"
	"numdoc/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.py|directory|->",
	Short: "Lint docstrings in a Python file or directory",
	Long:  `Lint numpydoc-style docstrings in a single Python file, every *.py file under a directory, or source piped on stdin ("-")`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "compact", "output format (compact|detailed|json)")
	checkCmd.Flags().StringSlice("select", nil, "check code prefixes to enable (overrides config)")
	checkCmd.Flags().StringSlice("ignore", nil, "check code prefixes to disable (overrides config)")
	checkCmd.Flags().StringSlice("exclude", nil, "path patterns to skip (overrides config)")
	checkCmd.Flags().Bool("include-private", false, "also lint underscore-prefixed declarations")
	checkCmd.Flags().Bool("exclude-magic", false, "skip dunder methods")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "enable the persistent result cache")
	checkCmd.Flags().Bool("progress", false, "show interactive progress for directory runs")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("stdin-filename", "stdin", "file name reported for stdin input")
}

type checkOptions struct {
	format   string
	pathMode diagfmt.PathMode
	color    bool
	max      int
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "compact", "detailed", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be compact, detailed, or json)", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	colorOn, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	opts := checkOptions{
		format:   format,
		pathMode: pathMode,
		color:    colorOn,
		max:      maxDiagnostics,
	}

	if target == "-" {
		return checkStdin(cmd, opts)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	cfg, err := loadConfig(cmd, target, info.IsDir())
	if err != nil {
		return err
	}

	if info.IsDir() {
		return checkDir(cmd, target, cfg, opts)
	}
	return checkFile(cmd, target, cfg, opts)
}

// loadConfig discovers numdoc.toml near the target and layers changed CLI
// flags on top.
func loadConfig(cmd *cobra.Command, target string, isDir bool) (config.Config, error) {
	startDir := target
	if !isDir {
		startDir = filepath.Dir(target)
	}
	cfg, _, err := config.Discover(startDir)
	if err != nil {
		return config.Config{}, err
	}
	return applyFlagOverrides(cmd, cfg)
}

func applyFlagOverrides(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("select") {
		sel, err := flags.GetStringSlice("select")
		if err != nil {
			return cfg, fmt.Errorf("failed to get select flag: %w", err)
		}
		cfg.Checks.Select = sel
	}
	if flags.Changed("ignore") {
		ign, err := flags.GetStringSlice("ignore")
		if err != nil {
			return cfg, fmt.Errorf("failed to get ignore flag: %w", err)
		}
		cfg.Checks.Ignore = ign
	}
	if flags.Changed("exclude") {
		excl, err := flags.GetStringSlice("exclude")
		if err != nil {
			return cfg, fmt.Errorf("failed to get exclude flag: %w", err)
		}
		cfg.Files.Exclude = excl
	}
	if flags.Changed("include-private") {
		v, err := flags.GetBool("include-private")
		if err != nil {
			return cfg, fmt.Errorf("failed to get include-private flag: %w", err)
		}
		cfg.Files.IncludePrivate = v
	}
	if flags.Changed("exclude-magic") {
		v, err := flags.GetBool("exclude-magic")
		if err != nil {
			return cfg, fmt.Errorf("failed to get exclude-magic flag: %w", err)
		}
		cfg.Files.ExcludeMagic = v
	}
	return cfg, nil
}

func checkStdin(cmd *cobra.Command, opts checkOptions) error {
	name, err := cmd.Flags().GetString("stdin-filename")
	if err != nil {
		return fmt.Errorf("failed to get stdin-filename flag: %w", err)
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}
	cfg, err = applyFlagOverrides(cmd, cfg)
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	bag := driver.LintFile(fileSet.Get(id), validate.New(cfg.Options()), opts.max)

	results := []driver.FileResult{{Path: name, FileID: id, Bag: bag}}
	return renderResults(cmd.OutOrStdout(), fileSet, results, opts)
}

func checkFile(cmd *cobra.Command, path string, cfg config.Config, opts checkOptions) error {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", path, err)
	}
	bag := driver.LintFile(fileSet.Get(id), validate.New(cfg.Options()), opts.max)

	results := []driver.FileResult{{Path: path, FileID: id, Bag: bag}}
	return renderResults(cmd.OutOrStdout(), fileSet, results, opts)
}

func checkDir(cmd *cobra.Command, dir string, cfg config.Config, opts checkOptions) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}

	var cache *driver.DiskCache
	if useCache {
		cache, err = driver.OpenDiskCache("numdoc")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	runOpts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: opts.max,
		Jobs:           jobs,
		Cache:          cache,
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if showProgress && isTerminal(os.Stdout) {
		fileSet, results, err = lintDirWithUI(cmd.Context(), dir, runOpts)
	} else {
		fileSet, results, err = driver.LintDir(cmd.Context(), dir, runOpts)
	}
	if err != nil {
		return err
	}

	return renderResults(cmd.OutOrStdout(), fileSet, results, opts)
}

type lintOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

func lintDirWithUI(ctx context.Context, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListPythonFiles(dir, opts.Config)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fileSet, results, err := driver.LintDir(ctx, dir, optsCopy)
		outcomeCh <- lintOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("numdoc check "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

// renderResults prints every file's diagnostics in the selected format and
// converts findings and load failures into the process exit contract.
func renderResults(w io.Writer, fileSet *source.FileSet, results []driver.FileResult, opts checkOptions) error {
	baseDir := fileSet.BaseDir()

	var loadErr error
	total := 0

	switch opts.format {
	case "json":
		output := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
		for _, res := range results {
			if res.Err != nil {
				loadErr = firstErr(loadErr, res)
				continue
			}
			file := fileSet.Get(res.FileID)
			output.Diagnostics = append(output.Diagnostics, diagfmt.BuildDiagnostics(
				file, baseDir, res.Bag.Items(),
				diagfmt.JSONOpts{PathMode: opts.pathMode, Max: opts.max},
			)...)
		}
		total = len(output.Diagnostics)
		if err := diagfmt.JSON(w, output); err != nil {
			return err
		}
	case "detailed":
		for _, res := range results {
			if res.Err != nil {
				loadErr = firstErr(loadErr, res)
				continue
			}
			file := fileSet.Get(res.FileID)
			err := diagfmt.Pretty(w, file, baseDir, res.Bag.Items(), diagfmt.PrettyOpts{
				Color:           opts.color,
				PathMode:        opts.pathMode,
				ShowSuggestions: true,
			})
			if err != nil {
				return err
			}
			total += res.Bag.Len()
		}
	default:
		for _, res := range results {
			if res.Err != nil {
				loadErr = firstErr(loadErr, res)
				continue
			}
			file := fileSet.Get(res.FileID)
			err := diagfmt.Compact(w, file, baseDir, res.Bag.Items(), diagfmt.CompactOpts{
				PathMode: opts.pathMode,
			})
			if err != nil {
				return err
			}
			total += res.Bag.Len()
		}
	}

	if loadErr != nil {
		return loadErr
	}
	if total > 0 {
		return errDiagnosticsFound
	}
	return nil
}

func firstErr(current error, res driver.FileResult) error {
	if current != nil {
		return current
	}
	return fmt.Errorf("failed to load %q: %w", res.Path, res.Err)
}
