package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"numdoc/internal/config"
	"numdoc/internal/diag"
	"numdoc/internal/pyscan"
	"numdoc/internal/source"
	"numdoc/internal/validate"
)

// Status reports how far one file has progressed.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification for a directory run.
type Event struct {
	Path        string
	Status      Status
	Diagnostics int
	FromCache   bool
}

// Options configures a lint run.
type Options struct {
	Config         config.Config
	MaxDiagnostics int
	Jobs           int
	// Cache may be nil to disable result caching.
	Cache *DiskCache
	// Events receives per-file progress when non-nil. The driver never
	// closes the channel; the caller owns its lifetime.
	Events chan<- Event
}

// FileResult holds the diagnostics for one linted file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
	// Err is set when the file could not be read; Bag is empty then.
	Err error
}

// LintFile runs the validator over every declaration scanned from one file.
// Diagnostic order follows declaration order, which follows source order.
func LintFile(file *source.File, v *validate.Validator, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range pyscan.Scan(file) {
		bag.AddAll(v.Validate(d))
	}
	return bag
}

// ListPythonFiles returns the sorted relative-order list of *.py files under
// dir, honoring the config exclude patterns. Excluded directories are not
// descended into.
func ListPythonFiles(dir string, cfg config.Config) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if rel != "." && cfg.Excluded(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") && !cfg.Excluded(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deterministic order regardless of walk details.
	sort.Strings(files)
	return files, nil
}

// LintDir lints every *.py file under dir in parallel. Results come back in
// sorted path order; per-file diagnostic order is preserved.
func LintDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListPythonFiles(dir, opts.Config)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload all files; the FileSet is not safe for concurrent mutation.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	v := validate.New(opts.Config.Options())
	fingerprint := opts.Config.Fingerprint()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Per-index slots: each goroutine owns results[i], no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				opts.emit(Event{Path: path, Status: StatusWorking})

				if loadErr, hadError := loadErrors[path]; hadError {
					results[i] = FileResult{
						Path: path,
						Bag:  diag.NewBag(opts.MaxDiagnostics),
						Err:  loadErr,
					}
					opts.emit(Event{Path: path, Status: StatusError})
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)
				key := cacheKey(file.Hash, fingerprint, opts.MaxDiagnostics)

				var payload DiskPayload
				if hit, _ := opts.Cache.Get(key, &payload); hit {
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.AddAll(diagnosticsFromRecords(payload.Records))
					results[i] = FileResult{
						Path:      path,
						FileID:    fileID,
						Bag:       bag,
						FromCache: true,
					}
					opts.emit(Event{
						Path:        path,
						Status:      StatusDone,
						Diagnostics: bag.Len(),
						FromCache:   true,
					})
					return nil
				}

				bag := LintFile(file, v, opts.MaxDiagnostics)
				results[i] = FileResult{Path: path, FileID: fileID, Bag: bag}

				// Cache write failures never fail the run.
				_ = opts.Cache.Put(key, &DiskPayload{
					Schema:  diskCacheSchemaVersion,
					Records: recordsFromDiagnostics(bag.Items()),
				})

				opts.emit(Event{Path: path, Status: StatusDone, Diagnostics: bag.Len()})
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func (o *Options) emit(ev Event) {
	if o.Events != nil {
		o.Events <- ev
	}
}
