package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// Increment when the DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest = [32]byte

// DiskCache stores per-file lint results keyed by content and configuration.
// Thread-safe for concurrent access. A nil cache is a no-op.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the serialized result of linting one file.
type DiskPayload struct {
	Schema  uint16
	Records []DiagnosticRecord
}

// DiagnosticRecord flattens a diagnostic for storage. Severity is not kept:
// it derives from the code.
type DiagnosticRecord struct {
	Code       uint16
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
	Message    string
	Suggestion string
	Terminates bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and atomically writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get reads a payload from the disk cache. Entries with a stale schema are
// treated as misses.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey combines the file content hash with the configuration fingerprint
// and the diagnostic limit, so a settings change invalidates every stored
// result.
func cacheKey(contentHash, cfgFingerprint Digest, maxDiagnostics int) Digest {
	// Negative limits key the same as 0: both mean unlimited.
	limit, err := safecast.Conv[uint32](maxDiagnostics)
	if err != nil {
		limit = 0
	}
	h := sha256.New()
	_, _ = h.Write(contentHash[:])
	_, _ = h.Write(cfgFingerprint[:])
	_, _ = h.Write(binary.BigEndian.AppendUint32(nil, limit))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func recordsFromDiagnostics(items []diag.Diagnostic) []DiagnosticRecord {
	records := make([]DiagnosticRecord, len(items))
	for i, d := range items {
		records[i] = DiagnosticRecord{
			Code:       uint16(d.Code),
			StartLine:  d.Span.Start.Line,
			StartCol:   d.Span.Start.Col,
			EndLine:    d.Span.End.Line,
			EndCol:     d.Span.End.Col,
			Message:    d.Message,
			Suggestion: d.Suggestion,
			Terminates: d.Terminates,
		}
	}
	return records
}

func diagnosticsFromRecords(records []DiagnosticRecord) []diag.Diagnostic {
	items := make([]diag.Diagnostic, len(records))
	for i, r := range records {
		items[i] = diag.Diagnostic{
			Code: diag.Code(r.Code),
			Span: source.Span{
				Start: source.Position{Line: r.StartLine, Col: r.StartCol},
				End:   source.Position{Line: r.EndLine, Col: r.EndCol},
			},
			Message:    r.Message,
			Suggestion: r.Suggestion,
			Terminates: r.Terminates,
		}
	}
	return items
}
