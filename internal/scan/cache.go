package scan

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"
)

// DefaultMaxCacheEntries is the eviction threshold used when none is set.
const DefaultMaxCacheEntries = 20

// Cache stores encoded reports keyed by a fingerprint of the scanned sources.
type Cache struct {
	Dir        string       // e.g. ~/.cache/nilscan
	MaxEntries int          // LRU eviction threshold
	Logger     *slog.Logger // eviction warnings; nil means slog.Default
}

// CacheMeta stores metadata about a cached report.
type CacheMeta struct {
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	GoVersion   string    `json:"go_version"`
	ToolVersion string    `json:"tool_version"`
	Patterns    []string  `json:"patterns"`
	PayloadSize int64     `json:"payload_size"`
}

// CacheHit is returned by ScanWithCache in place of a report when a cached
// payload is available. Callers that want the encoded form use Payload
// directly; others call Report.
type CacheHit struct {
	Payload     []byte
	Fingerprint string
}

func (c *CacheHit) Error() string {
	return fmt.Sprintf("cache hit: %s", shortFingerprint(c.Fingerprint))
}

// Report decodes the cached payload.
func (c *CacheHit) Report() (*Report, error) {
	return DecodeReport(c.Payload)
}

// skipDirs contains directory names that are skipped during fingerprinting.
var skipDirs = map[string]bool{
	"vendor":       true,
	".git":         true,
	"testdata":     true,
	"node_modules": true,
}

type fileEntry struct {
	RelPath   string
	MtimeNs   int64
	SizeBytes int64
}

// ComputeFingerprint hashes every .go, go.mod and go.sum file under dir
// (relative path, mtime, size) together with the sorted patterns, the
// scanner configuration, the Go version and ToolVersion. The result is a
// 64-character hex SHA-256.
func ComputeFingerprint(dir string, patterns []string, cfg Config) (string, error) {
	var entries []fileEntry

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if filepath.Ext(name) != ".go" && name != "go.mod" && name != "go.sum" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		entries = append(entries, fileEntry{
			RelPath:   filepath.ToSlash(relPath),
			MtimeNs:   info.ModTime().UnixNano(),
			SizeBytes: info.Size(),
		})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking directory %s: %w", dir, err)
	}

	slices.SortFunc(entries, func(a, b fileEntry) int {
		return cmp.Compare(a.RelPath, b.RelPath)
	})

	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(h, "%s\t%d\t%d\n", e.RelPath, e.MtimeNs, e.SizeBytes)
	}

	sortedPatterns := slices.Clone(patterns)
	slices.Sort(sortedPatterns)
	for _, p := range sortedPatterns {
		fmt.Fprintf(h, "pattern:%s\n", p)
	}

	fmt.Fprintf(h, "optional:%s\ntests:%t\ngenerated:%t\n",
		cfg.OptionalPkg, cfg.IncludeTests, cfg.IncludeGenerated)
	fmt.Fprintf(h, "go:%s\n", runtime.Version())
	fmt.Fprintf(h, "tool:%s\n", ToolVersion)

	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) payloadPath(fingerprint string) string {
	return filepath.Join(c.Dir, fingerprint+".fb")
}

func (c *Cache) metaPath(fingerprint string) string {
	return filepath.Join(c.Dir, fingerprint+".meta.json")
}

// Get returns the cached payload for fingerprint. Entries written by a
// different ToolVersion are misses.
func (c *Cache) Get(fingerprint string) ([]byte, bool) {
	meta, err := readMeta(c.metaPath(fingerprint))
	if err != nil || meta.ToolVersion != ToolVersion {
		return nil, false
	}
	payload, err := os.ReadFile(c.payloadPath(fingerprint))
	return payload, err == nil
}

// Put stores payload under fingerprint, then trims the cache to MaxEntries.
// A failed trim is logged, not returned.
func (c *Cache) Put(fingerprint string, payload []byte, patterns []string) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	metaJSON, err := json.MarshalIndent(CacheMeta{
		Fingerprint: fingerprint,
		CreatedAt:   time.Now(),
		GoVersion:   runtime.Version(),
		ToolVersion: ToolVersion,
		Patterns:    patterns,
		PayloadSize: int64(len(payload)),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling meta: %w", err)
	}

	// The meta file is written last: Get only trusts entries that have one.
	if err := c.replace(c.payloadPath(fingerprint), payload); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	if err := c.replace(c.metaPath(fingerprint), metaJSON); err != nil {
		os.Remove(c.payloadPath(fingerprint))
		return fmt.Errorf("writing meta: %w", err)
	}

	if err := c.evict(); err != nil {
		c.log().Warn("cache eviction failed", "dir", c.Dir, "error", err)
	}
	return nil
}

// replace swaps data in at path through a uniquely named temp file in the
// cache dir, so concurrent writers never see a partial file.
func (c *Cache) replace(path string, data []byte) error {
	tmp, err := os.CreateTemp(c.Dir, ".put-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
	}
	return err
}

// evict drops the oldest entries, by CreatedAt, beyond MaxEntries.
// Unreadable meta files are not counted.
func (c *Cache) evict() error {
	limit := c.MaxEntries
	if limit <= 0 {
		limit = DefaultMaxCacheEntries
	}

	paths, err := filepath.Glob(filepath.Join(c.Dir, "*.meta.json"))
	if err != nil {
		return fmt.Errorf("listing cache entries: %w", err)
	}
	metas := make([]CacheMeta, 0, len(paths))
	for _, path := range paths {
		if meta, err := readMeta(path); err == nil {
			metas = append(metas, meta)
		}
	}
	if len(metas) <= limit {
		return nil
	}

	slices.SortFunc(metas, func(a, b CacheMeta) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	var errs []error
	for _, meta := range metas[:len(metas)-limit] {
		for _, path := range []string{c.payloadPath(meta.Fingerprint), c.metaPath(meta.Fingerprint)} {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Cache) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func readMeta(path string) (CacheMeta, error) {
	var meta CacheMeta
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// ScanWithCache wraps Scan with fingerprint caching. With an empty cacheDir
// it is Scan. On a hit it returns a nil report and a *CacheHit error.
func (s *Scanner) ScanWithCache(ctx context.Context, dir string, patterns []string, cacheDir string, maxEntries int) (*Report, error) {
	if cacheDir == "" {
		return s.Scan(ctx, dir, patterns)
	}

	cache := &Cache{Dir: cacheDir, MaxEntries: maxEntries, Logger: s.logger}

	fingerprint, err := ComputeFingerprint(dir, patterns, s.cfg)
	if err != nil {
		s.logger.Warn("cache fingerprint failed", "error", err)
		return s.Scan(ctx, dir, patterns)
	}

	if payload, ok := cache.Get(fingerprint); ok {
		s.logger.Info("cache hit", "fingerprint", shortFingerprint(fingerprint))
		return nil, &CacheHit{Payload: payload, Fingerprint: fingerprint}
	}

	s.logger.Info("cache miss, scanning", "fingerprint", shortFingerprint(fingerprint))
	report, err := s.Scan(ctx, dir, patterns)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(fingerprint, BuildReport(report), patterns); err != nil {
		s.logger.Warn("cache store failed", "error", err)
	}
	return report, nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
