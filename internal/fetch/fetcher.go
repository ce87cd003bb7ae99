// Package fetch implements the release acquisition pipeline: resolve a
// version pointer, fetch the per-version manifest, download the platform
// binary, verify its checksum, and run it as the installer. Every network
// stage makes one remote attempt and falls back to a bundled local mirror
// that replicates the remote bucket layout.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"codeassist/internal/config"
	apperrors "codeassist/internal/errors"
	"codeassist/internal/logger"
)

const (
	manifestFileName = "manifest.json"
	defaultUserAgent = "codeassist/1.0 (Go installer)"
)

// Fetcher acquires versioned release artifacts for one tool.
type Fetcher struct {
	baseURL  string
	localDir string
	cacheDir string

	// tool is the base binary name published in the bucket, e.g. "assist".
	tool string

	client    *http.Client
	log       logger.Logger
	userAgent string
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithLogger replaces the default logger.
func WithLogger(log logger.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher constructs a Fetcher for the given tool binary name.
func NewFetcher(cfg *config.Config, tool string, opts ...Option) *Fetcher {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	f := &Fetcher{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		localDir: cfg.LocalDir,
		cacheDir: cfg.CacheDir,
		tool:     tool,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		log:       logger.NewStandardLogger(),
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// ResolveVersion turns a requested target into a concrete version. Concrete
// semantic versions are used as-is without any lookup; release channels are
// read from the remote pointer file, then the local mirror.
func (f *Fetcher) ResolveVersion(ctx context.Context, requested string) (ResolvedVersion, error) {
	requested = strings.TrimSpace(requested)

	if !isChannel(requested) {
		f.log.Debug("Using pinned version %s", requested)
		return ResolvedVersion{Version: requested, Source: SourcePinned, Pinned: true}, nil
	}

	body, err := f.remoteGet(ctx, f.remoteURL(requested))
	if err == nil {
		resolved := strings.TrimSpace(string(body))
		if resolved == "" {
			return ResolvedVersion{}, apperrors.ResolutionError(
				"remote version pointer is empty", nil).WithField("channel", requested)
		}
		f.log.Debug("Resolved %s to %s (remote)", requested, resolved)
		return ResolvedVersion{Version: resolved, Source: SourceRemote}, nil
	}
	remoteErr := err

	f.log.Warn("Remote version lookup failed, trying local fallback: %v", remoteErr)

	body, localErr := os.ReadFile(filepath.Join(f.localDir, requested))
	if localErr == nil {
		resolved := strings.TrimSpace(string(body))
		if resolved != "" {
			f.log.Debug("Resolved %s to %s (local fallback)", requested, resolved)
			return ResolvedVersion{Version: resolved, Source: SourceLocal}, nil
		}
		localErr = errors.New("local version pointer is empty")
	}

	return ResolvedVersion{}, apperrors.ResolutionError(
		"failed to resolve version "+requested+" from remote and local sources", remoteErr).
		WithFields(apperrors.Metadata{
			"channel":     requested,
			"local_error": localErr.Error(),
		})
}

// FetchManifest retrieves the release manifest for a concrete version. A
// transport failure falls back to the local mirror; a successful response
// that does not parse is fatal without fallback, since a malformed published
// manifest will be equally malformed everywhere.
func (f *Fetcher) FetchManifest(ctx context.Context, version string) (*Manifest, Source, error) {
	body, err := f.remoteGet(ctx, f.remoteURL(version, manifestFileName))
	if err == nil {
		manifest, parseErr := ParseManifest(body)
		if parseErr != nil {
			return nil, SourceRemote, parseErr
		}
		return manifest, SourceRemote, nil
	}
	remoteErr := err

	f.log.Warn("Remote manifest fetch failed, trying local fallback: %v", remoteErr)

	body, localErr := os.ReadFile(filepath.Join(f.localDir, version, manifestFileName))
	if localErr != nil {
		return nil, SourceLocal, apperrors.ManifestError(
			"failed to fetch manifest for version "+version+" from remote and local sources",
			remoteErr).
			WithFields(apperrors.Metadata{
				"version":     version,
				"local_error": localErr.Error(),
			})
	}

	manifest, parseErr := ParseManifest(body)
	if parseErr != nil {
		return nil, SourceLocal, parseErr
	}
	return manifest, SourceLocal, nil
}

// DownloadAndVerify obtains the platform binary for a version and gates it
// behind its manifest checksum. The remote download falls back to copying
// from the local mirror; a checksum mismatch is fatal regardless of source
// and leaves no file behind.
func (f *Fetcher) DownloadAndVerify(ctx context.Context, version, key string, entry ChecksumEntry) (*Artifact, error) {
	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		return nil, apperrors.SystemError(apperrors.CodeSystemGeneric,
			"failed to create download cache directory", err).
			WithField("cache_dir", f.cacheDir)
	}

	binary := binaryNameForKey(f.tool, key)
	finalPath := filepath.Join(f.cacheDir, artifactName(f.tool, version, key))
	tempPath := finalPath + ".partial"
	os.Remove(tempPath)

	source := SourceRemote
	err := f.downloadFile(ctx, f.remoteURL(version, key, binary), tempPath)
	if err != nil {
		remoteErr := err
		f.log.Warn("Remote download failed, trying local fallback: %v", remoteErr)

		localPath := filepath.Join(f.localDir, version, key, binary)
		if copyErr := copyFile(localPath, tempPath); copyErr != nil {
			os.Remove(tempPath)
			return nil, apperrors.DownloadError(
				"failed to obtain binary for version "+version+" from remote and local sources",
				remoteErr).
				WithFields(apperrors.Metadata{
					"version":     version,
					"platform":    key,
					"local_error": copyErr.Error(),
				})
		}
		source = SourceLocal
	}

	if err := verifyChecksum(tempPath, entry.Checksum); err != nil {
		return nil, err
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return nil, apperrors.SystemError(apperrors.CodeSystemGeneric,
			"failed to move verified binary into place", err).
			WithField("path", finalPath)
	}

	if err := os.Chmod(finalPath, 0o755); err != nil {
		os.Remove(finalPath)
		return nil, apperrors.SystemError(apperrors.CodeSystemGeneric,
			"failed to set execute permissions", err).
			WithField("path", finalPath)
	}

	f.log.Debug("Verified %s (%s, %s)", finalPath, key, source)

	return &Artifact{
		Path:        finalPath,
		Version:     version,
		PlatformKey: key,
		Source:      source,
	}, nil
}

func (f *Fetcher) remoteGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request failed: %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected HTTP status %d: %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body: %s", url)
	}
	return body, nil
}

func (f *Fetcher) downloadFile(ctx context.Context, url, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create download request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "download request failed: %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("download failed, HTTP status %d: %s", resp.StatusCode, url)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file: %s", localPath)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(localPath)
		return errors.Wrap(err, "failed to write downloaded data")
	}

	return file.Close()
}

func (f *Fetcher) remoteURL(parts ...string) string {
	return f.baseURL + "/" + strings.Join(parts, "/")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open local file: %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "failed to create file: %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Wrap(err, "failed to copy local file")
	}

	return out.Close()
}

// artifactName yields the cache filename for a versioned platform binary.
func artifactName(tool, version, key string) string {
	name := tool + "-" + version + "-" + key
	if isWindowsKey(key) {
		name += ".exe"
	}
	return name
}

// binaryNameForKey yields the filename published in the bucket for a
// platform key. The key, not the running OS, decides the extension.
func binaryNameForKey(tool, key string) string {
	if isWindowsKey(key) {
		return tool + ".exe"
	}
	return tool
}

func isWindowsKey(key string) bool {
	return strings.HasPrefix(key, "win")
}

func isChannel(target string) bool {
	return target == "stable" || target == "latest"
}
