package asset

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrUnsupportedScheme = errors.New("resource: unsupported scheme")
	ErrFetchFailed       = errors.New("resource: could not fetch")
)

// Client used for fetching remote scene assets.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// A Resource is a scene asset stream: a scene file, a material library or a
// texture. Local files and http/https URLs are supported. References inside
// a resource resolve against the location of the resource itself.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// The full path or URL of the resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// The file name of the resource without any directories.
func (r *Resource) Name() string {
	if r.IsRemote() {
		return path.Base(r.url.Path)
	}
	return filepath.Base(r.url.Path)
}

// The lowercase extension of the resource name including the leading dot.
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.Name()))
}

func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Open a resource. Paths without a scheme are resolved relative to the
// directory of relTo when relTo is not nil; windows separators are accepted.
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	target, err := url.Parse(filepath.ToSlash(strings.Replace(pathToResource, `\`, `/`, -1)))
	if err != nil {
		return nil, err
	}

	if target.Scheme == "" && relTo != nil {
		if target, err = resolve(target, relTo.url); err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch target.Scheme {
	case "":
		if reader, err = os.Open(filepath.Clean(filepath.FromSlash(target.Path))); err != nil {
			return nil, err
		}
	case "http", "https":
		if reader, err = fetch(target); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedScheme, target.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        target,
	}, nil
}

// Resolve a scheme-less reference against the location of its parent.
func resolve(ref, parent *url.URL) (*url.URL, error) {
	if parent.Scheme != "" {
		return parent.ResolveReference(&url.URL{Path: ref.Path}), nil
	}

	if filepath.IsAbs(filepath.FromSlash(ref.Path)) {
		return ref, nil
	}

	parentPath, err := filepath.Abs(filepath.FromSlash(parent.Path))
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s: %w", parent.String(), err)
	}
	return &url.URL{Path: filepath.ToSlash(filepath.Join(filepath.Dir(parentPath), ref.Path))}, nil
}

func fetch(target *url.URL) (io.ReadCloser, error) {
	resp, err := httpClient.Get(target.String())
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrFetchFailed, target.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w '%s': status %d", ErrFetchFailed, target.String(), resp.StatusCode)
	}
	return resp.Body, nil
}

// Wrap an in-memory stream; name is used for error messages and extension
// based format detection.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        &url.URL{Path: filepath.ToSlash(name)},
	}
}
