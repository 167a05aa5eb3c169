// Package feeds discovers and fetches the raw reference datasets (drug
// registry, publications, clinical trials) from an HTTP index page into
// the data lake's raw zone.
package feeds

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/adrg/xdg"
	"github.com/sethgrid/pester"
	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
)

const DefaultCacheTTL = 24 * time.Hour

// DatasetFile is one raw dataset file listed on the remote index.
type DatasetFile struct {
	Name string
	URL  string
}

// Fetcher lists and downloads raw dataset files. The index page is cached
// on disk for CacheTTL.
type Fetcher struct {
	BaseURL  string
	CacheTTL time.Duration
	CacheDir string
	Client   *pester.Client
	logger   logrus.FieldLogger
}

// NewFetcher creates a fetcher with a retrying HTTP client and an xdg
// cache dir.
func NewFetcher(baseURL string, logger logrus.FieldLogger) (*Fetcher, error) {
	cacheDir, err := xdg.CacheFile(filepath.Join(drugxref.AppName, "feeds"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = 3
	client.Timeout = 60 * time.Second
	return &Fetcher{
		BaseURL:  baseURL,
		CacheTTL: DefaultCacheTTL,
		CacheDir: cacheDir,
		Client:   client,
		logger:   logger,
	}, nil
}

// getCachedIndex returns the cached index page if present and fresh.
func (f *Fetcher) getCachedIndex() ([]byte, error) {
	cacheFile := filepath.Join(f.CacheDir, "index.html")
	info, err := os.Stat(cacheFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Since(info.ModTime()) > f.CacheTTL {
		return nil, nil
	}
	return os.ReadFile(cacheFile)
}

// fetchIndex fetches the index page, using the disk cache when fresh.
func (f *Fetcher) fetchIndex() ([]byte, error) {
	b, err := f.getCachedIndex()
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	req, err := http.NewRequest("GET", f.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", drugxref.UserAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch index, status code: %d", resp.StatusCode)
	}
	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	cacheFile := filepath.Join(f.CacheDir, "index.html")
	if err := os.WriteFile(cacheFile, b, 0644); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the dataset files found on the index page, in listing
// order. Only .csv and .json files count, compressed variants included.
func (f *Fetcher) List() ([]DatasetFile, error) {
	b, err := f.fetchIndex()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return nil, err
	}
	var files []DatasetFile
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !isDatasetFile(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		files = append(files, DatasetFile{
			Name: filepath.Base(ref.Path),
			URL:  base.ResolveReference(ref).String(),
		})
	})
	return files, nil
}

// isDatasetFile matches csv/json files, optionally compressed.
func isDatasetFile(href string) bool {
	name := strings.ToLower(href)
	for _, suffix := range []string{".gz", ".zst"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".json")
}

// Fetch downloads one dataset file into w.
func (f *Fetcher) Fetch(file DatasetFile, w io.Writer) error {
	req, err := http.NewRequest("GET", file.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", drugxref.UserAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s, status code: %d", file.URL, resp.StatusCode)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return err
	}
	f.logger.WithFields(logrus.Fields{"name": file.Name, "bytes": n}).Info("fetched dataset file")
	return nil
}
