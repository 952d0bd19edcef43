// Package gof drives cERGM goodness-of-fit subgraph extraction: it loads
// an observed network and its term labels, finds the simulated replicate
// networks sitting next to it, and writes the last-term subgraph of each
// network back out for comparison of observed against simulated
// statistics.
package gof

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/estimnet/cergm-gof/pkg/graph"
)

// ReplicateFile is one simulated replicate network found on disk.
type ReplicateFile struct {
	Path  string
	Index int
}

// ReplicateSet is the outcome of DiscoverReplicates: the replicate files
// in ascending index order, and whether they are gzip-compressed.
type ReplicateSet struct {
	Files      []ReplicateFile
	Compressed bool
}

// DiscoverReplicates scans dir once for simulated replicate networks named
// <prefix>_<number>.net, the names EstimNetDirected's simulator writes.
// When no such file exists it falls back to gzip-compressed replicates
// named <prefix>_<number>.net.gz. The returned set is sorted by the number
// embedded in the name, so runs are deterministic regardless of directory
// order.
func DiscoverReplicates(dir, prefix string) (*ReplicateSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	plain := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `_([0-9]+)\.net$`)
	gzipped := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `_([0-9]+)\.net\.gz$`)

	set := &ReplicateSet{Files: matchReplicates(dir, entries, plain)}
	if len(set.Files) == 0 {
		if files := matchReplicates(dir, entries, gzipped); len(files) > 0 {
			set.Files = files
			set.Compressed = true
		}
	}

	sort.Slice(set.Files, func(i, j int) bool {
		if set.Files[i].Index != set.Files[j].Index {
			return set.Files[i].Index < set.Files[j].Index
		}
		return set.Files[i].Path < set.Files[j].Path
	})
	return set, nil
}

func matchReplicates(dir string, entries []os.DirEntry, pat *regexp.Regexp) []ReplicateFile {
	var files []ReplicateFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pat.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, ReplicateFile{
			Path:  filepath.Join(dir, entry.Name()),
			Index: idx,
		})
	}
	return files
}

// LoadReplicate loads one replicate network from disk. Compressed
// replicates are decompressed to a temporary file first, which is removed
// before returning whether or not the load succeeds.
func LoadReplicate(path string, compressed bool) (*graph.Directed, error) {
	if !compressed {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		g, err := graph.ReadPajek(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return g, nil
	}

	tmpPath, err := decompressToTemp(path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := graph.ReadPajek(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return g, nil
}

func decompressToTemp(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("decompressing %s: %w", path, err)
	}
	defer zr.Close()

	tmp, err := os.CreateTemp("", "cergm-gof-*.net")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, zr); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("decompressing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
