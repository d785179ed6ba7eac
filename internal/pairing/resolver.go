// Package pairing scans the videos directory and pairs each video file with
// its optional same-stem thumbnail and keyword sidecar, producing the jobs a
// batch pass will upload.
package pairing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"yt-studio-uploader/internal/model"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// Thumbnail extensions in probe order. The first match wins when a stem has
// more than one sibling image.
var thumbnailExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

const keywordExtension = ".txt"

// DiscoveryError signals that the videos directory itself could not be
// scanned. It is fatal: no job starts when discovery fails.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("scan videos directory %s: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// Resolve lists dir and returns one VideoJob per distinct stem that owns a
// video extension, sorted lexicographically by stem for reproducible batch
// order. Images and keyword files without a video sibling are ignored. An
// empty directory yields an empty slice, not an error.
func Resolve(dir string) ([]model.VideoJob, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}

	videos := make(map[string]string)
	images := make(map[string]map[string]string)
	texts := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == "" {
			continue
		}
		path := filepath.Join(dir, name)
		switch {
		case videoExtensions[ext]:
			// First video per stem wins; stems are unique within a pass.
			if _, ok := videos[stem]; !ok {
				videos[stem] = path
			}
		case isThumbnailExt(ext):
			if images[stem] == nil {
				images[stem] = make(map[string]string)
			}
			images[stem][ext] = path
		case ext == keywordExtension:
			texts[stem] = path
		}
	}

	stems := make([]string, 0, len(videos))
	for stem := range videos {
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	jobs := make([]model.VideoJob, 0, len(stems))
	for _, stem := range stems {
		job := model.VideoJob{
			VideoPath:     videos[stem],
			Basename:      stem,
			ThumbnailPath: pickThumbnail(images[stem]),
		}
		if sidecar, ok := texts[stem]; ok {
			job.Keywords = readKeywords(sidecar)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func isThumbnailExt(ext string) bool {
	for _, e := range thumbnailExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func pickThumbnail(byExt map[string]string) string {
	for _, ext := range thumbnailExtensions {
		if path, ok := byExt[ext]; ok {
			return path
		}
	}
	return ""
}

// readKeywords parses a keyword sidecar. An unreadable sidecar degrades to
// no keywords; the job itself still uploads.
func readKeywords(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ParseKeywords(string(raw))
}

// ParseKeywords splits a comma-separated keyword list, trimming surrounding
// whitespace and dropping empty entries. Order is preserved.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		kw := strings.TrimSpace(p)
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
