package models

import (
	"fmt"
	"strings"
)

// MediaType is the category a file is shown and filtered under.
type MediaType string

const (
	MediaImage    MediaType = "Image"
	MediaVideo    MediaType = "Video"
	MediaAudio    MediaType = "Audio"
	MediaDocument MediaType = "Document"
)

var (
	imageSuffixes = []string{"jpeg", "jpg", "png", "gif", "webp"}
	videoSuffixes = []string{"mp4", "webm", "ogg"}
	audioSuffixes = []string{"mp3", "wav"}
)

func hasSuffix(url string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(url, "."+s) {
			return true
		}
	}
	return false
}

// Classify maps a URL to a MediaType by its extension, case-insensitively.
// Anything that is not a known image, video or audio suffix is a Document.
func Classify(url string) MediaType {
	u := strings.ToLower(url)
	switch {
	case hasSuffix(u, imageSuffixes):
		return MediaImage
	case hasSuffix(u, videoSuffixes):
		return MediaVideo
	case hasSuffix(u, audioSuffixes):
		return MediaAudio
	default:
		return MediaDocument
	}
}

// Tab selects a media-type subset of the listing.
type Tab string

const (
	TabAll      Tab = "all"
	TabImage    Tab = "image"
	TabVideo    Tab = "video"
	TabAudio    Tab = "audio"
	TabDocument Tab = "document"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabImage, TabVideo, TabAudio, TabDocument}

// ParseTab accepts a tab name in any case, plus the plural forms the upload
// view used ("images", "videos", "documents").
func ParseTab(s string) (Tab, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "s")
	if name == "" {
		name = string(TabAll)
	}
	for _, t := range Tabs {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Matches reports whether a file of type mt belongs under the tab.
func (t Tab) Matches(mt MediaType) bool {
	if t == TabAll || t == "" {
		return true
	}
	return strings.ToLower(string(mt)) == string(t)
}

// SortKey orders the listing.
type SortKey string

const (
	// SortNone keeps the order the server returned.
	SortNone   SortKey = "none"
	SortByDate SortKey = "date"
	SortByName SortKey = "name"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortByDate, SortByName:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want date, name or none)", s)
}
