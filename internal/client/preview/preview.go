// Package preview maps a file record and a view density to the preview the
// terminal client prints for it. The choice depends only on the URL suffix.
package preview

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/uploader/internal/client/models"
)

// Density controls preview sizing only, never what is fetched.
type Density string

const (
	DensityList   Density = "list"
	DensityMedium Density = "medium"
	DensityTiles  Density = "tiles"
)

func ParseDensity(s string) (Density, error) {
	switch d := Density(strings.ToLower(strings.TrimSpace(s))); d {
	case DensityList, DensityMedium, DensityTiles:
		return d, nil
	}
	return "", fmt.Errorf("unknown view %q (want list, medium or tiles)", s)
}

// Kind is the kind of element a preview stands for.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindDocument Kind = "document"
)

// Preview describes how one record is presented.
type Preview struct {
	Kind Kind
	URL  string
	// Size is the box the preview occupies, e.g. "48x48" or "full x 192".
	Size string
	// SourceType is the media type announced for players.
	SourceType string
	// Label is the link text for documents.
	Label string
}

func boxFor(d Density) string {
	switch d {
	case DensityList:
		return "48x48"
	case DensityMedium:
		return "96x96"
	default:
		return "full x 192"
	}
}

// Render picks the preview for rec at density d.
func Render(rec models.FileRecord, d Density) Preview {
	switch rec.Type() {
	case models.MediaImage:
		return Preview{Kind: KindImage, URL: rec.URL, Size: boxFor(d)}
	case models.MediaVideo:
		return Preview{Kind: KindVideo, URL: rec.URL, Size: boxFor(d), SourceType: "video/mp4"}
	case models.MediaAudio:
		// players are always full width
		return Preview{Kind: KindAudio, URL: rec.URL, Size: "full", SourceType: "audio/mpeg"}
	default:
		label := rec.Filename
		if label == "" {
			label = rec.URL
		}
		return Preview{Kind: KindDocument, URL: rec.URL, Label: label}
	}
}

// String is the one-line form printed by the CLI.
func (p Preview) String() string {
	switch p.Kind {
	case KindImage:
		return fmt.Sprintf("[image %s] %s", p.Size, p.URL)
	case KindVideo, KindAudio:
		return fmt.Sprintf("[%s player %s, %s] %s", p.Kind, p.Size, p.SourceType, p.URL)
	default:
		return fmt.Sprintf("[document] %s <%s>", p.Label, p.URL)
	}
}
