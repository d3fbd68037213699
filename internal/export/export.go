// Package export flattens a shape timeline into the mouth-cue wire format.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

// MouthCue is one exported record: a single shape's active interval, in
// seconds.
type MouthCue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Value string  `json:"value"`
}

// Document is the top-level wire format consumed by animation frontends.
type Document struct {
	MouthCues []MouthCue `json:"mouthCues"`
}

// Cues converts the shape timeline into an ordered cue list. The timeline's
// coverage and join invariants guarantee the records are contiguous, span
// the full duration, and never repeat a value across adjacent cues; no
// merging or analysis happens here.
func Cues(shapes *timeline.JoiningContinuous[viseme.Shape]) []MouthCue {
	segments := shapes.Segments()
	cues := make([]MouthCue, 0, len(segments))
	for _, s := range segments {
		cues = append(cues, MouthCue{
			Start: s.Start.Seconds(),
			End:   s.End.Seconds(),
			Value: s.Value.String(),
		})
	}
	return cues
}

// WriteJSON writes the cue list as the JSON document
// {"mouthCues":[{"start":...,"end":...,"value":"X"}, ...]}.
func WriteJSON(w io.Writer, cues []MouthCue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{MouthCues: cues}); err != nil {
		return fmt.Errorf("encode mouth cues: %w", err)
	}
	return nil
}

// WriteTSV writes one tab-separated "start end value" line per cue.
func WriteTSV(w io.Writer, cues []MouthCue) error {
	for _, c := range cues {
		if _, err := fmt.Fprintf(w, "%.2f\t%.2f\t%s\n", c.Start, c.End, c.Value); err != nil {
			return fmt.Errorf("write cue: %w", err)
		}
	}
	return nil
}
