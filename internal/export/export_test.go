package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biolimbo/lip-sync-engine/internal/timeline"
	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

func shapeTimeline(t *testing.T) *timeline.JoiningContinuous[viseme.Shape] {
	t.Helper()
	tl, err := timeline.NewJoiningContinuous(850*time.Millisecond, viseme.ShapeX)
	require.NoError(t, err)
	require.NoError(t, tl.Set(timeline.Segment[viseme.Shape]{
		Start: 350 * time.Millisecond, End: 500 * time.Millisecond, Value: viseme.ShapeD,
	}))
	require.NoError(t, tl.Set(timeline.Segment[viseme.Shape]{
		Start: 500 * time.Millisecond, End: 850 * time.Millisecond, Value: viseme.ShapeB,
	}))
	return tl
}

func TestCues(t *testing.T) {
	cues := Cues(shapeTimeline(t))
	want := []MouthCue{
		{Start: 0, End: 0.35, Value: "X"},
		{Start: 0.35, End: 0.5, Value: "D"},
		{Start: 0.5, End: 0.85, Value: "B"},
	}
	assert.Equal(t, want, cues)
}

func TestCues_Contiguity(t *testing.T) {
	cues := Cues(shapeTimeline(t))
	require.NotEmpty(t, cues)
	assert.Equal(t, 0.0, cues[0].Start)
	assert.Equal(t, 0.85, cues[len(cues)-1].End)
	for i := 1; i < len(cues); i++ {
		assert.Equal(t, cues[i-1].End, cues[i].Start, "cue %d not contiguous", i)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Cues(shapeTimeline(t))))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.MouthCues, 3)
	assert.Equal(t, MouthCue{Start: 0, End: 0.35, Value: "X"}, doc.MouthCues[0])
	assert.Equal(t, "B", doc.MouthCues[2].Value)
}

func TestWriteJSON_EmptyCueList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []MouthCue{}))
	assert.Contains(t, buf.String(), `"mouthCues": []`)
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, Cues(shapeTimeline(t))))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0.00\t0.35\tX", lines[0])
	assert.Equal(t, "0.35\t0.50\tD", lines[1])
	assert.Equal(t, "0.50\t0.85\tB", lines[2])
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Cues(shapeTimeline(t)))
	assert.Contains(t, out, "SHAPE")
	assert.Contains(t, out, "0.35")
	assert.Contains(t, out, "B")
}
