package docxdiff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStamp = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func runText(t *testing.T, n *Node) string {
	t.Helper()
	if n.Tag == "r" {
		text := n.First("t")
		require.NotNil(t, text)
		return text.InnerText()
	}
	run := n.First("r")
	require.NotNil(t, run)
	leaf := run.First("t")
	if leaf == nil {
		leaf = run.First("delText")
	}
	require.NotNil(t, leaf)
	return leaf.InnerText()
}

func TestSynthesizeRunsCoalescing(t *testing.T) {
	script := []Edit{
		{OpEqual, "the"}, {OpEqual, " "}, {OpEqual, "quick"},
		{OpDelete, " "}, {OpDelete, "brown"},
		{OpInsert, " "}, {OpInsert, "red"},
		{OpEqual, " "}, {OpEqual, "fox"},
	}

	ids := newRevisionIDSource()
	runs := SynthesizeRuns(script, "reviewer", ids, testStamp)
	require.Len(t, runs, 4)

	plain := runs[0].(*Node)
	assert.Equal(t, "r", plain.Tag)
	assert.Equal(t, "the quick", runText(t, plain))

	del := runs[1].(*Node)
	assert.Equal(t, "del", del.Tag)
	assert.Equal(t, " brown", runText(t, del))
	assert.Equal(t, "1", del.Attr("id"))
	assert.Equal(t, "reviewer", del.Attr("author"))
	assert.Equal(t, "2024-05-01T10:30:00Z", del.Attr("date"))

	ins := runs[2].(*Node)
	assert.Equal(t, "ins", ins.Tag)
	assert.Equal(t, " red", runText(t, ins))
	assert.Equal(t, "2", ins.Attr("id"))

	tail := runs[3].(*Node)
	assert.Equal(t, "r", tail.Tag)
	assert.Equal(t, " fox", runText(t, tail))
}

func TestSynthesizeRunsZeroChange(t *testing.T) {
	script := []Edit{{OpEqual, "unchanged"}, {OpEqual, " "}, {OpEqual, "text"}}
	runs := SynthesizeRuns(script, "reviewer", newRevisionIDSource(), testStamp)
	require.Len(t, runs, 1)
	run := runs[0].(*Node)
	assert.Equal(t, "r", run.Tag)
	assert.Equal(t, "unchanged text", runText(t, run))
}

func TestSynthesizeRunsEmptyScript(t *testing.T) {
	runs := SynthesizeRuns(nil, "reviewer", newRevisionIDSource(), testStamp)
	assert.Empty(t, runs)
}

func TestSynthesizeRunsDeletionUsesDelText(t *testing.T) {
	runs := SynthesizeRuns([]Edit{{OpDelete, "gone"}}, "reviewer", newRevisionIDSource(), testStamp)
	require.Len(t, runs, 1)
	del := runs[0].(*Node)
	require.Equal(t, "del", del.Tag)
	run := del.First("r")
	require.NotNil(t, run)
	assert.Nil(t, run.First("t"))
	require.NotNil(t, run.First("delText"))
	assert.Equal(t, "gone", run.First("delText").InnerText())
}

func TestRevisionIDsAreDocumentWide(t *testing.T) {
	ids := newRevisionIDSource()
	_ = SynthesizeRuns([]Edit{{OpDelete, "a"}, {OpInsert, "b"}}, "x", ids, testStamp)
	runs := SynthesizeRuns([]Edit{{OpInsert, "c"}}, "x", ids, testStamp)
	require.Len(t, runs, 1)
	// Ids keep climbing across paragraphs instead of resetting.
	assert.Equal(t, "3", runs[0].(*Node).Attr("id"))
}

func TestNewTextLeafPreservesBoundaryWhitespace(t *testing.T) {
	leaf := newTextLeaf("t", " padded ")
	assert.Equal(t, "preserve", leaf.Attr("space"))

	leaf = newTextLeaf("t", "solid")
	assert.Equal(t, "", leaf.Attr("space"))
}
