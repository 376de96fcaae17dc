package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/docchat/internal/model"
)

func TestSplit_ShortSegmentSingleChunk(t *testing.T) {
	c := New(1000)
	doc := &model.Document{
		Name: "a.txt",
		Segments: []model.Segment{
			{Text: "hello world", Source: "a.txt", Index: 0},
		},
	}
	chunks := c.Split(doc)
	require.Len(t, chunks, 1)
	require.Equal(t, "hello world", chunks[0].Text)
	require.Equal(t, "a.txt", chunks[0].Source)
	require.Equal(t, 0, chunks[0].Seq)
}

func TestSplit_EmptyDocument(t *testing.T) {
	c := New(1000)
	require.Nil(t, c.Split(nil))
	require.Empty(t, c.Split(&model.Document{Name: "empty.txt"}))
	require.Empty(t, c.Split(&model.Document{
		Name:     "blank.txt",
		Segments: []model.Segment{{Text: "", Source: "blank.txt"}},
	}))
}

func TestSplit_HardCutLongUnbrokenText(t *testing.T) {
	c := New(1000)
	doc := &model.Document{
		Name: "a.txt",
		Segments: []model.Segment{
			{Text: strings.Repeat("x", 1500), Source: "a.txt", Index: 0},
			{Text: strings.Repeat("y", 200), Source: "a.txt", Index: 1},
		},
	}
	chunks := c.Split(doc)
	require.Len(t, chunks, 3)
	require.Equal(t, 1000, len([]rune(chunks[0].Text)))
	require.Equal(t, 500, len([]rune(chunks[1].Text)))
	require.Equal(t, 200, len([]rune(chunks[2].Text)))
	require.Equal(t, []int{0, 1, 2}, []int{chunks[0].Seq, chunks[1].Seq, chunks[2].Seq})
	require.Equal(t, 1, chunks[2].Segment)
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	c := New(100)
	para1 := strings.Repeat("a", 60)
	para2 := strings.Repeat("b", 60)
	doc := &model.Document{
		Name: "a.txt",
		Segments: []model.Segment{
			{Text: para1 + "\n" + para2, Source: "a.txt"},
		},
	}
	chunks := c.Split(doc)
	require.Len(t, chunks, 2)
	require.Equal(t, para1+"\n", chunks[0].Text)
	require.Equal(t, para2, chunks[1].Text)
}

func TestSplit_FallsBackToSpaces(t *testing.T) {
	c := New(10)
	// One line longer than the limit, made of small words.
	doc := &model.Document{
		Name: "a.txt",
		Segments: []model.Segment{
			{Text: "aaa bbb ccc ddd eee", Source: "a.txt"},
		},
	}
	chunks := c.Split(doc)
	require.Greater(t, len(chunks), 1)
	for _, ch := range chunks {
		require.LessOrEqual(t, len([]rune(ch.Text)), 10)
	}
}

func TestSplit_Lossless(t *testing.T) {
	tests := []struct {
		name string
		size int
		text string
	}{
		{name: "paragraphs", size: 50, text: "first paragraph here\nsecond one\nthird paragraph ends"},
		{name: "long words", size: 8, text: "supercalifragilistic expialidocious word"},
		{name: "no separators at all", size: 7, text: strings.Repeat("z", 100)},
		{name: "trailing newline", size: 10, text: "abc def\nghi jkl\n"},
		{name: "multibyte runes", size: 4, text: "日本語のテキストを分割する"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.size)
			doc := &model.Document{
				Name:     "a.txt",
				Segments: []model.Segment{{Text: tt.text, Source: "a.txt"}},
			}
			chunks := c.Split(doc)
			var sb strings.Builder
			for _, ch := range chunks {
				require.LessOrEqual(t, len([]rune(ch.Text)), tt.size)
				sb.WriteString(ch.Text)
			}
			require.Equal(t, tt.text, sb.String())
		})
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(30)
	doc := &model.Document{
		Name: "a.txt",
		Segments: []model.Segment{
			{Text: strings.Repeat("word ", 40), Source: "a.txt"},
		},
	}
	first := c.Split(doc)
	second := c.Split(doc)
	require.Equal(t, first, second)
}
