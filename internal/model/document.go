package model

// Segment is one raw text unit produced by a document loader: a page for
// paginated sources, a paragraph or block for flowed ones.
type Segment struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Page   int    `json:"page"`
	Index  int    `json:"index"`
}

// Document is the in-memory form of one loaded file. It lives for a single
// chat call and is never persisted.
type Document struct {
	Name     string    `json:"name"`
	Segments []Segment `json:"segments"`
}
