package model

// Turn is one question/answer pair of a conversation.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is a conversation thread. Turns are append-only; existing turns are
// never edited or removed by the application.
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
	Ctime int64  `json:"ctime"`
	Mtime int64  `json:"mtime"`
}
