package models

// SchemeReply is the response of POST /govscheme.
type SchemeReply struct {
	Response string `json:"response"`
}

// Speaker identifies who authored a ChatMessage.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// ChatMessage is one line of the scheme chatbot transcript.
type ChatMessage struct {
	From        Speaker
	Text        string
	FromBackend bool
}
