package entity

// ChatState is where a chat is in the diagnosis dialogue.
type ChatState string

const (
	StateIdle          ChatState = "idle"           // waiting for a command
	StateAwaitingPhoto ChatState = "awaiting_photo" // /check was sent
	StateProcessing    ChatState = "processing"     // cascade is running
)

// ChatSession is the bot-side state of one Telegram chat.
type ChatSession struct {
	UserID        int64
	ChatID        int64
	State         ChatState
	LastDiagnosis *PredictionResult
	Diagnoses     int
}

// NewChatSession starts a session in the idle state.
func NewChatSession(userID, chatID int64) *ChatSession {
	return &ChatSession{
		UserID: userID,
		ChatID: chatID,
		State:  StateIdle,
	}
}

func (s *ChatSession) SetState(state ChatState) {
	s.State = state
}

// Record stores a finished diagnosis and returns the chat to idle.
func (s *ChatSession) Record(result PredictionResult) {
	s.LastDiagnosis = &result
	s.Diagnoses++
	s.State = StateIdle
}
