package bus

// InboundMessage is a message-create or message-update event delivered by
// the chat platform adapter.
type InboundMessage struct {
	GuildID    string `json:"guild_id"`
	ChannelID  string `json:"channel_id"`
	MessageID  string `json:"message_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	Content    string `json:"content"`
	SenderBot  bool   `json:"sender_bot"`
	Edited     bool   `json:"edited,omitempty"`
}

// ReactionEvent is an on-demand translation request triggered by a flag
// reaction. The platform adapter resolves the emoji to a language tag
// before publishing; events with unknown emojis are never published.
type ReactionEvent struct {
	GuildID    string `json:"guild_id"`
	ChannelID  string `json:"channel_id"`
	MessageID  string `json:"message_id"`
	UserID     string `json:"user_id"`
	TargetLang string `json:"target_lang"`
}
