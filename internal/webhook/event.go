package webhook

// InboundEvent is the decoded shape of a gateway webhook body. Providers are
// not consistent about where fields live, so every block is optional and the
// extractor chains in normalize.go decide which copy of a field wins.
type InboundEvent struct {
	TypeWebhook string `json:"typeWebhook"`
	Event       string `json:"event"`
	ChatID      string `json:"chatId"`
	IDMessage   string `json:"idMessage"`
	TypeMessage string `json:"typeMessage"`
	Message     string `json:"message"`
	Text        string `json:"text"`
	FromMe      bool   `json:"fromMe"`
	Timestamp   int64  `json:"timestamp"`

	SenderData  *SenderData  `json:"senderData"`
	MessageData *MessageData `json:"messageData"`
}

// SenderData is the sender-info block some payloads nest chat identity under.
type SenderData struct {
	ChatID     string `json:"chatId"`
	Sender     string `json:"sender"`
	SenderName string `json:"senderName"`
	FromMe     bool   `json:"fromMe"`
}

// MessageData is the message-info block carrying type and message content.
type MessageData struct {
	ChatID      string `json:"chatId"`
	IDMessage   string `json:"idMessage"`
	TypeMessage string `json:"typeMessage"`
	FromMe      bool   `json:"fromMe"`

	TextMessageData         *TextMessageData         `json:"textMessageData"`
	ExtendedTextMessageData *ExtendedTextMessageData `json:"extendedTextMessageData"`
	QuotedMessage           *QuotedMessage           `json:"quotedMessage"`
}

// TextMessageData carries the body of a plain text message.
type TextMessageData struct {
	TextMessage string `json:"textMessage"`
}

// ExtendedTextMessageData carries the body of a link-preview style message.
type ExtendedTextMessageData struct {
	Text string `json:"text"`
}

// QuotedMessage is the quoted-reply context block. StanzaID identifies the
// original message the reply refers to.
type QuotedMessage struct {
	StanzaID    string `json:"stanzaId"`
	TextMessage string `json:"textMessage"`
}
