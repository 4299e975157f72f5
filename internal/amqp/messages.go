package amqp

import (
	"encoding/json"
	"time"

	"financas/internal/core"
)

// Operations carried by a RowMessage.
const (
	OpAppend  = "append"
	OpRewrite = "rewrite"
)

// RowMessage mirrors one mutation of the local store so the sync worker can
// replay it against Google Sheets. Appends carry the single row; rewrites
// carry the table's full replacement contents.
type RowMessage struct {
	Op        string     `json:"op"`
	Table     string     `json:"table"`
	Row       core.Row   `json:"row,omitempty"`
	Rows      []core.Row `json:"rows,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewAppendMessage builds the mirror message for a single appended row.
func NewAppendMessage(table string, row core.Row) *RowMessage {
	return &RowMessage{
		Op:        OpAppend,
		Table:     table,
		Row:       row,
		Timestamp: time.Now(),
	}
}

// NewRewriteMessage builds the mirror message for a full table rewrite.
func NewRewriteMessage(table string, rows []core.Row) *RowMessage {
	return &RowMessage{
		Op:        OpRewrite,
		Table:     table,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RowMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RowMessageFromJSON creates a message from JSON bytes.
func RowMessageFromJSON(data []byte) (*RowMessage, error) {
	var msg RowMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
