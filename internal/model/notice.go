package model

import "time"

type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeError   NoticeType = "error"
	NoticeWarning NoticeType = "warning"
	NoticeInfo    NoticeType = "info"
)

func (t NoticeType) Valid() bool {
	switch t {
	case NoticeSuccess, NoticeError, NoticeWarning, NoticeInfo:
		return true
	}
	return false
}

// Notice is a transient message for one browser client.
type Notice struct {
	ID         string     `json:"id"`
	Type       NoticeType `json:"type"`
	Message    string     `json:"message"`
	DurationMS int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}
