package chat

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Request is the body posted to /api/chat.
type Request struct {
	Message string `json:"message"`
}

// Response is the body /api/chat answers with. Exactly one field is set.
type Response struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Reply is a decoded /api/chat body as seen by the widget. Fields keep their
// raw JSON so that absent and non-string values render best-effort.
type Reply struct {
	Response json.RawMessage `json:"response,omitempty"`
	Error    json.RawMessage `json:"error,omitempty"`
}

// DecodeReply parses a reply body. Bodies that are not JSON, or are JSON null,
// are rejected. Non-object bodies decode to an empty Reply.
func DecodeReply(body []byte) (Reply, error) {
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return Reply{}, err
	}
	if probe == nil {
		return Reply{}, errNullReply
	}
	if _, ok := probe.(map[string]any); !ok {
		return Reply{}, nil
	}

	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Reply{}, err
	}
	return reply, nil
}

// Text is what the widget shows for this reply: the response when it is
// truthy, otherwise the error prefixed with "Error: ".
func (r Reply) Text() string {
	if truthy(r.Response) {
		return displayValue(r.Response)
	}
	return ErrorPrefix + displayValue(r.Error)
}

type replyError string

func (e replyError) Error() string { return string(e) }

const errNullReply = replyError("reply body is null")

func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return true
	}
}

// displayValue stringifies a JSON value the way a browser would when
// concatenating it into a string.
func displayValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "undefined"
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "undefined"
	}
	return stringify(v)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if item == nil {
				continue
			}
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}
