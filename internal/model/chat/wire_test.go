package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyTextPrefersResponse(t *testing.T) {
	reply, err := DecodeReply([]byte(`{"response":"Hello!"}`))
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply.Text())
}

func TestReplyTextFallsBackToError(t *testing.T) {
	reply, err := DecodeReply([]byte(`{"error":"bad input"}`))
	require.NoError(t, err)
	assert.Equal(t, "Error: bad input", reply.Text())
}

func TestReplyTextMissingFieldsRenderUndefined(t *testing.T) {
	cases := map[string]string{
		"empty object":   `{}`,
		"array body":     `[1,2]`,
		"string body":    `"hi"`,
		"empty response": `{"response":""}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			reply, err := DecodeReply([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, "Error: undefined", reply.Text())
		})
	}
}

func TestReplyTextNonStringValues(t *testing.T) {
	reply, err := DecodeReply([]byte(`{"response":42}`))
	require.NoError(t, err)
	assert.Equal(t, "42", reply.Text())

	reply, err = DecodeReply([]byte(`{"response":null,"error":null}`))
	require.NoError(t, err)
	assert.Equal(t, "Error: null", reply.Text())

	reply, err = DecodeReply([]byte(`{"error":{"code":1}}`))
	require.NoError(t, err)
	assert.Equal(t, "Error: [object Object]", reply.Text())
}

func TestDecodeReplyRejectsInvalidBodies(t *testing.T) {
	for _, body := range []string{``, `<html>`, `null`, `{"response":`} {
		_, err := DecodeReply([]byte(body))
		assert.Error(t, err, "body %q", body)
	}
}
