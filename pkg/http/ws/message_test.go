package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueAcceptsStringsAndBools(t *testing.T) {
	cases := map[string]AnswerValue{
		`{"value":"Female"}`: "Female",
		`{"value":"yes"}`:    "yes",
		`{"value":true}`:     "true",
		`{"value":false}`:    "false",
	}
	for raw, want := range cases {
		var p AnswerPayload
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.Equal(t, want, p.Value, raw)
	}

	var p AnswerPayload
	assert.Error(t, json.Unmarshal([]byte(`{"value":3}`), &p))
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeError, ErrorPayload{Code: "wrong_state", Message: "finished"})
	require.NoError(t, err)
	assert.Equal(t, TypeError, msg.Type)
	assert.JSONEq(t, `{"code":"wrong_state","message":"finished"}`, string(msg.Payload))

	msg, err = NewMessage(TypeRestart, nil)
	require.NoError(t, err)
	assert.Nil(t, msg.Payload)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"restart"}`, string(data))
}
