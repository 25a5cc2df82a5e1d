package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransport struct {
	calls int
	resp  Response
	err   error
}

func (s *stubTransport) Send(_ context.Context, _ Session, _, _ string, _ any) (Response, error) {
	s.calls++
	return s.resp, s.err
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()
	tr := &stubTransport{resp: Response{Body: json.RawMessage(`{"ok":true}`)}}

	res := Execute(context.Background(), tr, TokenSession("t"), Operation{Method: http.MethodPost, Path: "/x"})

	assert.True(t, res.OK)
	assert.NoError(t, res.Err)
	assert.JSONEq(t, `{"ok":true}`, string(res.Payload))
	assert.Equal(t, 1, tr.calls)
}

func TestExecute_EmptySuccess(t *testing.T) {
	t.Parallel()
	tr := &stubTransport{resp: Response{Empty: true}}

	res := Execute(context.Background(), tr, BasicSession(Credentials{Username: "u"}), Operation{})

	assert.True(t, res.OK)
	assert.True(t, res.Empty)
}

func TestExecute_Failure(t *testing.T) {
	t.Parallel()
	tr := &stubTransport{err: &Error{Method: "POST", Path: "/x", StatusCode: 500, Err: errors.New("boom")}}

	res := Execute(context.Background(), tr, TokenSession("t"), Operation{})

	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, ErrTransport)
}

func TestExecute_NotAuthenticated(t *testing.T) {
	t.Parallel()
	tr := &stubTransport{}

	res := Execute(context.Background(), tr, Session{}, Operation{Method: http.MethodPost, Path: "/x"})

	assert.False(t, res.OK)
	assert.True(t, IsNotAuthenticated(res.Err))
	assert.Zero(t, tr.calls)
}

func TestSessions(t *testing.T) {
	t.Parallel()

	assert.False(t, Session{}.Authenticated())
	assert.False(t, TokenSession("").Authenticated())
	assert.False(t, BasicSession(Credentials{}).Authenticated())

	tok := TokenSession("abc")
	require.True(t, tok.Authenticated())
	assert.Equal(t, SchemeToken, tok.Scheme())

	basic := BasicSession(Credentials{Username: "admin", Password: "x"})
	require.True(t, basic.Authenticated())
	assert.Equal(t, SchemeBasic, basic.Scheme())
}
