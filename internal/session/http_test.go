package session

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/quiz"
)

type httpFixture struct {
	fixture
	mux *http.ServeMux
}

func newHTTPFixture(t *testing.T) httpFixture {
	fx := newFixture(t)
	mux := http.NewServeMux()
	NewHTTPHandlers(fx.service, zerolog.New(io.Discard)).Register(mux)
	return httpFixture{fixture: fx, mux: mux}
}

func (f httpFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f httpFixture) start(t *testing.T, ruleSet string) StartResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/v1/sessions", "", StartRequest{RuleSet: ruleSet})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp StartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	code, _ := body["error"].(string)
	return code
}

func TestHTTPStartWithEmptyBody(t *testing.T) {
	f := newHTTPFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp StartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "classic", resp.View.RuleSet)
	require.NotNil(t, resp.View.Prompt)
	assert.Equal(t, []string{"Female", "Male"}, resp.View.Prompt.Options)
}

func TestHTTPFullRun(t *testing.T) {
	f := newHTTPFixture(t)
	s := f.start(t, "classic")
	path := "/v1/sessions/" + s.View.SessionID.String()

	rec := f.do(t, http.MethodPost, path+"/answers", s.Token, map[string]interface{}{"value": "Female"})
	require.Equal(t, http.StatusOK, rec.Code)

	var view View
	for i := 0; i < 7; i++ {
		rec = f.do(t, http.MethodPost, path+"/answers", s.Token, map[string]interface{}{"value": false})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		view = View{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	}
	assert.Equal(t, quiz.StateFinished, view.State)
	require.NotNil(t, view.Results)
	require.Len(t, view.Results.Suggested, 3)
	assert.Equal(t, catalog.CombinedPill, view.Results.Suggested[0].Name)

	rec = f.do(t, http.MethodPost, path+"/answers", s.Token, map[string]interface{}{"value": "yes"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "wrong_state", errorCode(t, rec))

	rec = f.do(t, http.MethodPost, path+"/restart", s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, path, s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = View{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, quiz.StateAskingSex, view.State)

	rec = f.do(t, http.MethodDelete, path, s.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, path, s.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session_not_found", errorCode(t, rec))
}

func TestHTTPAuthorization(t *testing.T) {
	f := newHTTPFixture(t)
	a := f.start(t, "")
	b := f.start(t, "")
	path := "/v1/sessions/" + a.View.SessionID.String()

	rec := f.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))

	rec = f.do(t, http.MethodGet, path, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", errorCode(t, rec))

	rec = f.do(t, http.MethodGet, path, b.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/sessions/not-a-uuid", a.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_session_id", errorCode(t, rec))
}

func TestHTTPBadInput(t *testing.T) {
	f := newHTTPFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/sessions", "", StartRequest{RuleSet: "weekly"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_rule_set", errorCode(t, rec))

	s := f.start(t, "")
	path := "/v1/sessions/" + s.View.SessionID.String() + "/answers"

	rec = f.do(t, http.MethodPost, path, s.Token, map[string]interface{}{"value": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_answer", errorCode(t, rec))

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+s.Token)
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))
}

func TestHTTPTokenForDeletedSession(t *testing.T) {
	f := newHTTPFixture(t)
	id := uuid.New()
	token, err := f.tokens.Issue(id, "classic")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/v1/sessions/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPCatalogEndpoints(t *testing.T) {
	f := newHTTPFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/rule-sets", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rs struct {
		RuleSets []RuleSetInfo `json:"rule_sets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rs))
	require.Len(t, rs.RuleSets, 2)
	assert.Equal(t, "classic", rs.RuleSets[0].Name)
	assert.True(t, rs.RuleSets[0].Default)
	assert.Len(t, rs.RuleSets[0].Questions, 7)
	assert.False(t, rs.RuleSets[1].Default)

	rec = f.do(t, http.MethodGet, "/v1/methods", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ms struct {
		Methods []map[string]interface{} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ms))
	assert.Len(t, ms.Methods, 10)
}
