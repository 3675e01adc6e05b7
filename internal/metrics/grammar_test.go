package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageToolChecker_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/check", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "en-US", r.FormValue("language"))
		assert.Equal(t, "Me has errors", r.FormValue("text"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[
			{"message":"Possible agreement error","offset":0,"length":2,"rule":{"id":"AGREEMENT"}},
			{"message":"Spelling mistake","offset":7,"length":6,"rule":{"id":"MORFOLOGIK_RULE_EN_US"}}
		]}`))
	}))
	defer srv.Close()

	checker := NewLanguageToolChecker(srv.URL)
	issues, err := checker.Check(context.Background(), "Me has errors")
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, "AGREEMENT", issues[0].RuleID)
	assert.Equal(t, "Possible agreement error", issues[0].Message)
	assert.Equal(t, 7, issues[1].Offset)
}

func TestLanguageToolChecker_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	checker := NewLanguageToolChecker(srv.URL)
	_, err := checker.Check(context.Background(), "text")
	assert.Error(t, err)
}

func TestLanguageToolChecker_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	checker := NewLanguageToolChecker(srv.URL)
	_, err := checker.Check(context.Background(), "text")
	assert.Error(t, err)
}
