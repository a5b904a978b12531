package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

func newTestClient(handler http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewHTTPClient(srv.URL, "test-token", srv.Client(), logger.NewNop()), srv
}

func TestFetchProfile_NotStoredYet(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := client.FetchProfile(context.Background())

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFetchProfile_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile.Profile{Name: "Dr. Stored"})
	}))
	defer srv.Close()

	p, err := client.FetchProfile(context.Background())

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Dr. Stored", p.Name)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestFetchSections_DecodesWireSections(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		// Visible omitted on the first record: must decode as shown.
		w.Write([]byte(`[
			{"id":"about","title":"About","type":"text","order":1,"content":"<p>hi</p>"},
			{"id":"research-interests","title":"Research","type":"list","order":2,"visible":false,"content":["a"]}
		]`))
	}))
	defer srv.Close()

	sections, err := client.FetchSections(context.Background())

	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.True(t, sections[0].Visible)
	assert.Equal(t, "<p>hi</p>", sections[0].Content.Text)
	assert.False(t, sections[1].Visible)
	assert.Equal(t, []string{"a"}, sections[1].Content.List)
}

func TestFetchSections_NonJSONContentType(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	_, err := client.FetchSections(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestFetchSections_ServerError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.FetchSections(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestFetchSections_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewHTTPClient(srv.URL, "", srv.Client(), logger.NewNop())
	srv.Close()

	_, err := client.FetchSections(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestCreateSection_ReturnsGeneratedID(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/sections", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"awards","title":"Awards","type":"list","order":9,"visible":true}`))
	}))
	defer srv.Close()

	id, err := client.CreateSection(context.Background(), section.Section{
		Title: "Awards", Type: section.TypeList, Order: 9, Visible: true,
		Content: section.ListContent("Best paper"),
	})

	require.NoError(t, err)
	assert.Equal(t, "awards", id)
}

func TestCreateSection_MissingIDInResponse(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := client.CreateSection(context.Background(), section.Section{Title: "X", Type: section.TypeText})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestUpdateSection_EncodesPatchWireShape(t *testing.T) {
	var body map[string]json.RawMessage
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/sections/research-interests", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	title := "Interests"
	content := section.ListContent("a", "b")
	err := client.UpdateSection(context.Background(), section.IDResearch, section.Patch{
		Title:   &title,
		Content: &content,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `"Interests"`, string(body["title"]))
	assert.JSONEq(t, `["a","b"]`, string(body["content"]))
	_, hasOrder := body["order"]
	assert.False(t, hasOrder, "unset patch fields must be omitted")
}

func TestDeleteSection_NotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := client.DeleteSection(context.Background(), "no-such-section")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReorderSections_SendsFullIDList(t *testing.T) {
	var body struct {
		IDs []string `json:"ids"`
	}
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/sections/reorder", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := client.ReorderSections(context.Background(), []string{"b", "a", "c"})

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, body.IDs)
}
