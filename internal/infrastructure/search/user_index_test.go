package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-admin/internal/application"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

// fakeES answers like Elasticsearch and records every request.
func fakeES(t *testing.T, status int, body string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{Method: r.Method, Path: r.URL.Path, Body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func TestUserIndex_NotifyIndexesAndRemoves(t *testing.T) {
	es, reqs := fakeES(t, http.StatusOK, `{"result":"created"}`)
	idx := NewUserIndex(es, "users")
	ctx := context.Background()
	u := &application.UserDetail{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@x.io",
		Roles:     []application.RoleItem{{Name: "Admin"}},
	}

	require.NoError(t, idx.NotifyUser(ctx, application.UserEvent{Type: application.UserCreated, UserID: u.ID, User: u}))
	require.NoError(t, idx.NotifyUser(ctx, application.UserEvent{Type: application.UserDeleted, UserID: u.ID}))

	require.Len(t, *reqs, 2)
	put := (*reqs)[0]
	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, "/users/_doc/"+u.ID.String(), put.Path)
	var doc UserDocument
	require.NoError(t, json.Unmarshal([]byte(put.Body), &doc))
	assert.Equal(t, []string{"Admin"}, doc.Roles)
	assert.Equal(t, "jane@x.io", doc.Email)

	del := (*reqs)[1]
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/users/_doc/"+u.ID.String(), del.Path)
}

func TestUserIndex_RemoveMissingIsNotAnError(t *testing.T) {
	es, _ := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	assert.NoError(t, NewUserIndex(es, "users").Remove(context.Background(), uuid.New()))
}

func TestUserIndex_PutErrorStatus(t *testing.T) {
	es, _ := fakeES(t, http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`)
	err := NewUserIndex(es, "users").Put(context.Background(), UserDocument{ID: uuid.New()})
	assert.Error(t, err)
}

func TestUserIndex_Search(t *testing.T) {
	id := uuid.New()
	es, reqs := fakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"`+id.String()+`","_source":{"id":"`+id.String()+`","email":"jane@x.io","first_name":"Jane"}}]}}`)

	docs, err := NewUserIndex(es, "users").Search(context.Background(), "jane", 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "Jane", docs[0].FirstName)

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/users/_search", (*reqs)[0].Path)
	assert.True(t, strings.Contains((*reqs)[0].Body, `"size":10`))
}
