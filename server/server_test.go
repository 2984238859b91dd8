package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	babel "github.com/Redundancy/go-babel"
	"github.com/Redundancy/go-babel/address"
	"github.com/Redundancy/go-babel/alphabet"
	"github.com/Redundancy/go-babel/bookmark"
	"github.com/Redundancy/go-babel/layout"
	"github.com/Redundancy/go-babel/params"
	"github.com/Redundancy/go-babel/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var small = layout.Layout{
	Walls:   4,
	Shelves: 5,
	Books:   32,
	Pages:   4,
	Lines:   2,
	Chars:   5,
}

func newTestServer(t *testing.T) (*httptest.Server, *babel.Library) {
	t.Helper()

	set, err := params.Generate(
		context.Background(),
		small.BookLength(),
		params.WithRand(rand.New(rand.NewSource(1))),
	)
	require.NoError(t, err)

	lib, err := babel.New(small, set, bookmark.NewMemoryStore(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(New(lib, logger))
	t.Cleanup(server.Close)

	return server, lib
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func decode(t *testing.T, response *http.Response, into any) {
	t.Helper()
	defer response.Body.Close()
	require.NoError(t, json.NewDecoder(response.Body).Decode(into))
}

func TestRef(t *testing.T) {
	server, lib := newTestServer(t)

	response, err := http.Get(server.URL + "/ref/3.2.4.7.2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var body map[string]any
	decode(t, response, &body)

	want, err := lib.Page(context.Background(), "3.2.4.7.2")
	require.NoError(t, err)

	hash := bookmark.Key("3")
	assert.Equal(t, want.Content, body["content"])
	assert.Equal(t, hash+".2.4.7.2", body["identifier"])
	assert.Equal(t, hash, body["room"])
	assert.Equal(t, hash, body["bookmark"])
	assert.Equal(t, hash+".2.4.7.1", body["prevIdentifier"])
	assert.Equal(t, hash+".2.4.7.3", body["nextIdentifier"])
	assert.Equal(t, float64(2), body["page"])
}

func TestRefAcceptsBookmarks(t *testing.T) {
	server, lib := newTestServer(t)

	short, err := lib.Shorten(context.Background(), "Zz9.1.1.1.1")
	require.NoError(t, err)

	response, err := http.Get(server.URL + "/ref/" + short)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	response, err = http.Get(server.URL + "/fullref/" + short)
	require.NoError(t, err)
	defer response.Body.Close()

	full, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, "Zz9.1.1.1.1", string(full))
}

func TestErrorStatus(t *testing.T) {
	server, _ := newTestServer(t)

	missing := bookmark.Key("x") + ".1.1.1.1"

	cases := []struct {
		path   string
		status int
	}{
		{"/ref/1.1.1.1", http.StatusBadRequest},
		{"/ref/1.9.1.1.1", http.StatusBadRequest},
		{"/ref/" + missing, http.StatusNotFound},
		{"/fullref/" + missing, http.StatusNotFound},
		{"/fullref/1.1", http.StatusBadRequest},
	}

	for _, c := range cases {
		response, err := http.Get(server.URL + c.path)
		require.NoError(t, err)
		response.Body.Close()

		assert.Equal(t, c.status, response.StatusCode, c.path)
	}
}

func TestGetUID(t *testing.T) {
	server, _ := newTestServer(t)

	response, err := http.Post(
		server.URL+"/get-uid",
		"application/json",
		strings.NewReader(`{"identifier":"00abc.1.2.3.4"}`),
	)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var body uidRequest
	decode(t, response, &body)
	assert.Equal(t, bookmark.Key("abc")+".1.2.3.4", body.Identifier)

	response, err = http.Post(server.URL+"/get-uid", "application/json", strings.NewReader(`{"identifier":"abc"}`))
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, err = http.Post(server.URL+"/get-uid", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestSearch(t *testing.T) {
	server, lib := newTestServer(t)

	request, err := json.Marshal(searchRequest{Content: "abc", Mode: "chars"})
	require.NoError(t, err)

	response, err := http.Post(server.URL+"/search", "application/json", bytes.NewReader(request))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var result search.Result
	decode(t, response, &result)

	require.NotNil(t, result.Highlight)
	assert.True(t, bookmark.IsKey(result.Identifier))

	book, err := lib.Book(context.Background(), result.Identifier)
	require.NoError(t, err)

	h := result.Highlight
	start := (h.Page-1)*small.PageLength() + h.StartLine*small.Chars + h.StartCol
	assert.Equal(t, "abc", book[start:start+3])
}

func TestSearchErrors(t *testing.T) {
	server, _ := newTestServer(t)

	for _, body := range []string{
		`{"content":"abc","mode":"regex"}`,
		`{"content":"ab!","mode":"chars"}`,
		fmt.Sprintf(`{"content":%q,"mode":"chars"}`, strings.Repeat("a", small.BookLength()+1)),
	} {
		response, err := http.Post(server.URL+"/search", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		response.Body.Close()

		assert.Equal(t, http.StatusBadRequest, response.StatusCode, body)
	}
}

func TestRandom(t *testing.T) {
	server, _ := newTestServer(t)

	client := &http.Client{CheckRedirect: noRedirect}

	response, err := client.Get(server.URL + "/random")
	require.NoError(t, err)
	response.Body.Close()

	require.Equal(t, http.StatusFound, response.StatusCode)

	location := response.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/ref/@"), location)

	followed, err := http.Get(server.URL + location)
	require.NoError(t, err)
	followed.Body.Close()
	assert.Equal(t, http.StatusOK, followed.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t)

	response, err := http.Get(server.URL + "/search")
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(&address.MalformedError{}))
	assert.Equal(t, http.StatusBadRequest, StatusOf(&address.OutOfRangeError{}))
	assert.Equal(t, http.StatusBadRequest, StatusOf(&alphabet.InvalidCharacterError{}))
	assert.Equal(t, http.StatusBadRequest, StatusOf(search.ErrQueryTooLong))
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("wrapped: %w", bookmark.ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("disk on fire")))
}

func TestServeStopsWithContext(t *testing.T) {
	_, lib := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	s := New(lib, slog.New(slog.NewTextHandler(io.Discard, nil)))
	go func() {
		done <- s.Serve(ctx, listener)
	}()

	response, err := http.Get("http://" + listener.Addr().String() + "/ref/1.1.1.1.1")
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewRequiresLogger(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil) })
}
