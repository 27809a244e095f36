package captions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

const listBody = `{"items":[
	{"id":"es-track","snippet":{"language":"es","trackKind":"standard","name":"Español"}},
	{"id":"en-track","snippet":{"language":"en","trackKind":"ASR"}},
	{"id":"broken"}
]}`

// fakeDataAPI serves captions.list and captions.download.
type fakeDataAPI struct {
	listStatus int
	listBody   string
	doc        string
	queries    []string
	downloads  []string
}

func (f *fakeDataAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if strings.HasSuffix(r.URL.Path, "/captions") {
		f.queries = append(f.queries, r.URL.RawQuery)
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
		}
		io.WriteString(w, f.listBody)
		return
	}
	f.downloads = append(f.downloads, r.URL.Path+"?"+r.URL.RawQuery)
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, f.doc)
}

func newTestDataAPI(t *testing.T, f *fakeDataAPI) *DataAPI {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	api, err := NewDataAPI(context.Background(), Credential{APIKey: "yt-test"},
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return api
}

func TestNewDataAPIRequiresCredential(t *testing.T) {
	_, err := NewDataAPI(context.Background(), Credential{})
	assert.Error(t, err)
}

func TestDataAPIListTracks(t *testing.T) {
	f := &fakeDataAPI{listBody: listBody}
	api := newTestDataAPI(t, f)

	tracks, err := api.ListTracks(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, []Track{
		{ID: "es-track", Language: "es", Name: "Español"},
		{ID: "en-track", Language: "en", AutoGenerated: true},
	}, tracks, "items without a snippet are skipped")

	require.Len(t, f.queries, 1)
	assert.Contains(t, f.queries[0], "videoId=abc123")
	assert.Contains(t, f.queries[0], "part=snippet")
}

func TestDataAPIResolveDownloadsSRT(t *testing.T) {
	f := &fakeDataAPI{listBody: listBody, doc: "\ufeff" + srtDoc}
	r := NewAuthenticated(newTestDataAPI(t, f))

	text, err := r.Resolve(context.Background(), "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, "Hello world Second line", text)

	require.Len(t, f.downloads, 1)
	assert.Contains(t, f.downloads[0], "/captions/en-track")
	assert.Contains(t, f.downloads[0], "tfmt=srt")
}

func TestDataAPIErrorReasons(t *testing.T) {
	tests := []struct {
		status int
		reason string
		want   error
	}{
		{http.StatusForbidden, "quotaExceeded", ErrQuotaExceeded},
		{http.StatusForbidden, "forbidden", ErrAccessDenied},
		{http.StatusNotFound, "videoNotFound", ErrVideoNotFound},
		{http.StatusNotFound, "notFound", ErrVideoNotFound},
		{http.StatusBadRequest, "invalidValue", ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			body := fmt.Sprintf(`{"error":{"code":%d,"message":"nope","errors":[{"domain":"youtube","reason":%q,"message":"nope"}]}}`,
				tt.status, tt.reason)
			f := &fakeDataAPI{listStatus: tt.status, listBody: body}
			r := NewAuthenticated(newTestDataAPI(t, f))

			_, err := r.Resolve(context.Background(), "abc123", "")
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.downloads)
		})
	}
}

func TestDataAPIDownloadSizeLimit(t *testing.T) {
	block := "1\n00:00:01,000 --> 00:00:02,000\nsome caption words\n\n"
	var sb strings.Builder
	for sb.Len() <= maxCaptionBytes {
		sb.WriteString(block)
	}

	f := &fakeDataAPI{listBody: listBody, doc: sb.String()}
	r := NewAuthenticated(newTestDataAPI(t, f))
	text, err := r.Resolve(context.Background(), "abc123", "")
	assert.ErrorIs(t, err, ErrTransport)
	assert.Empty(t, text, "no partial caption text")

	f.doc = strings.Repeat("x", maxCaptionBytes)
	doc, err := newTestDataAPI(t, f).Download(context.Background(), "en-track", "srt")
	require.NoError(t, err)
	assert.Len(t, doc, maxCaptionBytes)
}
