package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	var server *httptest.Server
	mux.HandleFunc("/extension_versions.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Id,Date,Version,Base URL,Download URL\n"+
			"charges,,master,%[1]s/exts/charges/,%[1]s/exts/charges/archive.zip\n"+
			"location,2018-02-01,v1.1.3,%[1]s/exts/location/,%[1]s/exts/location/archive.zip\n",
			server.URL)
	})
	mux.HandleFunc("/exts/charges/extension.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": {"en": "Charges Extension"}, "codelists": ["chargePaidBy.csv"]}`)
	})
	mux.HandleFunc("/exts/charges/release-schema.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"properties": {"charges": {"title": "Charges"}}}`)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNew(t *testing.T) {
	server := newTestServer(t)

	reg, err := New(context.Background(), server.URL+"/")
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "charges", all[0].ID)
	assert.Equal(t, "master", all[0].Version)
	assert.Equal(t, server.URL+"/exts/charges/", all[0].BaseURL)
	assert.Equal(t, "location", all[1].ID)
	assert.Equal(t, "2018-02-01", all[1].Date)
	assert.Equal(t, server.URL+"/exts/location/archive.zip", all[1].DownloadURL)
}

func TestGet(t *testing.T) {
	server := newTestServer(t)

	reg, err := New(context.Background(), server.URL+"/")
	require.NoError(t, err)

	ext, err := reg.Get("location", "v1.1.3")
	require.NoError(t, err)
	assert.Equal(t, "location", ext.ID)

	_, err = reg.Get("location", "v9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in registry")
}

func TestRemote(t *testing.T) {
	server := newTestServer(t)

	reg, err := New(context.Background(), server.URL+"/")
	require.NoError(t, err)

	ext, err := reg.Get("charges", "master")
	require.NoError(t, err)

	body, err := reg.Remote(context.Background(), ext, "release-schema.json")
	require.NoError(t, err)
	assert.Contains(t, string(body), "Charges")

	_, err = reg.Remote(context.Background(), ext, "missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestMetadata(t *testing.T) {
	server := newTestServer(t)

	reg, err := New(context.Background(), server.URL+"/")
	require.NoError(t, err)

	ext, err := reg.Get("charges", "master")
	require.NoError(t, err)

	meta, err := reg.Metadata(context.Background(), ext)
	require.NoError(t, err)
	assert.Equal(t, "Charges Extension", meta.Name["en"])
	assert.Equal(t, []string{"chargePaidBy.csv"}, meta.Codelists)
}

func TestNewUnreachable(t *testing.T) {
	server := newTestServer(t)
	url := server.URL + "/"
	server.Close()

	_, err := New(context.Background(), url)
	require.Error(t, err)
}
