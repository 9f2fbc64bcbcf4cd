package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/karmabot/karmalog/internal/errors"
	"github.com/karmabot/karmalog/internal/feed"
)

const sampleAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>parrot commits</title>
  <entry>
    <updated>2020-01-02T00:00:00Z</updated>
    <author><name>wcoleda</name></author>
    <link rel="alternate" href="http://code.google.com/p/parrot/source/detail?r=2"/>
    <content type="html">Changed Paths:&amp;nbsp;log two</content>
  </entry>
  <entry>
    <updated>2020-01-01T00:00:00Z</updated>
    <author><name>jkeenan</name></author>
    <link rel="alternate" href="http://code.google.com/p/parrot/source/detail?r=1"/>
    <content type="html">log one</content>
  </entry>
</feed>`

func newTestClient() *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(100, logger)
}

func TestParseAtom(t *testing.T) {
	items, err := ParseAtom([]byte(sampleAtom))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "wcoleda", items[0].Author)
	assert.Equal(t, "http://code.google.com/p/parrot/source/detail?r=2", items[0].Link)
	assert.Equal(t, feed.TimeKey("2020-01-02T00:00:00Z"), items[0].Updated)
	// One level of XML unescaping leaves the entity-encoded HTML body.
	assert.Equal(t, "Changed Paths:&nbsp;log two", items[0].Content)
}

func TestParseAtomRejectsGarbage(t *testing.T) {
	_, err := ParseAtom([]byte("this is not xml"))
	assert.Error(t, err)
}

func TestCreditsDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("----\nN: Will Coleda\nU: coke\n"))
	}))
	defer srv.Close()

	text, err := newTestClient().CreditsDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "U: coke")
}

func TestProjectFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleAtom))
	}))
	defer srv.Close()

	items, err := newTestClient().ProjectFeed(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchErrorsAreNetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient().CreditsDocument(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, kerrors.IsType(err, kerrors.TypeNetwork))
}
