/*
Copyright 2019 The kaamer Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorino/kmercount/pkg/kmer"
	"github.com/zorino/kmercount/pkg/kvstore"
)

func newTestServer(t *testing.T) (*httptest.Server, *kvstore.Index) {
	t.Helper()
	idx := kvstore.Build([]kvstore.Record{{Kmer: "AAC", Count: 7}, {Kmer: "CGT", Count: 2}})
	s, err := New(idx, 3)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, idx
}

func TestQueryEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/query", "text/plain", strings.NewReader(">q\nAACGTT\nAC\n"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "7 2 2 7 \n", string(body))
}

func TestDBInfoEndpoint(t *testing.T) {
	ts, idx := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/dbinfo")
	require.NoError(t, err)
	defer resp.Body.Close()

	info := DBInfo{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, DBInfo{Kmers: 2, Fingerprint: fmt.Sprintf("%016x", idx.Fingerprint()), K: 3}, info)
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/query")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewRejectsKmerSize(t *testing.T) {
	idx := kvstore.Build([]kvstore.Record{{Kmer: "AAC", Count: 7}})

	for _, k := range []int{0, -1, kmer.MaxK + 1, 40} {
		s, err := New(idx, k)
		assert.Nil(t, s, "k=%d", k)
		assert.ErrorIs(t, err, kmer.ErrKOverflow, "k=%d", k)
	}

	s, err := New(idx, kmer.MaxK)
	require.NoError(t, err)
	assert.Equal(t, kmer.MaxK, s.K)
}
