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

package searchcli

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorino/kmercount/api"
	"github.com/zorino/kmercount/pkg/kvstore"
)

func TestNewSearchRequest(t *testing.T) {
	idx := kvstore.Build([]kvstore.Record{{Kmer: "AAC", Count: 7}})
	s, err := server.New(idx, 3)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	dir := t.TempDir()
	queryFile := filepath.Join(dir, "query.fa")
	outputFile := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(queryFile, []byte(">q\nAACGTT\n"), 0600))

	require.NoError(t, NewSearchRequest(SearchRequestOptions{
		ServerHost: ts.URL + "/",
		File:       queryFile,
		OutputFile: outputFile,
	}))

	out, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "7 0 0 7 \n", string(out))
}

func TestNewSearchRequestNoServer(t *testing.T) {
	dir := t.TempDir()
	queryFile := filepath.Join(dir, "query.fa")
	require.NoError(t, os.WriteFile(queryFile, []byte("AACGTT\n"), 0600))

	err := NewSearchRequest(SearchRequestOptions{ServerHost: "http://127.0.0.1:1", File: queryFile})
	assert.Error(t, err)
}

func TestNewSearchRequestOutputErrors(t *testing.T) {
	idx := kvstore.Build([]kvstore.Record{{Kmer: "AAC", Count: 7}})
	s, err := server.New(idx, 3)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	dir := t.TempDir()
	queryFile := filepath.Join(dir, "query.fa")
	require.NoError(t, os.WriteFile(queryFile, []byte(">q\nAACGTT\n"), 0600))

	err = NewSearchRequest(SearchRequestOptions{
		ServerHost: ts.URL,
		File:       queryFile,
		OutputFile: filepath.Join(dir, "missing", "out.txt"),
	})
	assert.Error(t, err)

	if _, statErr := os.Stat("/dev/full"); statErr != nil {
		t.Skip("no /dev/full on this system")
	}
	err = NewSearchRequest(SearchRequestOptions{
		ServerHost: ts.URL,
		File:       queryFile,
		OutputFile: "/dev/full",
	})
	assert.Error(t, err)
}
