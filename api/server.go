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
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/xid"
	"github.com/zorino/kmercount/internal/helper/duration"
	"github.com/pkg/errors"
	"github.com/zorino/kmercount/internal/helper/input"
	"github.com/zorino/kmercount/pkg/kmer"
	"github.com/zorino/kmercount/pkg/kvstore"
	"github.com/zorino/kmercount/pkg/search"
)

type DBInfo struct {
	Kmers       int    `json:"kmers"`
	Fingerprint string `json:"fingerprint"`
	K           int    `json:"k"`
}

// Server answers count queries against a loaded, read only index.
type Server struct {
	Index  kvstore.Lookuper
	K      int
	DBInfo DBInfo
}

func NewServer(indexPath string, portNumber int, k int) error {

	/* Open index */
	fmt.Printf(" + Opening index.. ")
	startTime := time.Now()

	idx, closer, err := kvstore.Open(indexPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := New(idx, k)
	if err != nil {
		return err
	}

	fmt.Printf("done [%s]\n", duration.FmtDuration(time.Since(startTime)))

	/* Set port */
	var port bytes.Buffer
	port.WriteString(":")
	port.WriteString(strconv.Itoa(portNumber))

	/* Start server */
	fmt.Printf(" + kmercount server listening on port %d (%d k-mers, k=%d)\n", portNumber, s.DBInfo.Kmers, k)

	return http.ListenAndServe(port.String(), s.Router())

}

func New(idx kvstore.Lookuper, k int) (*Server, error) {

	if k < 1 || k > kmer.MaxK {
		return nil, errors.Wrapf(kmer.ErrKOverflow, "k=%d", k)
	}

	nbKmers, fingerprint, err := kvstore.Size(idx)
	if err != nil {
		return nil, err
	}

	return &Server{
		Index: idx,
		K:     k,
		DBInfo: DBInfo{
			Kmers:       nbKmers,
			Fingerprint: fmt.Sprintf("%016x", fingerprint),
			K:           k,
		},
	}, nil

}

func (s *Server) Router() chi.Router {

	r := chi.NewRouter()

	// RESTy routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/query", s.query)
		r.Get("/dbinfo", s.dbInfo)
	})

	return r

}

func (s *Server) dbInfo(w http.ResponseWriter, r *http.Request) {

	b, err := json.Marshal(s.DBInfo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(b)

}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {

	requestId := xid.New().String()
	startTime := time.Now()

	body, err := input.Wrap(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var out bytes.Buffer
	stats, err := search.QueryLines(s.Index, body, &out, s.K)
	if err != nil {
		log.Printf("[%s] query failed: %s", requestId, err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("[%s] %d sequences, %d skipped [%s]", requestId, stats.Sequences, stats.Skipped, duration.FmtDuration(time.Since(startTime)))

	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	w.Header().Set("X-Request-Id", requestId)
	w.Write(out.Bytes())

}
