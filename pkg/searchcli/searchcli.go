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
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type SearchRequestOptions struct {
	ServerHost string
	File       string
	OutputFile string
}

// NewSearchRequest sends the query file to a running kmercount server
// and writes the returned counts to OutputFile (stdout when empty).
func NewSearchRequest(options SearchRequestOptions) error {

	f, err := os.Open(options.File)
	if err != nil {
		return errors.Wrap(err, "could not open query file")
	}
	defer f.Close()

	host := strings.TrimSuffix(options.ServerHost, "/") + "/api/query"

	resp, err := http.Post(host, "text/plain", f)
	if err != nil {
		return errors.Wrapf(err, "no kmercount server running at %s", options.ServerHost)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := ioutil.ReadAll(resp.Body)
		return errors.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if options.OutputFile == "" || options.OutputFile == "stdout" {
		_, err = io.Copy(os.Stdout, resp.Body)
		return errors.Wrap(err, "writing counts")
	}

	out, err := os.Create(options.OutputFile)
	if err != nil {
		return errors.Wrapf(err, "could not open output file %s", options.OutputFile)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return errors.Wrap(err, "writing counts")
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", options.OutputFile)
	}

	return nil

}
