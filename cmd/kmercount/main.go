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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zorino/kmercount/api"
	"github.com/zorino/kmercount/pkg/backupdb"
	"github.com/zorino/kmercount/pkg/exportdb"
	"github.com/zorino/kmercount/pkg/gcdb"
	"github.com/zorino/kmercount/pkg/makedb"
	"github.com/zorino/kmercount/pkg/restoredb"
	"github.com/zorino/kmercount/pkg/search"
	"github.com/zorino/kmercount/pkg/searchcli"
)

const usage = `
 kmercount

  // Index

  build [-strict] <kmer_file> <output_index_file>
                    build the canonical k-mer count index
                    (kmer_file: "<kmer> <count>" lines, plain or gzip)
      -strict       skip k-mers with bases other than ACGT (default: index them as A)

  // Query

  query [-k 31] <input_index> <query_file> <output_file>
                    count every k-mer window of each query sequence
                    (input_index: index file or exported store directory)
      -k            k-mer size (default 31, max 32)

  serve [-p 8321] [-k 31] <input_index>
                    start a query server (POST /api/query, GET /api/dbinfo)
      -p            port (default: 8321)
      -k            k-mer size (default 31, max 32)

  remote [-h http://localhost:8321] <query_file> [output_file]
                    send a query file to a running server (default output: stdout)
      -h            server host

  // Store

  export <index_file> <store_dir>
                    copy an index file into a badger store
  backup <store_dir> <backup_file>
                    backup a badger store
  restore <backup_file> <store_dir>
                    restore a backup into a new badger store
  gc [-it 10] [-ratio 0.5] <store_dir>
                    run garbage collection on a badger store

`

func printUsage() {
	fmt.Fprint(os.Stderr, usage)
}

// parseArgs parses the flags of a mode and checks its number of arguments.
func parseArgs(fs *flag.FlagSet, args []string, nbArgs int) []string {
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != nbArgs {
		printUsage()
		os.Exit(1)
	}
	return fs.Args()
}

func main() {

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	mode := os.Args[1]
	fs := flag.NewFlagSet(mode, flag.ContinueOnError)

	var err error

	switch mode {

	case "build":
		var strict = fs.Bool("strict", false, "skip k-mers with non ACGT bases")
		args := parseArgs(fs, os.Args[2:], 2)
		err = makedb.NewMakedb(args[0], args[1], makedb.Options{Strict: *strict})

	case "query":
		var kmerSize = fs.Int("k", search.KMER_SIZE, "k-mer size")
		args := parseArgs(fs, os.Args[2:], 3)
		err = search.NewSearch(args[0], args[1], args[2], *kmerSize)

	case "serve":
		var portNumber = fs.Int("p", 8321, "port argument")
		var kmerSize = fs.Int("k", search.KMER_SIZE, "k-mer size")
		args := parseArgs(fs, os.Args[2:], 1)
		err = server.NewServer(args[0], *portNumber, *kmerSize)

	case "remote":
		var serverHost = fs.String("h", "http://localhost:8321", "server host")
		fs.Usage = printUsage
		if perr := fs.Parse(os.Args[2:]); perr != nil || fs.NArg() < 1 || fs.NArg() > 2 {
			printUsage()
			os.Exit(1)
		}
		outputFile := "stdout"
		if fs.NArg() == 2 {
			outputFile = fs.Arg(1)
		}
		err = searchcli.NewSearchRequest(searchcli.SearchRequestOptions{
			ServerHost: *serverHost,
			File:       fs.Arg(0),
			OutputFile: outputFile,
		})

	case "export":
		args := parseArgs(fs, os.Args[2:], 2)
		err = exportdb.NewExport(args[0], args[1])

	case "backup":
		args := parseArgs(fs, os.Args[2:], 2)
		err = backupdb.Backupdb(args[0], args[1])

	case "restore":
		args := parseArgs(fs, os.Args[2:], 2)
		err = restoredb.RestoreDB(args[0], args[1])

	case "gc":
		var gcIteration = fs.Int("it", 10, "number of GC iterations")
		var gcRatio = fs.Float64("ratio", 0.5, "ratio for GC")
		args := parseArgs(fs, os.Args[2:], 1)
		err = gcdb.NewGC(args[0], *gcIteration, *gcRatio)

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", mode)
		printUsage()
		os.Exit(1)

	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

}
