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

package gcdb

import (
	"fmt"

	"github.com/zorino/kmercount/pkg/kvstore"
)

// NewGC runs value log garbage collection on the store at dbPath.
func NewGC(dbPath string, iteration int, ratio float64) error {

	kv, err := kvstore.OpenStore(dbPath, false)
	if err != nil {
		return err
	}

	fmt.Println("# Garbage collect...")
	kv.GarbageCollect(iteration, ratio)

	return kv.Close()

}
