// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage defines the index abstraction the loader writes through.
//
// The interfaces decouple the ingestion pipeline from the concrete search
// backend: the elastic subpackage implements them against an Elasticsearch
// cluster, and tests use in-memory fakes.
//
// # Thread Safety
//
// A CommitIndexer is shared by every worker in the pool, so implementations
// must be safe for concurrent use.
package storage
