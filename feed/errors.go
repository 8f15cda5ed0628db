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


package feed

import "errors"

var (
	// ErrFetchFailed is returned when a feed could not be retrieved after
	// all retry attempts.
	ErrFetchFailed = errors.New("feed fetch failed")

	// ErrParseFailed is returned when feed bytes could not be decoded.
	ErrParseFailed = errors.New("feed parse failed")

	// ErrSourceNotRegistered is returned when a source ID has no resolved
	// parser in the registry.
	ErrSourceNotRegistered = errors.New("feed source not registered")
)
