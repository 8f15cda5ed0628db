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


package ingestion

import "errors"

var (
	// ErrMissingURL is returned when a request has no document URL.
	ErrMissingURL = errors.New("integration request requires a URL")

	// ErrMissingText is returned when a request has no extracted text.
	ErrMissingText = errors.New("integration request requires extracted text")

	// ErrMissingSource is returned when a request has no source attribution.
	ErrMissingSource = errors.New("integration request requires a source")
)
