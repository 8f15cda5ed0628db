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


package storage

import (
	"github.com/poiesic/lexfeed/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a RegulatoryDocument to bytes.
func MarshalDocument(doc *core.RegulatoryDocument) []byte {
	buf := make([]byte, core.RegulatoryDocumentMUS.Size(*doc))
	core.RegulatoryDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a RegulatoryDocument from bytes.
func UnmarshalDocument(data []byte) (*core.RegulatoryDocument, error) {
	doc, _, err := core.RegulatoryDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalLogEntry serializes a ProcessingLogEntry to bytes.
func MarshalLogEntry(entry *core.ProcessingLogEntry) []byte {
	buf := make([]byte, core.ProcessingLogEntryMUS.Size(*entry))
	core.ProcessingLogEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalLogEntry deserializes a ProcessingLogEntry from bytes.
func UnmarshalLogEntry(data []byte) (*core.ProcessingLogEntry, error) {
	entry, _, err := core.ProcessingLogEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalKnowledgeItem serializes a KnowledgeItem to bytes.
func MarshalKnowledgeItem(item *core.KnowledgeItem) []byte {
	buf := make([]byte, core.KnowledgeItemMUS.Size(*item))
	core.KnowledgeItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalKnowledgeItem deserializes a KnowledgeItem from bytes.
func UnmarshalKnowledgeItem(data []byte) (*core.KnowledgeItem, error) {
	item, _, err := core.KnowledgeItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalChunk serializes a KnowledgeChunk to bytes.
func MarshalChunk(chunk *core.KnowledgeChunk) []byte {
	buf := make([]byte, core.KnowledgeChunkMUS.Size(*chunk))
	core.KnowledgeChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a KnowledgeChunk from bytes.
func UnmarshalChunk(data []byte) (*core.KnowledgeChunk, error) {
	chunk, _, err := core.KnowledgeChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}
