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
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalTags serializes a tag list to bytes: a varint count followed by
// length-prefixed strings.
func MarshalTags(tags []string) []byte {
	size := varint.Int.Size(len(tags))
	for _, t := range tags {
		size += ord.String.Size(t)
	}
	buf := make([]byte, size)
	n := varint.Int.Marshal(len(tags), buf)
	for _, t := range tags {
		n += ord.String.Marshal(t, buf[n:])
	}
	return buf
}

// UnmarshalTags deserializes a tag list produced by MarshalTags.
func UnmarshalTags(data []byte) ([]string, error) {
	count, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: tag count: %w", ErrSerializationFailed, err)
	}
	// Every encoded string takes at least one byte.
	if count < 0 || count > len(data)-n {
		return nil, fmt.Errorf("%w: %d tags in %d bytes", ErrTruncatedData, count, len(data)-n)
	}

	tags := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tag, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: tag %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
		tags = append(tags, tag)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return tags, nil
}
