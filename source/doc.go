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


// Package source reads project records from the spreadsheet export.
//
// The export is a semicolon-separated UTF-8 file whose header row carries
// the Russian column names of the application form. Each data row becomes
// a core.Record whose ID is derived from the row's 0-based position, so the
// same file always yields the same IDs.
package source
