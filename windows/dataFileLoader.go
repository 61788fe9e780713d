// Copyright 2025 Magnus Pierre
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

package windows

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2/dialog"

	"tedit/store"
)

// LoadDataFile replaces the table with the contents of filePath and
// refreshes the browser. On error the current table is kept.
func (t *MainWindow) LoadDataFile(filePath string) error {
	kind := store.DetectFileType(filePath)
	t.SetStatus(fmt.Sprintf("Loading %s file: %s", kind, filepath.Base(filePath)))

	if err := t.store.Load(filePath); err != nil {
		return fmt.Errorf("failed to load %s: %w", filepath.Base(filePath), err)
	}

	t.fileName = filepath.Base(filePath)
	t.w.SetTitle("Titanic Manifest Editor - " + t.fileName)
	t.dataBrowser.SetTableName(t.fileName)
	t.dataBrowser.ClearSelection()
	t.dataBrowser.Refresh()
	return nil
}

// handleDataFileLoad loads filePath and reports failures in a dialog.
func (t *MainWindow) handleDataFileLoad(filePath string) {
	if err := t.LoadDataFile(filePath); err != nil {
		logger.Error().Err(err).Str("file", filePath).Msg("error loading file")
		t.SetStatus("Error loading file: " + err.Error())
		dialog.ShowError(err, t.w)
	}
}
