package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/PlateCut/internal/importer"
	"github.com/piwi3910/PlateCut/internal/model"
)

// loadPieces reads a piece list, choosing the importer by file extension.
// Anything other than .csv, .xlsx/.xlsm and .dxf is read as the plain text
// format.
func (a *app) loadPieces(path string) ([]model.Piece, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		res = importer.ImportCSV(path)
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path)
	default:
		pieces, _, err := importer.LoadPieces(path)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("pieces loaded", "file", path, "count", len(pieces))
		return pieces, nil
	}

	for _, w := range res.Warnings {
		a.logger.Warn(w, "file", path)
	}
	for _, e := range res.Errors {
		a.logger.Error(e, "file", path)
	}
	if len(res.Pieces) == 0 && len(res.Errors) > 0 {
		return nil, fmt.Errorf("importing %s: %s", path, res.Errors[0])
	}
	a.logger.Debug("pieces loaded", "file", path, "count", len(res.Pieces), "errors", len(res.Errors))
	return res.Pieces, nil
}
