package importer

import (
	"io"

	"github.com/lfonseca/moneta/internal/ledger"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Parser interface {
	Parse(r io.Reader) (ledger.BatchParams, error)
}
