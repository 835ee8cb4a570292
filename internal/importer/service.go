package importer

import (
	"fmt"
	"io"

	"github.com/lfonseca/moneta/internal/importer/csvstmt"
	"github.com/lfonseca/moneta/internal/ledger"
)

type Service struct {
	csvParser Parser
}

func NewService() *Service {
	return &Service{
		csvParser: csvstmt.NewParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) (ledger.BatchParams, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	default:
		return ledger.BatchParams{}, fmt.Errorf("unknown statement format: %s", format)
	}

	return parser.Parse(r)
}
