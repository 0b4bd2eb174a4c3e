package ingest

import (
	"errors"
	"log/slog"

	"github.com/ledgerloom/ledgerloom/internal/charset"
	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// Pipeline orchestrates an import: encoding resolution, format sniffing, the
// matching adapter, and id allocation.
type Pipeline struct {
	ids    *IDAllocator
	logger *slog.Logger
}

// NewPipeline creates an import pipeline allocating ids from ids.
func NewPipeline(ids *IDAllocator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{ids: ids, logger: logger}
}

// Result reports the outcome of one import. Failures are reported here, not
// raised: OK is false and Err carries the message.
type Result struct {
	Encoding     string
	Format       string
	Err          string
	Transactions []model.Transaction
	Imported     int
	Skipped      int
	OK           bool
}

// Import decodes raw export bytes with the first working encoding candidate
// and parses them with the sniffed format's adapter. Rows that do not match
// the format are skipped and counted, never fatal.
func (p *Pipeline) Import(raw []byte) Result {
	for _, name := range charset.Candidates(raw) {
		text, err := charset.Decode(raw, name)
		if err != nil {
			p.logger.Debug("encoding candidate rejected", "charset", name, "error", err)
			continue
		}

		result, err := p.parse(text)
		if err != nil {
			return Result{Encoding: name, Err: err.Error()}
		}
		result.Encoding = name
		p.logger.Info("import complete",
			"charset", name,
			"format", result.Format,
			"imported", result.Imported,
			"skipped", result.Skipped)
		return result
	}

	p.logger.Warn("no encoding candidate decoded the file")
	return Result{Err: common.ErrEncodingUndetermined.Error()}
}

func (p *Pipeline) parse(text string) (Result, error) {
	lines := splitLines(text)
	format := Sniff(lines)
	adapter := adapterFor(format)
	skip, user := adapter.Scan(lines)

	result := Result{OK: true, Format: format.String()}
	for i := skip; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		fields := ParseLine(line)
		if blankRow(fields) {
			continue
		}

		tx, err := adapter.Convert(fields, user)
		if err != nil {
			result.Skipped++
			if errors.Is(err, common.ErrAmountParse) {
				p.logger.Debug("row skipped", "line", i+1, "error", err)
			}
			continue
		}

		id, err := p.ids.Allocate()
		if err != nil {
			return Result{}, err
		}
		tx.ID = id

		result.Transactions = append(result.Transactions, tx)
		result.Imported++
	}
	return result, nil
}
