package processor

import (
	"fmt"

	"github.com/deploymenttheory/go-filemeta/internal/metadata"
	"github.com/deploymenttheory/go-filemeta/internal/types"
)

// processFile analyzes one file and converts the outcome into a record. An
// analysis error is kept on the record so the report lists every input.
func (p *Processor) processFile(filePath string) types.Record {
	record := types.Record{
		Path:     filePath,
		Mode:     p.opts.Mode.String(),
		Metadata: metadata.New(),
	}

	result, err := p.analyzer.Analyze(filePath, p.opts.Mode)
	if result != nil {
		record.FileType = result.FileType.String()
		record.AnalyzedAt = result.AnalyzedAt
		if result.Metadata != nil {
			record.Metadata = result.Metadata
		}
	}
	if err != nil {
		record.Error = err.Error()
		return record
	}

	if p.opts.Hash {
		hash, err := generateSHA3Hash(filePath)
		if err != nil {
			record.Error = fmt.Sprintf("failed to generate hash: %v", err)
			return record
		}
		record.SHA3Hash = hash
	}

	return record
}
