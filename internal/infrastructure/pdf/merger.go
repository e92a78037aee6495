package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Merger concatenates PDFs into one artifact. Page order of the output
// equals the input order exactly.
type Merger interface {
	Merge(ctx context.Context, documents [][]byte) ([]byte, error)
}

type pdfcpuMerger struct {
	logger *zap.Logger
}

func NewMerger(logger *zap.Logger) Merger {
	return &pdfcpuMerger{logger: logger}
}

func (m *pdfcpuMerger) Merge(ctx context.Context, documents [][]byte) ([]byte, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents to merge")
	}

	dir, err := os.MkdirTemp("", "agrupamento-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer os.RemoveAll(dir)

	// Zero-padded names keep the staged inputs in concatenation order.
	inFiles := make([]string, 0, len(documents))
	for i, content := range documents {
		path := filepath.Join(dir, fmt.Sprintf("%03d.pdf", i))
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return nil, fmt.Errorf("failed to stage document %d: %w", i, err)
		}
		inFiles = append(inFiles, path)
	}

	outFile := filepath.Join(dir, "merged.pdf")
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.MergeCreateFile(inFiles, outFile, false, conf); err != nil {
		return nil, fmt.Errorf("failed to merge documents: %w", err)
	}

	merged, err := os.ReadFile(outFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged artifact: %w", err)
	}

	m.logger.Info("Documents merged",
		zap.Int("count", len(documents)),
		zap.Int("size_bytes", len(merged)),
	)

	return merged, nil
}

var Module = fx.Module("pdf",
	fx.Provide(NewMerger),
)
