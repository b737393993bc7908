package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jeovahfialho/trade-dashboard/pkg/logger"
	"github.com/jeovahfialho/trade-dashboard/pkg/metrics"
	"go.uber.org/zap"
)

// ErrMissingInputFile means the trade results file could not be located.
var ErrMissingInputFile = errors.New("input file not found")

type Loader struct {
	parser *Parser
}

func NewLoader(parser *Parser) *Loader {
	if parser == nil {
		parser = NewParser()
	}
	return &Loader{parser: parser}
}

func (l *Loader) LoadFile(ctx context.Context, path string) (*ParseResult, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.StageDuration.WithLabelValues("load"))

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingInputFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrMissingInputFile, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	result, err := l.parser.ParseFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	result.FilePath = path

	logger.Info("trade file loaded",
		zap.String("file", path),
		zap.Int("rows", result.Rows),
		zap.Int("records", len(result.Records)),
		zap.Int("rejected", result.Rejected()),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}
