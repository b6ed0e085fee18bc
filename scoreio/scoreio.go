// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package scoreio implements component G: persisting a run's consensus,
// score, and timing as small sidecar files next to a base path, plus the
// anonymization-completion marker and dictionary needed to de-anonymize
// the output back to the caller's original candidate names.
package scoreio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/kemeny/internal/logging"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/solver"
)

// Writer persists a run's artifacts under a common base path, logging each
// write at debug level through the shared structured logger.
type Writer struct {
	BasePath string
	Dict     *model.Dictionary
	Logger   logging.Logger
}

// NewWriter returns a Writer rooted at basePath. log may be nil.
func NewWriter(basePath string, dict *model.Dictionary, log logging.Logger) *Writer {
	if log == nil {
		log = logging.NoOp()
	}
	return &Writer{BasePath: basePath, Dict: dict, Logger: log}
}

// WriteResult persists the three per-result artifacts for a successful run
// at iteration k: "{base}.consensus{k}", "{base}.consensus{k}.score" and
// "{base}.consensus{k}.time". "{base}.dict" and "{base}.anoncomplete" are
// written by WriteDictionary, not here.
func (w *Writer) WriteResult(k int, result solver.Result, elapsed time.Duration) error {
	names := make([]string, len(result.Consensus))
	for i, c := range result.Consensus {
		names[i] = w.Dict.Name(c)
	}
	consensusPath := w.path(fmt.Sprintf("consensus%d", k))
	if err := w.writeFile(consensusPath, strings.Join(names, " ")+"\n"); err != nil {
		return err
	}
	if err := w.writeFile(consensusPath+".score", strconv.Itoa(result.Score)+"\n"); err != nil {
		return err
	}
	if err := w.writeFile(consensusPath+".time", elapsed.String()+"\n"); err != nil {
		return err
	}
	return nil
}

// WriteDictionary persists the bijective name<->ID table and the
// anonymization-completion marker that tells downstream tooling the
// dictionary file is safe to read.
func (w *Writer) WriteDictionary() error {
	var sb strings.Builder
	for i, name := range w.Dict.Entries() {
		fmt.Fprintf(&sb, "%d\t%s\n", i, name)
	}
	if err := w.writeFile(w.path("dict"), sb.String()); err != nil {
		return err
	}
	return w.writeFile(w.path("anoncomplete"), "")
}

func (w *Writer) path(suffix string) string {
	return w.BasePath + "." + suffix
}

func (w *Writer) writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	w.Logger.Debug("wrote artifact", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}
