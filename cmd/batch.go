package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitrise-io/ai-deobfuscator/git"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
)

const pythonSuffix = ".py"

// sourceFile is a Python file read at a git revision
type sourceFile struct {
	Path string
	Code string
}

// fileResult is the deobfuscation result of one file in batch mode
type fileResult struct {
	Path string `json:"path"`
	model.DeobfuscateResult
}

type deobfuscator interface {
	Deobfuscate(ctx context.Context, req model.DeobfuscateRequest) (model.DeobfuscateResult, error)
}

// readRevisionFiles returns every Python file tracked at ref
func readRevisionFiles(client *git.Client, ref string) ([]sourceFile, error) {
	paths, err := client.ListFiles(ref, pythonSuffix)
	if err != nil {
		return nil, err
	}

	files := make([]sourceFile, 0, len(paths))
	for _, path := range paths {
		code, err := client.ShowFile(ref, path)
		if err != nil {
			return nil, err
		}
		files = append(files, sourceFile{Path: path, Code: code})
	}
	return files, nil
}

// deobfuscateFiles runs one deobfuscation per file, stopping at the first failure
func deobfuscateFiles(ctx context.Context, runner deobfuscator, files []sourceFile) ([]fileResult, error) {
	results := make([]fileResult, 0, len(files))
	for i, file := range files {
		logger.Infof("Deobfuscating %s (%d/%d)", file.Path, i+1, len(files))

		result, err := runner.Deobfuscate(ctx, model.DeobfuscateRequest{ObfuscatedCode: file.Code})
		if err != nil {
			return results, fmt.Errorf("failed to deobfuscate %s: %w", file.Path, err)
		}
		results = append(results, fileResult{Path: file.Path, DeobfuscateResult: result})
	}
	return results, nil
}

func formatFileResults(results []fileResult) string {
	sections := make([]string, 0, len(results))
	for _, result := range results {
		sections = append(sections, fmt.Sprintf("# %s\n%s", result.Path, result.DeobfuscatedCode))
	}
	return strings.Join(sections, "\n\n")
}
