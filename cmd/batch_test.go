package cmd

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bitrise-io/ai-deobfuscator/git"
	"github.com/bitrise-io/ai-deobfuscator/model"
)

// fakeGitRunner answers git commands by their subcommand
type fakeGitRunner struct {
	files map[string]string
}

func (f *fakeGitRunner) Run(name string, args ...string) (string, error) {
	switch args[0] {
	case "rev-parse":
		return "abc123\n", nil
	case "ls-tree":
		return "README.md\nsrc/a.py\nsrc/b.py\n", nil
	case "show":
		path := strings.TrimPrefix(args[1], "abc123:")
		if content, ok := f.files[path]; ok {
			return content, nil
		}
		return "", errors.New("fatal: path does not exist")
	}
	return "", errors.New("unexpected command")
}

// fakeDeobfuscator upper-cases the code and fails on a chosen input
type fakeDeobfuscator struct {
	failOn string
	calls  int
}

func (f *fakeDeobfuscator) Deobfuscate(_ context.Context, req model.DeobfuscateRequest) (model.DeobfuscateResult, error) {
	f.calls++
	if req.ObfuscatedCode == f.failOn {
		return model.DeobfuscateResult{}, errors.New("boom")
	}
	return model.DeobfuscateResult{DeobfuscatedCode: strings.ToUpper(req.ObfuscatedCode)}, nil
}

func TestReadRevisionFiles(t *testing.T) {
	client := git.NewClient(&fakeGitRunner{files: map[string]string{
		"src/a.py": "x=1\n",
		"src/b.py": "  y=2\n",
	}})

	files, err := readRevisionFiles(client, "main")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []sourceFile{
		{Path: "src/a.py", Code: "x=1"},
		{Path: "src/b.py", Code: "  y=2"},
	}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("Expected %v, got %v", expected, files)
	}
}

func TestReadRevisionFiles_ShowFails(t *testing.T) {
	client := git.NewClient(&fakeGitRunner{files: map[string]string{"src/a.py": "x=1"}})

	if _, err := readRevisionFiles(client, "main"); err == nil {
		t.Error("Expected an error when a listed file cannot be read")
	}
}

func TestDeobfuscateFiles(t *testing.T) {
	files := []sourceFile{{Path: "src/a.py", Code: "x=1"}, {Path: "src/b.py", Code: "y=2"}}
	runner := &fakeDeobfuscator{}

	results, err := deobfuscateFiles(context.Background(), runner, files)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if formatted := formatFileResults(results); formatted != "# src/a.py\nX=1\n\n# src/b.py\nY=2" {
		t.Errorf("Unexpected output %q", formatted)
	}
}

func TestDeobfuscateFiles_StopsAtFailure(t *testing.T) {
	files := []sourceFile{{Path: "src/a.py", Code: "x=1"}, {Path: "src/b.py", Code: "y=2"}, {Path: "src/c.py", Code: "z=3"}}
	runner := &fakeDeobfuscator{failOn: "y=2"}

	results, err := deobfuscateFiles(context.Background(), runner, files)
	if err == nil || !strings.Contains(err.Error(), "src/b.py") {
		t.Fatalf("Expected an error naming the failed file, got %v", err)
	}
	if len(results) != 1 || runner.calls != 2 {
		t.Errorf("Expected to stop after the failure, got %d results and %d calls", len(results), runner.calls)
	}
}
