package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyPath is returned when no file path is given for a revision lookup
var ErrEmptyPath = errors.New("file path is required")

// Runner defines an interface for running git commands
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// Ensure DefaultRunner implements Runner interface
var _ Runner = (*DefaultRunner)(nil)

// DefaultRunner implements the Runner interface using exec.Command
type DefaultRunner struct {
	RepoPath string
}

// NewDefaultRunner creates a new instance of DefaultRunner
func NewDefaultRunner(repoPath string) *DefaultRunner {
	return &DefaultRunner{
		RepoPath: repoPath,
	}
}

// Run executes a git command and returns its raw output
func (r *DefaultRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if r.RepoPath != "" {
		cmd.Dir = r.RepoPath
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("error running command: %s\nstderr: %s", err, stderr.String())
	}

	return stdout.String(), nil
}

// Client reads source files from a git repository
type Client struct {
	runner Runner
}

// NewClient creates a new Git client
func NewClient(runner Runner) *Client {
	return &Client{
		runner: runner,
	}
}

// ResolveRef returns the commit hash a ref points to, HEAD when ref is empty
func (c *Client) ResolveRef(ref string) (string, error) {
	if ref == "" {
		ref = "HEAD"
	}

	hash, err := c.runner.Run("git", "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve ref %s: %w", ref, err)
	}
	return strings.TrimSpace(hash), nil
}

// ShowFile returns the content of path as it was at ref
func (c *Client) ShowFile(ref, path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	hash, err := c.ResolveRef(ref)
	if err != nil {
		return "", err
	}

	content, err := c.runner.Run("git", "show", fmt.Sprintf("%s:%s", hash, path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, hash, err)
	}
	// same as reading stdin: indentation is kept, trailing newlines are not
	return strings.TrimRight(content, "\n"), nil
}

// ListFiles returns the files tracked at ref whose name ends with suffix
func (c *Client) ListFiles(ref, suffix string) ([]string, error) {
	hash, err := c.ResolveRef(ref)
	if err != nil {
		return nil, err
	}

	output, err := c.runner.Run("git", "ls-tree", "-r", "--name-only", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to list files at %s: %w", hash, err)
	}

	files := []string{}
	for _, line := range strings.Split(output, "\n") {
		if line != "" && strings.HasSuffix(line, suffix) {
			files = append(files, line)
		}
	}
	return files, nil
}
