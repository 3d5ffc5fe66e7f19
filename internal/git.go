package internal

import (
	"fmt"
	"os/exec"
)

type runGitFunc func(dir string, args ...string) ([]byte, error)

func runGit(dir string, args ...string) ([]byte, error) {
	out, err := exec.Command("git", append([]string{"-C", dir}, args...)...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("git %v: %w: %s", args, err, out)
	}
	return out, nil
}

// Git invokes the git CLI in the checked-out workspace. The run function is
// injectable for tests.
type Git struct {
	Dir string
	run runGitFunc
}

func NewGit(dir string) *Git {
	return &Git{Dir: dir, run: runGit}
}

// SetSafeDirectory marks the workspace as safe; actions run git as a
// different user than the one that owns the checkout.
func (g *Git) SetSafeDirectory() error {
	_, err := g.run(g.Dir, "config", "--global", "--add", "safe.directory", g.Dir)
	return err
}

// ConfigureAuthor sets the committer identity for subsequent commits.
func (g *Git) ConfigureAuthor(username, email string) error {
	if _, err := g.run(g.Dir, "config", "user.name", username); err != nil {
		return err
	}
	_, err := g.run(g.Dir, "config", "user.email", email)
	return err
}

// CreateBranch creates and switches to a new branch.
func (g *Git) CreateBranch(name string) error {
	_, err := g.run(g.Dir, "checkout", "-b", name)
	return err
}

// CheckoutBranch switches to an existing branch.
func (g *Git) CheckoutBranch(name string) error {
	_, err := g.run(g.Dir, "checkout", name)
	return err
}

// Commit stages the given files and commits them with the given author.
func (g *Git) Commit(message, author string, files ...string) error {
	for _, file := range files {
		if _, err := g.run(g.Dir, "add", file); err != nil {
			return err
		}
	}
	_, err := g.run(g.Dir, "commit", "--author", author, "-m", message)
	return err
}

// Push pushes the given branch to origin.
func (g *Git) Push(branch string) error {
	_, err := g.run(g.Dir, "push", "-u", "origin", branch)
	return err
}
