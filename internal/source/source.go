// Package source fetches shared family documents from git repositories into the local cache.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-playground/validator/v10"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// FamilyPattern selects family documents inside a fetched repository.
const FamilyPattern = "**/*.{yaml,yml}"

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	sshGitPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
	unsafeName    = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// Request describes a repository to fetch.
type Request struct {
	URL      string `validate:"required,git_url"`
	Ref      string
	Depth    int    `validate:"min=0"`
	CacheDir string `validate:"required"`
	// Name is the checkout directory under CacheDir; derived from URL when empty.
	Name string
}

// Result describes a completed fetch.
type Result struct {
	Path string
	Head string
	// Cloned is false when an existing checkout was updated in place.
	Cloned   bool
	Families []string
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("git_url", func(fl validator.FieldLevel) bool {
			raw := strings.TrimSpace(fl.Field().String())
			if raw == "" {
				return false
			}
			if parsed, err := url.Parse(raw); err == nil {
				switch strings.ToLower(parsed.Scheme) {
				case "http", "https", "ssh", "git":
					return parsed.Host != ""
				case "file":
					return parsed.Path != ""
				}
			}
			if sshGitPattern.MatchString(raw) {
				return true
			}
			return filepath.IsAbs(raw) || strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../")
		})

		validateInst = v
	})

	return validateInst
}

// Fetch clones req.URL into the cache, or updates an existing checkout of the same remote.
func Fetch(ctx context.Context, req Request) (*Result, error) {
	if err := validatorInstance().Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fe := fieldErrs[0]
			return nil, stylekiterrors.NewValidationError(strings.ToLower(fe.Field()), fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), err)
		}
		return nil, stylekiterrors.NewValidationError("request", err.Error(), err)
	}

	name := req.Name
	if name == "" {
		name = CheckoutName(req.URL)
	}
	dest := filepath.Join(req.CacheDir, name)

	repo, cloned, err := checkout(ctx, req, dest)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("read head of %s: %w", dest, err)
	}

	families, err := Families(dest)
	if err != nil {
		return nil, err
	}

	return &Result{Path: dest, Head: head.Hash().String()[:12], Cloned: cloned, Families: families}, nil
}

func checkout(ctx context.Context, req Request, dest string) (*git.Repository, bool, error) {
	if repo, err := git.PlainOpen(dest); err == nil {
		if originURL(repo) == req.URL {
			if err := pull(ctx, repo, req); err != nil {
				return nil, false, err
			}
			return repo, false, nil
		}
	}

	if err := os.RemoveAll(dest); err != nil {
		return nil, false, fmt.Errorf("clear %s: %w", dest, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, false, fmt.Errorf("create cache directory: %w", err)
	}

	opts := &git.CloneOptions{URL: req.URL}
	if req.Depth > 0 {
		opts.Depth = req.Depth
	}
	if req.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(req.Ref)
		opts.SingleBranch = true
	}

	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return nil, false, fmt.Errorf("clone %s: %w", req.URL, err)
	}
	return repo, true, nil
}

func pull(ctx context.Context, repo *git.Repository, req Request) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	opts := &git.PullOptions{RemoteName: "origin"}
	if req.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(req.Ref)
		opts.SingleBranch = true
	}
	if err := wt.PullContext(ctx, opts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("update %s: %w", req.URL, err)
	}
	return nil
}

func originURL(repo *git.Repository) string {
	remote, err := repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return ""
	}
	return remote.Config().URLs[0]
}

// Families lists the family documents below dir, relative and sorted. The .git directory is
// skipped.
func Families(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), FamilyPattern)
	if err != nil {
		return nil, fmt.Errorf("list families in %s: %w", dir, err)
	}

	out := matches[:0]
	for _, m := range matches {
		if m == ".git" || strings.HasPrefix(m, ".git/") {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

// CheckoutName derives a cache directory name from a repository URL.
func CheckoutName(raw string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(raw, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	name := strings.Trim(unsafeName.ReplaceAllString(trimmed, "-"), "-.")
	if name == "" {
		return "families"
	}
	return name
}
