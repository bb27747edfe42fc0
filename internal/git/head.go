package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Head describes the checked-out revision of a site repository.
type Head struct {
	Commit string
	Branch string
}

// Short returns the abbreviated commit hash.
func (h Head) Short() string {
	if len(h.Commit) > 7 {
		return h.Commit[:7]
	}
	return h.Commit
}

// ReadHead resolves HEAD for the repository containing root. The lookup walks
// up to the nearest .git directory. A root outside any repository, or a
// repository without commits, yields an empty Head and no error.
func ReadHead(root string) (Head, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Head{}, nil
		}
		return Head{}, fmt.Errorf("open repository %s: %w", root, err)
	}
	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Head{}, nil
		}
		return Head{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	h := Head{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		h.Branch = ref.Name().Short()
	}
	return h, nil
}
