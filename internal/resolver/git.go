package resolver

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"

	"github.com/t2-labs/create-block/internal/blocktemplate"
)

// CloneFunc clones url into dir.
type CloneFunc func(ctx context.Context, dir, url string) error

// GitStrategy shallow-clones a template repository into a scratch directory
// and loads the manifest at the repository root.
type GitStrategy struct {
	ScratchDir string
	Clone      CloneFunc
	Logger     zerolog.Logger
}

func (s *GitStrategy) Name() string { return "git" }

// IsGitURL reports whether id looks like a git repository location.
func IsGitURL(id string) bool {
	if strings.HasPrefix(id, "git@") && strings.Contains(id, ":") {
		return true
	}
	for _, scheme := range []string{"https://", "http://", "ssh://", "git://", "file://"} {
		if strings.HasPrefix(id, scheme) {
			return strings.HasSuffix(id, ".git") || strings.HasSuffix(id, ".git/")
		}
	}
	return false
}

func (s *GitStrategy) Resolve(ctx context.Context, id string) Result {
	if !IsGitURL(id) {
		return NotFoundResult()
	}

	scratch, err := newScratchDir(s.ScratchDir)
	if err != nil {
		return FatalResult(err)
	}
	defer removeScratch(s.Logger, scratch)

	clone := s.Clone
	if clone == nil {
		clone = shallowClone
	}
	s.Logger.Debug().Str("url", id).Str("dir", scratch).Msg("cloning template repository")
	if err := clone(ctx, scratch, id); err != nil {
		return FatalResult(blocktemplate.NewInvalidTemplateError(
			"Invalid block template loaded. Error: cloning %s: %v", id, err))
	}

	return loadFetched(scratch)
}

func shallowClone(ctx context.Context, dir, url string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	return err
}
