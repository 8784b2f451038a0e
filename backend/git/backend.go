package git

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"codnect.io/chrono"
	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	gotel "github.com/GlintPay/storefront/otel"
	goGit "github.com/go-git/go-git/v5"
	gitConfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/rs/zerolog/log"
)

func (s *Backend) Init(ctxt context.Context, appConfig config.ApplicationConfiguration) error {
	s.Config = appConfig.Git
	if !s.Config.IsConfigured() {
		return backend.Failure(backend.ErrConfigurationMissing, nil, "git backend needs a basedir")
	}

	if s.Config.PrivateKey != "" {
		hostKeyCallback, err := ssh.NewKnownHostsCallback(s.Config.KnownHostsFile)
		if err != nil {
			return err
		}

		publicKeys, err := ssh.NewPublicKeys("git", []byte(strings.TrimSpace(s.Config.PrivateKey)), "")
		if err != nil {
			return err
		}

		publicKeys.HostKeyCallback = hostKeyCallback
		s.Auth = publicKeys
	} else if s.Config.Password != "" {
		// Gists and most hosted remotes take a token as the password
		username := s.Config.Username
		if username == "" {
			username = "git"
		}
		s.Auth = &githttp.BasicAuth{Username: username, Password: s.Config.Password}
	}

	if s.Config.CloneOnStart {
		log.Debug().Msg("Clone on startup...")

		// a local-only repository is the only copy, never clean it
		if e := s.connect(ctxt, !s.Config.DisableBaseDirCleaning && s.Config.Uri != ""); e != nil {
			return e
		}
	}

	if s.Config.RefreshRateMillis > 0 && s.Config.Uri != "" {
		s.scheduler = chrono.NewDefaultTaskScheduler()

		period := time.Duration(s.Config.RefreshRateMillis) * time.Millisecond
		log.Info().Msgf("Scheduling pull every %v", period)

		_, err := s.scheduler.ScheduleAtFixedRate(func(ctx context.Context) {
			s.lock.Lock()
			defer s.lock.Unlock()

			if e := s.connect(ctx, false); e != nil {
				log.Error().Err(e).Msgf("Scheduled pull failed")
			}
		}, period)

		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Backend) Read(ctxt context.Context) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.refresh(ctxt); err != nil {
		return nil, err
	}

	ref, err := s.Repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, backend.ErrNotFound // nothing committed yet
	} else if err != nil {
		return nil, backend.Failure(backend.ErrLocalIO, err, "git head")
	}

	commit, err := s.Repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, backend.Failure(backend.ErrLocalIO, err, "git commit %s", ref.Hash())
	}

	f, err := commit.File(s.Config.FileName)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, backend.ErrNotFound
	} else if err != nil {
		return nil, backend.Failure(backend.ErrLocalIO, err, "git file %s", s.Config.FileName)
	}

	contents, err := f.Contents()
	if err != nil {
		return nil, backend.Failure(backend.ErrLocalIO, err, "git file %s", s.Config.FileName)
	}
	return []byte(contents), nil
}

// Write commits the document and pushes it when a remote is configured
func (s *Backend) Write(ctxt context.Context, payload []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.refresh(ctxt); err != nil {
		return err
	}

	w, err := s.Repo.Worktree()
	if err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "git worktree")
	}

	f, err := w.Filesystem.Create(s.Config.FileName)
	if err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "create %s", s.Config.FileName)
	}
	if _, err = f.Write(payload); err != nil {
		_ = f.Close()
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.FileName)
	}
	if err = f.Close(); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "write %s", s.Config.FileName)
	}

	if _, err = w.Add(s.Config.FileName); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "stage %s", s.Config.FileName)
	}

	_, err = w.Commit("Update "+s.Config.FileName, &goGit.CommitOptions{Author: s.signature()})
	if errors.Is(err, goGit.ErrEmptyCommit) {
		log.Debug().Msg("Document unchanged, nothing to commit")
	} else if err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "commit %s", s.Config.FileName)
	}

	if s.Config.Uri == "" {
		return nil
	}
	return s.push(ctxt)
}

func (s *Backend) Close() {
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
}

// refresh opens, clones or creates the repository on first use, and pulls when no scheduled pull does it
func (s *Backend) refresh(ctxt context.Context) error {
	if s.Repo != nil && (s.Config.Uri == "" || s.Config.RefreshRateMillis > 0) {
		return nil
	}
	return s.connect(ctxt, false)
}

func (s *Backend) connect(ctxt context.Context, cleanExisting bool) error {
	if cleanExisting {
		if e := s.cleanRepo(); e != nil {
			return backend.Failure(backend.ErrLocalIO, e, "clean %s", s.Config.Basedir)
		}
	}

	repo, err := goGit.PlainOpen(s.Config.Basedir)
	ref := s.branchRef()

	if errors.Is(err, goGit.ErrRepositoryNotExists) && s.Config.Uri == "" {
		repo, err = goGit.PlainInitWithOptions(s.Config.Basedir, &goGit.PlainInitOptions{
			InitOptions: goGit.InitOptions{DefaultBranch: ref},
		})
		if err != nil {
			return backend.Failure(backend.ErrLocalIO, err, "init %s", s.Config.Basedir)
		}

		log.Info().Msgf("Created local repository in %s", s.Config.Basedir)
	} else if errors.Is(err, goGit.ErrRepositoryNotExists) {
		if s.EnableTrace {
			_, span := gotel.GetTracer(ctxt).Start(ctxt, "git-clone", gotel.ClientOptions)
			defer span.End()
		}

		repo, err = goGit.PlainCloneContext(ctxt, s.Config.Basedir, false, s.getCloneOptions(ref))
		if err != nil {
			return backend.Failure(backend.ErrRemoteUnavailable, err, "clone %s", s.Config.Uri)
		}

		log.Debug().Msgf("Cloned [%s] OK", ref.Short())
	} else if err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "open %s", s.Config.Basedir)
	} else if s.Config.Uri != "" {
		if s.EnableTrace {
			_, span := gotel.GetTracer(ctxt).Start(ctxt, "git-pull", gotel.ClientOptions)
			defer span.End()
		}

		w, err := repo.Worktree()
		if err != nil {
			return backend.Failure(backend.ErrLocalIO, err, "git worktree")
		}

		err = w.PullContext(ctxt, s.getPullOptions(ref))
		switch {
		case err == nil, errors.Is(err, goGit.NoErrAlreadyUpToDate):
		case errors.Is(err, goGit.ErrNonFastForwardUpdate):
			log.Error().Msgf("Local copy of %s in %s has diverged from the remote", ref.Short(), s.Config.Basedir)

			if !s.Config.ForcePull {
				return backend.Failure(backend.ErrRemoteUnavailable, err, "pull %s: local copy diverged, enable force-pull to reset it", s.Config.Uri)
			}
			if err = s.resetToRemote(ctxt, repo, w, ref); err != nil {
				return err
			}

			log.Warn().Msgf("Local commits on %s discarded, reset to the remote", ref.Short())
		default:
			return backend.Failure(backend.ErrRemoteUnavailable, err, "pull %s", s.Config.Uri)
		}

		if s.Config.ForcePull {
			log.Debug().Msgf("Pulled OK (with force)")
		} else {
			log.Debug().Msgf("Pulled OK")
		}
	}

	s.Repo = repo

	return nil
}

// resetToRemote fetches the branch and moves the local copy onto it
func (s *Backend) resetToRemote(ctxt context.Context, repo *goGit.Repository, w *goGit.Worktree, ref plumbing.ReferenceName) error {
	remoteRef := plumbing.NewRemoteReferenceName(goGit.DefaultRemoteName, ref.Short())

	fo := &goGit.FetchOptions{
		RefSpecs: []gitConfig.RefSpec{gitConfig.RefSpec("+" + ref.String() + ":" + remoteRef.String())},
		Auth:     s.Auth,
		Force:    true,
	}
	if s.Config.ShowProgress {
		fo.Progress = os.Stdout
	}

	err := repo.FetchContext(ctxt, fo)
	if err != nil && !errors.Is(err, goGit.NoErrAlreadyUpToDate) {
		return backend.Failure(backend.ErrRemoteUnavailable, err, "fetch %s", s.Config.Uri)
	}

	target, err := repo.Reference(remoteRef, true)
	if err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "resolve %s", remoteRef.Short())
	}

	if err = w.Reset(&goGit.ResetOptions{Commit: target.Hash(), Mode: goGit.HardReset}); err != nil {
		return backend.Failure(backend.ErrLocalIO, err, "reset to %s", remoteRef.Short())
	}
	return nil
}

func (s *Backend) push(ctxt context.Context) error {
	if s.EnableTrace {
		_, span := gotel.GetTracer(ctxt).Start(ctxt, "git-push", gotel.ClientOptions)
		defer span.End()
	}

	po := &goGit.PushOptions{Auth: s.Auth}
	if s.Config.ShowProgress {
		po.Progress = os.Stdout
	}

	err := s.Repo.PushContext(ctxt, po)
	if err != nil && !errors.Is(err, goGit.NoErrAlreadyUpToDate) {
		return backend.Failure(backend.ErrRemoteUnavailable, err, "push %s", s.Config.Uri)
	}
	return nil
}

func (s *Backend) branchRef() plumbing.ReferenceName {
	branch := s.Config.DefaultBranchName
	if branch == "" {
		branch = "master"
	}
	return plumbing.NewBranchReferenceName(branch)
}

func (s *Backend) signature() *object.Signature {
	name := s.Config.AuthorName
	if name == "" {
		name = "storefront"
	}
	email := s.Config.AuthorEmail
	if email == "" {
		email = "storefront@localhost"
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

func (s *Backend) getCloneOptions(ref plumbing.ReferenceName) *goGit.CloneOptions {
	cloneOpts := &goGit.CloneOptions{
		ReferenceName: ref,
		URL:           s.Config.Uri,
		Auth:          s.Auth,
	}

	if s.Config.ShowProgress {
		cloneOpts.Progress = os.Stdout
	}

	return cloneOpts
}

func (s *Backend) getPullOptions(ref plumbing.ReferenceName) *goGit.PullOptions {
	po := &goGit.PullOptions{
		ReferenceName: ref,
		Auth:          s.Auth,
	}

	if s.Config.ShowProgress {
		po.Progress = os.Stdout
	}
	if s.Config.ForcePull {
		po.Force = true
	}

	return po
}

func (s *Backend) cleanRepo() error {
	if s.Config.Basedir == "" {
		return nil
	}
	log.Debug().Msg("Cleaning existing...")
	return os.RemoveAll(s.Config.Basedir)
}
