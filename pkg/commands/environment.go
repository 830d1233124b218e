package commands

import (
	"context"

	"tableflip.dev/granular/pkg/idmap"
	"tableflip.dev/granular/pkg/store"
)

// environment is the loaded state every command runs against: config,
// the repository, and the display id map. Commands load it once in RunE
// and flush it on the way out.
type environment struct {
	config store.Config
	repo   *store.Repository
	ids    *idmap.Map
}

func loadEnvironment() (*environment, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	repo := store.NewRepository(p)
	ids, err := idmap.Load(p.BasePath())
	if err != nil {
		return nil, err
	}
	if cfg.ClearIDs() {
		ids.ClearOnNextAssign()
	}
	return &environment{config: cfg, repo: repo, ids: ids}, nil
}

// flush persists everything the command changed. Display id assignments
// are written even on command failure so ids shown to the user survive.
func (e *environment) flush(ctx context.Context) error {
	if err := e.repo.Flush(ctx); err != nil {
		return err
	}
	return e.ids.Flush(e.repo.BasePath())
}

// run wires the standard command body: load, execute, flush.
func run(do func(ctx context.Context, env *environment) error) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	ctx := context.Background()
	doErr := do(ctx, env)
	if flushErr := env.flush(ctx); doErr == nil {
		doErr = flushErr
	}
	return output.HandleError(doErr)
}
