package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/granular/pkg/entity"
)

// Persistence is the raw per-entity file contract. Keys are
// "<entity type>-<real id>"; each key is one file on disk.
type Persistence interface {
	ListAll(ctx context.Context, t entity.Type) ([]entity.Entity, error)
	Write(e entity.Entity) error
	Erase(t entity.Type, realID string) error
	BasePath() string
}

// Open creates a Persistence backed by diskv using the provided config.
func Open(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) ListAll(ctx context.Context, t entity.Type) ([]entity.Entity, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("store: unknown entity type %q", t)
	}
	all := make([]entity.Entity, 0)
	prefix := string(t) + "-"
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		data, err := p.d.Read(key)
		if err != nil {
			log.Warn("store: unreadable record", "key", key, "err", err)
			continue
		}
		e, err := decode(t, data)
		if err != nil {
			log.Warn("store: skipping corrupt record", "key", key, "err", err)
			continue
		}
		all = append(all, e)
	}
	return all, nil
}

func (p *persistence) Write(e entity.Entity) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(e.EntityType(), e.RealID()), data)
}

func (p *persistence) Erase(t entity.Type, realID string) error {
	return p.d.Erase(toKey(t, realID))
}

// decode unmarshals a payload into the concrete struct for its type.
func decode(t entity.Type, data []byte) (entity.Entity, error) {
	var e entity.Entity
	switch t {
	case entity.TypeTask:
		e = &entity.Task{}
	case entity.TypeEvent:
		e = &entity.Event{}
	case entity.TypeTimeAudit:
		e = &entity.TimeAudit{}
	case entity.TypeTimespan:
		e = &entity.Timespan{}
	case entity.TypeNote:
		e = &entity.Note{}
	case entity.TypeLog:
		e = &entity.Log{}
	case entity.TypeTracker:
		e = &entity.Tracker{}
	case entity.TypeEntry:
		e = &entity.Entry{}
	case entity.TypeContext:
		e = &entity.Context{}
	default:
		return nil, fmt.Errorf("store: unknown entity type %q", t)
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// toKey makes `type-id`. Real ids are ULIDs and never contain a dash, so
// the first dash always splits type from id.
func toKey(t entity.Type, realID string) string {
	return fmt.Sprintf("%s-%s", t, realID)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return &diskv.PathKey{Path: []string{}, FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
