package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/storage"
)

// KVProjectRepo implements ProjectRepo over a storage.KV. The projects
// collection, tasks included, lives under a single key.
type KVProjectRepo struct {
	kv storage.KV
}

func NewKVProjectRepo(kv storage.KV) *KVProjectRepo {
	return &KVProjectRepo{kv: kv}
}

func (r *KVProjectRepo) Load(ctx context.Context) ([]domain.Project, bool, error) {
	var recs []projectRecord
	found, err := loadJSON(ctx, r.kv, KeyProjects, &recs)
	if err != nil || !found {
		return nil, found, err
	}
	projects := make([]domain.Project, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toDomain()
		if err != nil {
			return nil, true, fmt.Errorf("decoding projects: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, true, nil
}

func (r *KVProjectRepo) Save(ctx context.Context, projects []domain.Project) error {
	data, err := encodeProjects(projects)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyProjects, data); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	return nil
}

func (r *KVProjectRepo) LoadCurrent(ctx context.Context) (string, error) {
	data, err := r.kv.Get(ctx, KeyCurrentProject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("loading %s: %w", KeyCurrentProject, err)
	}
	return string(data), nil
}

func (r *KVProjectRepo) SaveCurrent(ctx context.Context, projectID string) error {
	if err := r.kv.Set(ctx, KeyCurrentProject, []byte(projectID)); err != nil {
		return fmt.Errorf("saving %s: %w", KeyCurrentProject, err)
	}
	return nil
}

func (r *KVProjectRepo) SaveWithCurrent(ctx context.Context, projects []domain.Project, currentID string) error {
	data, err := encodeProjects(projects)
	if err != nil {
		return err
	}
	entries := map[string][]byte{KeyProjects: data, KeyCurrentProject: []byte(currentID)}
	if err := r.kv.SetMulti(ctx, entries); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	return nil
}

func encodeProjects(projects []domain.Project) ([]byte, error) {
	recs := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		recs = append(recs, projectToRecord(p))
	}
	return encodeJSON(KeyProjects, recs)
}
