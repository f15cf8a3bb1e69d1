package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/repository"
)

// classCatalogKey is the Redis key holding the cached class catalog.
const classCatalogKey = "school:classes:catalog"

// ClassService serves the fixed grade-level catalog. The catalog is read
// on every admission validation and teacher assignment, so the list is
// cached in Redis and prewarmed at startup.
type ClassService struct {
	classes *repository.ClassRepository
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classes *repository.ClassRepository, rdb *redis.Client, log zerolog.Logger) *ClassService {
	return &ClassService{classes: classes, rdb: rdb, log: log}
}

// List returns the catalog, preferring the Redis cache. A cache miss or
// decode failure falls through to the database and repopulates the cache.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	cached, err := s.rdb.Get(ctx, classCatalogKey).Bytes()
	if err == nil {
		var classes []model.Class
		if jsonErr := json.Unmarshal(cached, &classes); jsonErr == nil {
			return classes, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Class catalog cache read failed")
	}

	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	if data, err := json.Marshal(classes); err == nil {
		// Catalog never changes at runtime; no TTL.
		if err := s.rdb.Set(ctx, classCatalogKey, data, 0).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Class catalog cache write failed")
		}
	}
	return classes, nil
}

// GetByID resolves one catalog class.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return s.classes.GetByID(ctx, id)
}

// Prewarm loads the catalog into the cache before traffic arrives.
func (s *ClassService) Prewarm(ctx context.Context) error {
	if _, err := s.List(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("Class catalog cache prewarmed")
	return nil
}
