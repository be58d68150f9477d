package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/persistence"
	"github.com/spec-kit/vehicle-marketplace/internal/repository"
)

// OwnerLookup resolves who owns a resource. Handlers consult it for
// fine-grained authorization; the auth wrapper never does.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, resourceID string) (*domain.OwnershipFact, error)
	IsOwnerOrAdmin(ctx context.Context, subjectID string, role domain.Role, resourceID string) (bool, error)
}

// OwnershipService answers owner lookups from the product repository with a
// redis read-through cache. When redis is unreachable it degrades to direct
// repository reads.
type OwnershipService struct {
	products repository.ProductRepository
	cache    *persistence.Redis
	ttl      time.Duration
	logger   *zap.Logger
}

// NewOwnershipService builds the service. cache may be nil.
func NewOwnershipService(products repository.ProductRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *OwnershipService {
	return &OwnershipService{products: products, cache: cache, ttl: ttl, logger: logger}
}

// OwnerOf returns the ownership fact for a resource id.
func (s *OwnershipService) OwnerOf(ctx context.Context, resourceID string) (*domain.OwnershipFact, error) {
	if fact, ok := s.cached(ctx, resourceID); ok {
		return fact, nil
	}

	fact, err := s.products.GetOwner(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, fact)
	return fact, nil
}

// IsOwnerOrAdmin reports whether the identity may modify the resource:
// admins always, otherwise the owning subject with the required role.
func (s *OwnershipService) IsOwnerOrAdmin(ctx context.Context, subjectID string, role domain.Role, resourceID string) (bool, error) {
	if role == domain.RoleAdmin {
		return true, nil
	}
	fact, err := s.OwnerOf(ctx, resourceID)
	if err != nil {
		return false, err
	}
	return fact.OwnerID == subjectID && fact.RequiredRole == role, nil
}

func (s *OwnershipService) cached(ctx context.Context, resourceID string) (*domain.OwnershipFact, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, cacheKey(resourceID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("ownership cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var fact domain.OwnershipFact
	if err := json.Unmarshal(raw, &fact); err != nil {
		return nil, false
	}
	return &fact, true
}

func (s *OwnershipService) store(ctx context.Context, fact *domain.OwnershipFact) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(fact)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, cacheKey(fact.ResourceID), raw, s.ttl).Err(); err != nil {
		s.logger.Debug("ownership cache write failed", zap.Error(err))
	}
}

func cacheKey(resourceID string) string {
	return "ownership:" + resourceID
}
