package service

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/cache"
	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
)

type RuleService interface {
	CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error)
	GetRule(ctx context.Context, id string) (*dto.RuleResponse, error)
	ListRules(ctx context.Context, filter *types.RuleFilter) (*dto.ListRulesResponse, error)
	UpdateRule(ctx context.Context, id string, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error)
	DeleteRule(ctx context.Context, id string) error

	// FindRule returns the oldest active rule for the action, or
	// ErrRuleNotFound when there is none
	FindRule(ctx context.Context, category, serviceType string) (*rule.Rule, error)
}

type ruleService struct {
	ServiceParams
}

func NewRuleService(params ServiceParams) RuleService {
	return &ruleService{ServiceParams: params}
}

func (s *ruleService) CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToRule()
	if r.IsActive {
		if err := s.ensureNoActiveDuplicate(ctx, r); err != nil {
			return nil, err
		}
	}

	if err := s.RuleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.Logger.Infow("created rule",
		"rule_id", r.ID,
		"category", r.Category,
		"service_type", r.ServiceType,
	)
	return dto.NewRuleResponse(r), nil
}

func (s *ruleService) GetRule(ctx context.Context, id string) (*dto.RuleResponse, error) {
	if id == "" {
		return nil, ierr.NewError("rule_id is required").
			WithHint("Rule ID is required").
			Mark(ierr.ErrValidation)
	}
	r, err := s.RuleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewRuleResponse(r), nil
}

func (s *ruleService) ListRules(ctx context.Context, filter *types.RuleFilter) (*dto.ListRulesResponse, error) {
	if filter == nil {
		filter = &types.RuleFilter{}
	}
	rules, err := s.RuleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListRulesResponse(rules), nil
}

func (s *ruleService) UpdateRule(ctx context.Context, id string, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RuleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.IsActive {
		if err := s.ensureNoActiveDuplicate(ctx, r); err != nil {
			return nil, err
		}
	}

	if err := s.RuleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.Logger.Infow("updated rule", "rule_id", r.ID, "is_active", r.IsActive)
	return dto.NewRuleResponse(r), nil
}

func (s *ruleService) DeleteRule(ctx context.Context, id string) error {
	if err := s.RuleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.Logger.Infow("deleted rule", "rule_id", id)
	return nil
}

func (s *ruleService) FindRule(ctx context.Context, category, serviceType string) (*rule.Rule, error) {
	if category == "" || serviceType == "" {
		return nil, ierr.NewError("category and service type are required").
			WithHint("Category and service type are required").
			Mark(ierr.ErrValidation)
	}

	rules, err := s.activeRules(ctx)
	if err != nil {
		return nil, err
	}

	// activeRules is ordered oldest first so the first match is the
	// longest standing rule
	match, ok := lo.Find(rules, func(r *rule.Rule) bool {
		return r.Matches(category, serviceType)
	})
	if !ok {
		return nil, ierr.NewError("no active rule for action").
			WithHint("No earning rule found for this transaction type").
			WithReportableDetails(map[string]any{
				"category":     category,
				"service_type": serviceType,
			}).
			Mark(ierr.ErrRuleNotFound)
	}
	return match, nil
}

func (s *ruleService) activeRules(ctx context.Context) ([]*rule.Rule, error) {
	key := cache.GenerateKey(cache.PrefixRuleList, "active")

	var cached []*rule.Rule
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rules, err := s.RuleRepo.List(ctx, &types.RuleFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, rules, 0)
	return rules, nil
}

// ensureNoActiveDuplicate keeps at most one active rule per action so
// matching stays deterministic
func (s *ruleService) ensureNoActiveDuplicate(ctx context.Context, r *rule.Rule) error {
	existing, err := s.RuleRepo.List(ctx, &types.RuleFilter{
		Category:    r.Category,
		ServiceType: r.ServiceType,
		ActiveOnly:  true,
	})
	if err != nil {
		return err
	}

	conflict, ok := lo.Find(existing, func(e *rule.Rule) bool {
		return e.ID != r.ID
	})
	if ok {
		return ierr.NewError("an active rule already exists for this action").
			WithHint("Deactivate the existing rule before activating another for the same category and service type").
			WithReportableDetails(map[string]any{
				"existing_rule_id": conflict.ID,
				"category":         r.Category,
				"service_type":     r.ServiceType,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *ruleService) invalidate(ctx context.Context) {
	s.Cache.DeleteByPrefix(ctx, cache.PrefixRuleList)
}
