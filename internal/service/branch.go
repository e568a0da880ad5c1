package service

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/gosimple/slug"
)

// maxSlugAttempts bounds the numeric suffixes tried for a taken slug
const maxSlugAttempts = 50

type BranchService interface {
	CreateBranch(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
	GetBranch(ctx context.Context, idOrSlug string) (*dto.BranchResponse, error)
	ListBranches(ctx context.Context) (*dto.ListBranchesResponse, error)
	UpdateBranch(ctx context.Context, id string, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error)
}

type branchService struct {
	ServiceParams
}

func NewBranchService(params ServiceParams) BranchService {
	return &branchService{ServiceParams: params}
}

func (s *branchService) CreateBranch(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := req.ToBranch()
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.BranchRepo.GetByCode(ctx, b.Code); err == nil {
		return nil, ierr.NewError("branch code already exists").
			WithHint("A branch with this code already exists").
			WithReportableDetails(map[string]any{
				"code": b.Code,
			}).
			Mark(ierr.ErrAlreadyExists)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	branchSlug, err := s.uniqueSlug(ctx, b.Name)
	if err != nil {
		return nil, err
	}
	b.Slug = branchSlug

	if err := s.BranchRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.Logger.Infow("created branch", "branch_id", b.ID, "code", b.Code, "slug", b.Slug)
	return &dto.BranchResponse{Branch: b}, nil
}

// GetBranch accepts either the branch ID or its slug
func (s *branchService) GetBranch(ctx context.Context, idOrSlug string) (*dto.BranchResponse, error) {
	b, err := s.BranchRepo.Get(ctx, idOrSlug)
	if ierr.IsNotFound(err) {
		b, err = s.BranchRepo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	return &dto.BranchResponse{Branch: b}, nil
}

func (s *branchService) ListBranches(ctx context.Context) (*dto.ListBranchesResponse, error) {
	branches, err := s.BranchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListBranchesResponse(branches), nil
}

func (s *branchService) UpdateBranch(ctx context.Context, id string, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.BranchRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(b)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.BranchRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return &dto.BranchResponse{Branch: b}, nil
}

// uniqueSlug slugifies name and appends -2, -3, ... until it is free.
// The slug is fixed at creation and survives renames.
func (s *branchService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", ierr.NewError("branch name has no usable characters").
			WithHint("Branch name must contain letters or digits").
			Mark(ierr.ErrValidation)
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		_, err := s.BranchRepo.GetBySlug(ctx, candidate)
		if ierr.IsNotFound(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", ierr.NewError("could not derive a unique branch slug").
		WithHint("Too many branches share this name").
		WithReportableDetails(map[string]any{
			"slug": base,
		}).
		Mark(ierr.ErrAlreadyExists)
}
