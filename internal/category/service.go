package category

import (
	"context"
	"errors"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/middleware"
)

var ErrCategoryInUse = errors.New("category is referenced by existing events")

type Service interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest, imagePath string, actor middleware.Actor, ip string) (*EventCategory, error)
	GetCategoryByID(ctx context.Context, id uint) (*EventCategory, error)
	ListCategories(ctx context.Context) ([]EventCategory, error)
	SearchCategories(ctx context.Context, name string) ([]EventCategory, error)
	UpdateCategory(ctx context.Context, id uint, req *UpdateCategoryRequest, actor middleware.Actor, ip string) (*EventCategory, error)
	DeleteCategory(ctx context.Context, id uint, actor middleware.Actor, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) CreateCategory(ctx context.Context, req *CreateCategoryRequest, imagePath string, actor middleware.Actor, ip string) (*EventCategory, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}

	category := &EventCategory{
		Name:      req.Name,
		Code:      req.Code,
		ImagePath: imagePath,
		Priority:  req.Priority,
		Status:    status,
		CreatedBy: actor.UserID,
		UpdatedBy: actor.UserID,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, nil, "CATEGORY_CREATED", map[string]interface{}{
			"name":  req.Name,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "CATEGORY_CREATED", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
		"code":        category.Code,
	}, ip, "success")

	return category, nil
}

func (s *service) GetCategoryByID(ctx context.Context, id uint) (*EventCategory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]EventCategory, error) {
	return s.repo.List(ctx)
}

func (s *service) SearchCategories(ctx context.Context, name string) ([]EventCategory, error) {
	if name == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, name)
}

func (s *service) UpdateCategory(ctx context.Context, id uint, req *UpdateCategoryRequest, actor middleware.Actor, ip string) (*EventCategory, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Code = req.Code
	category.Priority = req.Priority
	if req.Status != "" {
		category.Status = req.Status
	}
	category.UpdatedBy = actor.UserID

	if err := s.repo.Update(ctx, category); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, nil, "CATEGORY_UPDATED", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "CATEGORY_UPDATED", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	}, ip, "success")

	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint, actor middleware.Actor, ip string) error {
	// Referenced categories stay; events own the reference
	count, err := s.repo.CountEvents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, nil, "CATEGORY_DELETED", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		}, ip, "failure")
		return err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "CATEGORY_DELETED", map[string]interface{}{
		"category_id": id,
	}, ip, "success")

	return nil
}
