package coin

import (
	"context"
	"errors"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/middleware"
)

var ErrZeroAmount = errors.New("gain_coin must be non-zero")

type Service interface {
	Award(ctx context.Context, req *AwardCoinsRequest, actor middleware.Actor, ip string) (*UserCoin, error)
	MyCoins(ctx context.Context, actor middleware.Actor) ([]UserCoin, int, error)
	ListAll(ctx context.Context) ([]UserCoin, error)
	BalanceForUser(ctx context.Context, userID uint) (int, error)
}

type service struct {
	repo     Repository
	users    auth.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, users auth.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, users: users, auditSvc: auditSvc}
}

func (s *service) Award(ctx context.Context, req *AwardCoinsRequest, actor middleware.Actor, ip string) (*UserCoin, error) {
	if req.GainCoin == 0 {
		return nil, ErrZeroAmount
	}

	// the recipient must exist
	if _, err := s.users.FindByID(req.UserID); err != nil {
		return nil, err
	}

	// gain type follows the sign when the caller leaves it blank
	gainType := req.GainType
	if gainType == "" {
		gainType = GainCredit
		if req.GainCoin < 0 {
			gainType = GainDebit
		}
	}

	award := &UserCoin{
		UserID:    req.UserID,
		EventID:   req.EventID,
		GainType:  gainType,
		GainCoin:  req.GainCoin,
		Reason:    req.Reason,
		Status:    "active",
		AwardedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, award); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, req.EventID, "COINS_AWARDED", map[string]interface{}{
			"user_id":   req.UserID,
			"gain_coin": req.GainCoin,
			"error":     err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, req.EventID, "COINS_AWARDED", map[string]interface{}{
		"award_id":  award.ID,
		"user_id":   req.UserID,
		"gain_type": award.GainType,
		"gain_coin": award.GainCoin,
		"reason":    req.Reason,
	}, ip, "success")

	return award, nil
}

func (s *service) MyCoins(ctx context.Context, actor middleware.Actor) ([]UserCoin, int, error) {
	awards, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	balance, err := s.repo.BalanceForUser(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	return awards, balance, nil
}

func (s *service) ListAll(ctx context.Context) ([]UserCoin, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) BalanceForUser(ctx context.Context, userID uint) (int, error) {
	return s.repo.BalanceForUser(ctx, userID)
}
