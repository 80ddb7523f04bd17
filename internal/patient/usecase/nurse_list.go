package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/samber/lo"
)

type NurseListOutput struct {
	Nurses []entity.Nurse
}

// NurseList returns active nurses available for assignment.
func (s *Usecase) NurseList(ctx context.Context) (*NurseListOutput, error) {
	ctx, span := s.startSpan(ctx, "NurseList")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "nurses", "read")
	if err != nil {
		return nil, err
	}

	nurses, err := s.repoDB.GetNurseList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get nurse list", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &NurseListOutput{
		Nurses: lo.Filter(nurses, func(n entity.Nurse, _ int) bool { return n.Active }),
	}, nil
}
