package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

// managedClub resolves the club a manager runs. Users without one are
// forbidden from market mutations.
func managedClub(ctx context.Context, repo club.Repository, userID string) (club.Club, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return club.Club{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	c, ok, err := repo.GetByManager(ctx, userID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club by manager: %w", err)
	}
	if !ok {
		return club.Club{}, fmt.Errorf("%w: user %s manages no club", ErrForbidden, userID)
	}
	return c, nil
}

// remoteResult turns a gateway reply into an error. Transport failures are
// dependency errors; non-zero codes are rejections carrying the store message.
func remoteResult(operation string, res transfer.Result, err error) (transfer.Result, error) {
	if err != nil {
		return transfer.Result{}, fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, operation, err)
	}
	if !res.OK() {
		return res, &RemoteRejectionError{Operation: operation, Code: res.Code, Message: res.Message}
	}
	return res, nil
}
