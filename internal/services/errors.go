package services

import (
	"teslo/internal/apperrors"

	"go.uber.org/zap"
)

// handleDBError classifies err and logs it when the cause is not something
// the client can act on.
func handleDBError(op string, err error) error {
	err = apperrors.FromDB(err)
	if apperrors.IsKind(err, apperrors.KindInternal) {
		zap.L().Error("database operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}
