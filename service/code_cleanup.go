package service

import (
	"time"

	"storekit/commerce-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CodeCleanup defines a function used to periodically clear expired
// verification codes from accounts that never finished verifying
func CodeCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Verification code cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Model(model.User{}).
				Where("is_verified = ? AND verify_code_expiry < ?", false, time.Now()).
				Updates(map[string]any{
					"verify_code":        "",
					"verify_code_expiry": nil,
				})
			if res.Error != nil {
				zap.L().Error("Failed to clear expired verification codes", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleared expired verification codes", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
