// Package catalog manages hostel and category submissions, their category
// mapping, and the hostel image gallery.
package catalog

import (
	"context"
	"fmt"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/identity"
)

func requireUser(ctx context.Context, users identity.Client, userID int64) error {
	ok, err := users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return domain.UserNotFound(userID)
	}
	return nil
}
