package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
)

const (
	fieldNotifications  = "isNotificationsEnabled"
	fieldSwitcherMinify = "isQuickSwitcherMinimized"
)

// GetPreferences returns the stored preferences, falling back to defaults
// for fields that were never written.
func (s *Store) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	prefs := domain.DefaultPreferences()

	values, err := s.client.HGetAll(ctx, KeyPreferences).Result()
	if err != nil {
		return prefs, fmt.Errorf("failed to get preferences: %w", err)
	}

	if v, ok := values[fieldNotifications]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			prefs.IsNotificationsEnabled = b
		}
	}
	if v, ok := values[fieldSwitcherMinify]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			prefs.IsQuickSwitcherMinimized = b
		}
	}

	return prefs, nil
}

// SavePreferences writes all preference fields
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	err := s.client.HSet(ctx, KeyPreferences,
		fieldNotifications, strconv.FormatBool(prefs.IsNotificationsEnabled),
		fieldSwitcherMinify, strconv.FormatBool(prefs.IsQuickSwitcherMinimized),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
