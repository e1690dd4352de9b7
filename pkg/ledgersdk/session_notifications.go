package ledgersdk

import (
	"context"
	"net/http"
)

// ListNotifications returns the inbox, newest first. With unreadOnly set,
// read notifications are filtered out.
func (s *Session) ListNotifications(ctx context.Context, unreadOnly bool) ([]NotificationResponse, error) {
	path := "/api/v1/notifications"
	if unreadOnly {
		path += "?unread=true"
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out []NotificationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) MarkNotificationRead(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/notifications/"+id+"/read", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) MarkAllNotificationsRead(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/notifications/read-all", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) DeleteNotification(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/notifications/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
