package http

import (
	"net/http"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

// HandleList returns the inbox, newest first.
//
//	@Summary	List notifications
//	@Tags		Notifications
//	@Security	BearerAuth
//	@Produce	json
//	@Param		unread	query	bool	false	"Only unread notifications"
//	@Success	200		{array}	ledgersdk.NotificationResponse
//	@Router		/api/v1/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifs, err := h.NotificationService.List(r.Context(), userID(r), unreadOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ledgersdk.NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, toNotificationResponse(n))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleMarkRead marks one notification read.
//
//	@Summary	Mark notification read
//	@Tags		Notifications
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Notification ID"
//	@Success	204
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/notifications/{id}/read [post].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkRead(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMarkAllRead clears the unread state of the whole inbox.
//
//	@Summary	Mark all notifications read
//	@Tags		Notifications
//	@Security	BearerAuth
//	@Success	204
//	@Router		/api/v1/notifications/read-all [post].
func (h *NotificationsHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkAllRead(r.Context(), userID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a notification.
//
//	@Summary	Delete notification
//	@Tags		Notifications
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Notification ID"
//	@Success	204
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/notifications/{id} [delete].
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
