package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/sse"
)

// Subscriber is the part of sse.Hub the stream needs.
type Subscriber interface {
	Subscribe(topics ...string) (<-chan sse.Event, func())
}

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	jwtService      jwt.Service
	employeeService employee.EmployeeService
	hub             Subscriber
	keepalive       time.Duration
}

func NewEventsHandler(jwtService jwt.Service, employeeService employee.EmployeeService, hub Subscriber) EventsHandler {
	return &eventsHandlerImpl{
		jwtService:      jwtService,
		employeeService: employeeService,
		hub:             hub,
		keepalive:       30 * time.Second,
	}
}

// Stream handles the SSE connection. The token comes from the query string
// because EventSource cannot send headers.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	emp, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !emp.IsActive {
		response.Forbidden(w, "Account is deactivated")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	topics := []string{employeeID}
	if emp.Role == employee.RoleAdmin {
		topics = append(topics, sse.AdminTopic)
	}
	events, cleanup := h.hub.Subscribe(topics...)
	defer cleanup()

	slog.Debug("SSE client connected", "employee_id", employeeID, "topics", topics)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":\"%s\"}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode SSE event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			slog.Debug("SSE client disconnected", "employee_id", employeeID)
			return
		}
	}
}
