package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	apperrors "bookd/pkg/errors"
	"bookd/pkg/middleware"
	"bookd/pkg/model"
)

// HotelClient is the Booking side's wire client to the Hotel lock surface.
// The saga depends only on the success/failure classification; response
// payloads are advisory.
type HotelClient struct {
	http *HttpClient
}

func NewHotelClient(baseURL string, attemptTimeout time.Duration, maxRetries int) *HotelClient {
	return &HotelClient{
		http: NewHttpClient(baseURL, attemptTimeout, maxRetries),
	}
}

type holdRequest struct {
	RequestID string     `json:"request_id"`
	StartDate model.Date `json:"start_date"`
	EndDate   model.Date `json:"end_date"`
}

type lockRequest struct {
	RequestID string `json:"request_id"`
}

func (c *HotelClient) Hold(ctx context.Context, roomID, requestID string, startDate, endDate model.Date, correlationID string) error {
	resp, err := c.http.PostJSON(ctx, "/rooms/"+url.PathEscape(roomID)+"/hold", holdRequest{
		RequestID: requestID,
		StartDate: startDate,
		EndDate:   endDate,
	}, correlationHeaders(correlationID))
	return classify("hold", resp, err)
}

func (c *HotelClient) Confirm(ctx context.Context, roomID, requestID, correlationID string) error {
	resp, err := c.http.PostJSON(ctx, "/rooms/"+url.PathEscape(roomID)+"/confirm", lockRequest{
		RequestID: requestID,
	}, correlationHeaders(correlationID))
	return classify("confirm", resp, err)
}

func (c *HotelClient) Release(ctx context.Context, roomID, requestID, correlationID string) error {
	resp, err := c.http.PostJSON(ctx, "/rooms/"+url.PathEscape(roomID)+"/release", lockRequest{
		RequestID: requestID,
	}, correlationHeaders(correlationID))
	return classify("release", resp, err)
}

// ListRooms fetches the hotel's room inventory, used by the suggestions
// endpoint.
func (c *HotelClient) ListRooms(ctx context.Context, correlationID string) ([]model.Room, error) {
	resp, err := c.http.GetJSON(ctx, "/rooms", correlationHeaders(correlationID))
	if err := classify("list rooms", resp, err); err != nil {
		return nil, err
	}

	var envelope struct {
		Data []model.Room `json:"data"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, apperrors.Internal("Failed to decode hotel room list", err)
	}
	return envelope.Data, nil
}

func correlationHeaders(correlationID string) map[string]string {
	if correlationID == "" {
		return nil
	}
	return map[string]string{middleware.CorrelationHeader: correlationID}
}

// classify maps a hotel response to the saga's failure taxonomy. Retries
// have already happened below this point, so any non-2xx here is
// definitive.
func classify(op string, resp *Response, err error) error {
	if err != nil {
		return apperrors.Timeout("Hotel " + op + " failed: " + err.Error())
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		if resp.ErrorCode() == apperrors.CodeState {
			return apperrors.State(resp.ErrorMessage())
		}
		return apperrors.Conflict(resp.ErrorMessage())
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.New(apperrors.CodeNotFound, resp.ErrorMessage(), http.StatusNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(resp.ErrorMessage())
	default:
		return apperrors.Unavailable("Hotel service")
	}
}
