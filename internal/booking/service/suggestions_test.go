package service

import (
	"context"
	"testing"

	"bookd/pkg/model"
)

func TestRoomSuggestions_SortsByTimesBookedThenID(t *testing.T) {
	gateway := &mockHotelGateway{}
	rooms := []model.Room{
		{ID: "r3", Number: "103", TimesBooked: 5},
		{ID: "r2", Number: "102", TimesBooked: 1},
		{ID: "r4", Number: "104", TimesBooked: 1},
		{ID: "r1", Number: "101", TimesBooked: 0},
	}
	svc := newTestService(&mockReservationRepository{}, gateway, nil).(*reservationService)
	svc.hotel = &listRoomsGateway{rooms: rooms}

	got, err := svc.RoomSuggestions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"r1", "r2", "r4", "r3"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (full order: %v)", i, id, got[i].ID, ids(got))
		}
	}
}

type listRoomsGateway struct {
	mockHotelGateway
	rooms []model.Room
}

func (g *listRoomsGateway) ListRooms(ctx context.Context, correlationID string) ([]model.Room, error) {
	return g.rooms, nil
}

func ids(rooms []model.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.ID
	}
	return out
}
