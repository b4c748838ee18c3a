package service

import (
	"context"
	"sort"

	"bookd/pkg/middleware"
	"bookd/pkg/model"
)

// RoomSuggestions lists the hotel's rooms least-booked first, so load
// spreads evenly across the inventory. Ties break on id for a stable
// order.
func (s *reservationService) RoomSuggestions(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.hotel.ListRooms(ctx, middleware.CorrelationID(ctx))
	if err != nil {
		return nil, err
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].TimesBooked != rooms[j].TimesBooked {
			return rooms[i].TimesBooked < rooms[j].TimesBooked
		}
		return rooms[i].ID < rooms[j].ID
	})

	return rooms, nil
}
