package service

import (
	amenityModel "hotel/internal/domains/amenity/model"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/billing/model"
)

// CalculateTotal charges every stay per (fractional) night and every consumed service once,
// each scaled by the matching discount factor.
func CalculateTotal(details []bookingModel.DetailBooking, services []amenityModel.DetailService, discount model.Discount) float64 {
	var rooms, extras float64

	for _, detail := range details {
		rooms += detail.Price * detail.Nights()
	}

	for _, service := range services {
		extras += service.Price
	}

	return rooms*discount.DiscountRoomValue + extras*discount.DiscountServiceValue
}
