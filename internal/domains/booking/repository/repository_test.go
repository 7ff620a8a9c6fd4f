package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/booking/repository"
)

func TestOverlapFilter(t *testing.T) {
	dateIn := time.Date(2030, time.March, 10, 0, 0, 0, 0, time.UTC)
	dateOut := time.Date(2030, time.March, 12, 0, 0, 0, 0, time.UTC)

	filter := repository.OverlapFilter("101", dateIn, dateOut)
	where, args := filter.GetWhereClause()

	expected := "(detail_bookings.room_id = :room_id AND (" +
		"(detail_bookings.date_in <= :request_date_in AND detail_bookings.date_out > :request_date_in) OR " +
		"(detail_bookings.date_in < :request_date_out AND detail_bookings.date_out >= :request_date_out) OR " +
		"(detail_bookings.date_in >= :request_date_in AND detail_bookings.date_out <= :request_date_out)))"

	assert.Equal(t, expected, where)
	assert.Equal(t, map[string]any{
		"room_id":          "101",
		"request_date_in":  dateIn,
		"request_date_out": dateOut,
	}, args)
}

func TestBookingDayFilter(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	day := time.Date(2030, time.March, 10, 15, 30, 0, 0, loc)

	filter := repository.BookingDayFilter(day)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.booking_date >= :booking_date_from AND bookings.booking_date < :booking_date_to)", where)
	assert.Equal(t, time.Date(2030, time.March, 10, 0, 0, 0, 0, loc), args["booking_date_from"])
	assert.Equal(t, time.Date(2030, time.March, 11, 0, 0, 0, 0, loc), args["booking_date_to"])
}
