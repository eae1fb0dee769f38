package application

import (
	"context"
	"fmt"

	"github.com/rahe01/StayVista/domain"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type StatService struct {
	bookings domain.BookingStore
	rooms    domain.RoomStore
	users    domain.UserStore
	tracer   trace.Tracer
}

func NewStatService(bookings domain.BookingStore, rooms domain.RoomStore, users domain.UserStore, tracer trace.Tracer) *StatService {
	return &StatService{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		tracer:   tracer,
	}
}

// summarize is the one reduction all three statistics views share: booking
// count, price sum, and the day-by-day chart series with its header row.
func summarize(points []domain.ChartPoint) (int, float64, [][]interface{}) {
	chartData := [][]interface{}{{"Day", "Sales"}}
	var totalPrice float64

	for _, point := range points {
		label := fmt.Sprintf("%d/%d", point.Date.Day(), int(point.Date.Month()))
		chartData = append(chartData, []interface{}{label, point.Price})
		totalPrice += point.Price
	}

	return len(points), totalPrice, chartData
}

func (service *StatService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatService.AdminStats")
	defer span.End()

	points, err := service.bookings.Points(ctx, domain.ChartScope{})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	totalUsers, err := service.users.CountUsers(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	totalRooms, err := service.rooms.CountRooms(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	totalBookings, totalPrice, chartData := summarize(points)

	return &domain.AdminStats{
		TotalUsers:    totalUsers,
		TotalRooms:    totalRooms,
		TotalBookings: totalBookings,
		TotalPrice:    totalPrice,
		ChartData:     chartData,
	}, nil
}

func (service *StatService) HostStats(ctx context.Context, email string) (*domain.HostStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatService.HostStats")
	defer span.End()

	points, err := service.bookings.Points(ctx, domain.ChartScope{HostEmail: email})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	totalRooms, err := service.rooms.CountRoomsByHost(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user, err := service.users.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	totalBookings, totalPrice, chartData := summarize(points)

	return &domain.HostStats{
		TotalRooms:    totalRooms,
		TotalBookings: totalBookings,
		TotalPrice:    totalPrice,
		ChartData:     chartData,
		HostSince:     user.Timestamp,
	}, nil
}

func (service *StatService) GuestStats(ctx context.Context, email string) (*domain.GuestStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatService.GuestStats")
	defer span.End()

	points, err := service.bookings.Points(ctx, domain.ChartScope{GuestEmail: email})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user, err := service.users.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	totalBookings, totalPrice, chartData := summarize(points)

	return &domain.GuestStats{
		TotalBookings: totalBookings,
		TotalPrice:    totalPrice,
		ChartData:     chartData,
		GuestSince:    user.Timestamp,
	}, nil
}
