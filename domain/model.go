package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	Guest Role = "guest"
	Host  Role = "host"
	Admin Role = "admin"
)

type Status string

const (
	StatusNone      Status = ""
	StatusRequested Status = "Requested"
	StatusVerified  Status = "Verified"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	Status    Status             `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

type HostInfo struct {
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
	Email string `bson:"email" json:"email" validate:"required,email"`
}

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Location    string             `bson:"location" json:"location" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	From        time.Time          `bson:"from" json:"from"`
	To          time.Time          `bson:"to" json:"to"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Guests      int                `bson:"guests" json:"guests" validate:"gte=1"`
	Bathrooms   int                `bson:"bathrooms" json:"bathrooms" validate:"gte=1"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms" validate:"gte=1"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Host        HostInfo           `bson:"host" json:"host" validate:"required"`
	Booked      bool               `bson:"booked" json:"booked"`
}

type BookingParty struct {
	Email string `bson:"email" json:"email" validate:"required,email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
}

type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RoomID        primitive.ObjectID `bson:"roomId" json:"roomId" validate:"required"`
	Guest         BookingParty       `bson:"guest" json:"guest" validate:"required"`
	Host          BookingParty       `bson:"host" json:"host" validate:"required"`
	Price         float64            `bson:"price" json:"price" validate:"required,gt=0"`
	TransactionID string             `bson:"transactionId" json:"transactionId" validate:"required"`
	Date          time.Time          `bson:"date" json:"date"`
}

type Claims struct {
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ChartPoint is the (date, price) projection of a booking used by the
// statistics views.
type ChartPoint struct {
	Date  time.Time `bson:"date" json:"date"`
	Price float64   `bson:"price" json:"price"`
}

type AdminStats struct {
	TotalUsers    int64           `json:"totalUsers"`
	TotalRooms    int64           `json:"totalRooms"`
	TotalBookings int             `json:"totalBookings"`
	TotalPrice    float64         `json:"totalPrice"`
	ChartData     [][]interface{} `json:"chartData"`
}

type HostStats struct {
	TotalRooms    int64           `json:"totalRooms"`
	TotalBookings int             `json:"totalBookings"`
	TotalPrice    float64         `json:"totalPrice"`
	ChartData     [][]interface{} `json:"chartData"`
	HostSince     int64           `json:"hostSince"`
}

type GuestStats struct {
	TotalBookings int             `json:"totalBookings"`
	TotalPrice    float64         `json:"totalPrice"`
	ChartData     [][]interface{} `json:"chartData"`
	GuestSince    int64           `json:"guestSince"`
}

func (room *Room) Validate() error {
	validate := validator.New()
	return validate.Struct(room)
}

func (booking *Booking) Validate() error {
	validate := validator.New()
	return validate.Struct(booking)
}

func (user *User) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(user)
}

func (room *Room) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(room)
}

func (booking *Booking) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(booking)
}
