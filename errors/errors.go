package errors

const (
	UnauthorizedError         = "unauthorized access"
	ForbiddenError            = "forbidden access"
	InvalidTokenError         = "Token is invalid"
	ExpiredTokenError         = "Token has expired"
	RevokedTokenError         = "Token has been revoked"
	UserNotFoundError         = "User not found"
	RoomNotFoundError         = "Room not found"
	BookingNotFoundError      = "Booking not found"
	RoomAlreadyBookedError    = "Room is already booked for these dates"
	SelfRoleChangeError       = "You can't change your own role"
	NotRoomOwnerError         = "Room does not belong to this host"
	NotBookingOwnerError      = "Booking does not belong to this user"
	InvalidPriceError         = "Price must be greater than zero"
	PaymentProviderError      = "Payment provider is unavailable"
	InvalidRequestFormatError = "Invalid request format"
	DatabaseError             = "Database error"
)
