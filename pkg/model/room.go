package model

// Room is one bookable room. Immutable after load.
type Room struct {
	ID       string `csv:"Room" validate:"required"`
	Capacity int    `csv:"Capacity" validate:"min=0"`
	RoomType string `csv:"Room Type"`
}
