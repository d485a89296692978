package cars

import "time"

// DefaultImageURL is used when a car is created without an image.
const DefaultImageURL = "https://images.unsplash.com/photo-1549317661-bd32c8ce0db2?w=400&h=300&fit=crop"

// Car is a single listing. CreatedBy is the owning user's ID, set at
// creation and immutable for the record's lifetime; only the owner may
// read, mutate or delete the record. IsSell transitions one way,
// false → true.
type Car struct {
	ID          string     `json:"id"`
	Brand       string     `json:"brand"`
	Model       string     `json:"model"`
	Year        int        `json:"year"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"imageUrl"`
	Description string     `json:"description"`
	IsSell      bool       `json:"isSell"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
