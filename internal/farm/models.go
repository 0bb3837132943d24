package farm

// Collection names used for each record kind.
const (
	CollectionListings  = "product"
	CollectionTutorials = "tutorial"
	CollectionMessages  = "message"
)

// DefaultRoom is the chat room used when a message or query names none.
const DefaultRoom = "general"

// Listing is a marketplace listing for produce or compost.
// Optional fields are pointers: nil means "not provided" and is omitted
// from the stored document.
type Listing struct {
	Title       string   `json:"title" bson:"title" validate:"required"`
	Description *string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       *float64 `json:"price" bson:"price" validate:"required,gte=0"`
	Unit        string   `json:"unit" bson:"unit" validate:"required"`
	Category    string   `json:"category" bson:"category" validate:"required,oneof=produce compost"`
	SellerName  string   `json:"seller_name" bson:"seller_name" validate:"required"`
	ImageURL    *string  `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,http_url"`
	Location    *string  `json:"location,omitempty" bson:"location,omitempty"`
	InStock     bool     `json:"in_stock" bson:"in_stock"`
}

// Tutorial is an organic farming guide or video.
type Tutorial struct {
	Title           string  `json:"title" bson:"title" validate:"required"`
	Description     *string `json:"description,omitempty" bson:"description,omitempty"`
	Author          string  `json:"author" bson:"author" validate:"required"`
	VideoURL        *string `json:"video_url,omitempty" bson:"video_url,omitempty" validate:"omitempty,http_url"`
	ThumbnailURL    *string `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty" validate:"omitempty,http_url"`
	DurationSeconds *int    `json:"duration_seconds,omitempty" bson:"duration_seconds,omitempty" validate:"omitempty,gte=0"`
}

// Message is a community chat message posted to a room.
type Message struct {
	Name string `json:"name" bson:"name" validate:"required"`
	Text string `json:"text" bson:"text" validate:"min=1,max=1000"`
	Room string `json:"room" bson:"room"`
}
