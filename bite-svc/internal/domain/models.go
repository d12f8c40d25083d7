package domain

import (
	"encoding/json"
	"time"
)

// Principal is the authenticated actor, consumer or creator.
type Principal struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Image       string    `json:"image" db:"image"`
	IsCreator   bool      `json:"is_creator" db:"is_creator"`
	StreetName  string    `json:"street_name" db:"street_name"`
	HouseNumber string    `json:"house_number" db:"house_number"`
	ZipCode     string    `json:"zip_code" db:"zip_code"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	Country     string    `json:"country" db:"country"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Address struct {
	StreetName  string `json:"street_name"`
	HouseNumber string `json:"house_number"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

func (p Principal) Address() Address {
	return Address{
		StreetName:  p.StreetName,
		HouseNumber: p.HouseNumber,
		ZipCode:     p.ZipCode,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
	}
}

type RestaurantProfile struct {
	ID           int64          `json:"id" db:"id"`
	Owner        string         `json:"owner" db:"owner"`
	Name         string         `json:"name" db:"name"`
	Street       string         `json:"street" db:"street"`
	StreetNr     string         `json:"street_nr" db:"street_nr"`
	ZipCode      string         `json:"zip_code" db:"zip_code"`
	City         string         `json:"city" db:"city"`
	PhoneNumber  string         `json:"phone_number" db:"phone_number"`
	Website      string         `json:"website" db:"website"`
	Banner       string         `json:"banner" db:"banner"`
	Description  string         `json:"description" db:"description"`
	OpeningHours WeeklySchedule `json:"opening_hours" db:"opening_hours"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// RestaurantSummary is the restaurant snapshot embedded in posts.
type RestaurantSummary struct {
	ID       int64  `json:"id" db:"id"`
	Owner    string `json:"owner" db:"owner"`
	Name     string `json:"name" db:"name"`
	Street   string `json:"street" db:"street"`
	StreetNr string `json:"street_nr" db:"street_nr"`
	City     string `json:"city" db:"city"`
}

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Product struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id"`
	CategoryID   int64     `json:"category_id" db:"category_id"`
	ProductName  string    `json:"product_name" db:"product_name"`
	Ingredients  string    `json:"ingredients" db:"ingredients"`
	Allergens    string    `json:"allergens" db:"allergens"`
	Price        float64   `json:"price" db:"price"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	File         string    `json:"file" db:"file"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (p Product) GetID() int64 { return p.ID }

// ProductSnapshot is the subset of a product joined into cart, post and order lines.
type ProductSnapshot struct {
	ID          int64   `json:"id" db:"id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Price       float64 `json:"price" db:"price"`
	File        string  `json:"file" db:"file"`
	Ingredients string  `json:"ingredients" db:"ingredients"`
	IsActive    bool    `json:"is_active" db:"is_active"`
}

type Post struct {
	ID           int64              `json:"id" db:"id"`
	RestaurantID int64              `json:"restaurant_id" db:"restaurant_id"`
	Title        string             `json:"title" db:"title"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	Restaurant   *RestaurantSummary `json:"restaurant,omitempty" db:"-"`
	Items        []PostItem         `json:"items" db:"-"`
	Likes        []PostLike         `json:"likes" db:"-"`
}

func (p Post) GetID() int64 { return p.ID }

// PostItem binds one uploaded video to exactly one product.
type PostItem struct {
	ID        int64            `json:"id" db:"id"`
	PostID    int64            `json:"post_id" db:"post_id"`
	ProductID int64            `json:"product_id" db:"product_id"`
	File      string           `json:"file" db:"file"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	Product   *ProductSnapshot `json:"product,omitempty" db:"-"`
}

type PostLike struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post_id" db:"post_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CartKey struct {
	ProductID    int64  `json:"product_id"`
	UserID       string `json:"user_id"`
	RestaurantID int64  `json:"restaurant_id"`
}

type CartLine struct {
	ProductID    int64            `json:"product_id" db:"product_id"`
	UserID       string           `json:"user_id" db:"user_id"`
	RestaurantID int64            `json:"restaurant_id" db:"restaurant_id"`
	Quantity     int              `json:"quantity" db:"quantity"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	Product      *ProductSnapshot `json:"product,omitempty" db:"-"`
}

func (l CartLine) Key() CartKey {
	return CartKey{ProductID: l.ProductID, UserID: l.UserID, RestaurantID: l.RestaurantID}
}

// Subtotal is zero when the product snapshot was not loaded.
func (l CartLine) Subtotal() float64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.Price * float64(l.Quantity)
}

// Order is a purchase spanning one or more restaurants.
type Order struct {
	ID            int64       `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	DeliveryNotes string      `json:"delivery_notes" db:"delivery_notes"`
	StreetName    string      `json:"street_name" db:"street_name"`
	HouseNumber   string      `json:"house_number" db:"house_number"`
	ZipCode       string      `json:"zip_code" db:"zip_code"`
	City          string      `json:"city" db:"city"`
	State         string      `json:"state" db:"state"`
	Country       string      `json:"country" db:"country"`
	TotalPrice    float64     `json:"total_price" db:"total_price"`
	Status        Status      `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	Lines         []OrderLine `json:"lines" db:"-"`
}

// OrderLine carries its own status, scoped to the line's restaurant.
type OrderLine struct {
	ID           int64            `json:"id" db:"id"`
	PurchaseID   int64            `json:"purchase_id" db:"purchase_id"`
	RestaurantID int64            `json:"restaurant_id" db:"restaurant_id"`
	ProductID    int64            `json:"product_id" db:"product_id"`
	Quantity     int              `json:"quantity" db:"quantity"`
	Price        float64          `json:"price" db:"price"`
	Status       Status           `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	Product      *ProductSnapshot `json:"product,omitempty" db:"-"`
}

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
	EventAll    = "*"
)

// ChangeEvent is a row-level change as delivered to realtime subscribers.
type ChangeEvent struct {
	EventType       string          `json:"eventType"`
	Table           string          `json:"table"`
	New             json.RawMessage `json:"new,omitempty"`
	Old             json.RawMessage `json:"old,omitempty"`
	CommitTimestamp time.Time       `json:"commit_timestamp"`
}
